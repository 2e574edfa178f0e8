// Package jsonpatch computes RFC 6902 patches. The engine uses it to
// report how a calculation changed the persisted profile.
package jsonpatch

import (
	"strconv"
	"strings"
)

// Operation is a single RFC 6902 patch operation.
type Operation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// Diff computes an RFC 6902 patch that transforms a into b. Both values
// should be the result of json.Unmarshal into any. Path should be ""
// for the root document.
func Diff(a, b any, path string) []Operation {
	if a == nil && b == nil {
		return nil
	}
	if a == nil || b == nil {
		return []Operation{{Op: "replace", Path: path, Value: b}}
	}

	aMap, aIsMap := a.(map[string]any)
	bMap, bIsMap := b.(map[string]any)
	if aIsMap && bIsMap {
		return diffObjects(aMap, bMap, path)
	}

	aArr, aIsArr := a.([]any)
	bArr, bIsArr := b.([]any)
	if aIsArr && bIsArr {
		return diffArrays(aArr, bArr, path)
	}

	// A container on one side only; interface equality would panic on
	// uncomparable types.
	if aIsMap || bIsMap || aIsArr || bIsArr {
		return []Operation{{Op: "replace", Path: path, Value: b}}
	}

	if a != b {
		return []Operation{{Op: "replace", Path: path, Value: b}}
	}

	return nil
}

func diffObjects(a, b map[string]any, path string) []Operation {
	var ops []Operation

	for k := range a {
		if _, ok := b[k]; !ok {
			ops = append(ops, Operation{Op: "remove", Path: path + "/" + escapeKey(k)})
		}
	}

	for k, bv := range b {
		childPath := path + "/" + escapeKey(k)
		av, inA := a[k]
		if !inA {
			ops = append(ops, Operation{Op: "add", Path: childPath, Value: bv})
		} else {
			ops = append(ops, Diff(av, bv, childPath)...)
		}
	}

	return ops
}

func diffArrays(a, b []any, path string) []Operation {
	var ops []Operation

	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	for i := 0; i < minLen; i++ {
		ops = append(ops, Diff(a[i], b[i], path+"/"+strconv.Itoa(i))...)
	}

	// Removals run in reverse order to keep indices valid.
	for i := len(a) - 1; i >= minLen; i-- {
		ops = append(ops, Operation{Op: "remove", Path: path + "/" + strconv.Itoa(i)})
	}

	for i := minLen; i < len(b); i++ {
		ops = append(ops, Operation{Op: "add", Path: path + "/" + strconv.Itoa(i), Value: b[i]})
	}

	return ops
}

// escapeKey escapes a JSON Pointer token per RFC 6901.
func escapeKey(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}
