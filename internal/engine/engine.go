package engine

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"retirement-engine/internal/assumptions"
	"retirement-engine/internal/jsonpatch"
	"retirement-engine/internal/model"
	"retirement-engine/internal/profile"
	"retirement-engine/internal/tools"
)

type Engine struct {
	store *profile.Store
	log   zerolog.Logger
}

func New(store *profile.Store, log zerolog.Logger) *Engine {
	return &Engine{
		store: store,
		log:   log.With().Str("component", "engine").Logger(),
	}
}

// Process runs the request's tool calls in order against a single profile
// snapshot. The profile is read once up front; a write happens at most
// once, after the last call, and only when some call changed the
// profile and no CRITICAL condition was raised. Every call's messages
// are indexed into one shared list, and the first CRITICAL stops the
// calculation.
func (e *Engine) Process(req *model.CalculationRequest) *model.CalculationResponse {
	start := time.Now()

	var allMessages []model.CalculationMessage
	var toolResults []model.ToolCallResult
	outcome := model.OutcomeSuccess
	hasCritical := false

	state := &tools.State{Returns: assumptions.AssetReturns()}

	loaded, found, err := e.store.Load()
	if err != nil {
		// Storage failures surface as messages, never as crashes; the
		// store's error text passes through untranslated.
		msg := model.CalculationMessage{
			ID:      0,
			Level:   model.LevelCritical,
			Code:    "PROFILE_LOAD_FAILED",
			Message: err.Error(),
		}
		allMessages = append(allMessages, msg)
		hasCritical = true
	} else if found {
		state.Profile = loaded
	}

	initialDoc := profileDoc(state.Profile)

	if !hasCritical {
		for _, call := range req.CalculationInstructions.ToolCalls {
			handler, ok := tools.Get(call.ToolName)
			if !ok {
				msg := model.CalculationMessage{
					ID:      len(allMessages),
					Level:   model.LevelCritical,
					Code:    "UNKNOWN_TOOL",
					Message: fmt.Sprintf("Unknown tool: %s", call.ToolName),
				}
				allMessages = append(allMessages, msg)
				toolResults = append(toolResults, model.ToolCallResult{
					Call:                      call,
					CalculationMessageIndexes: []int{msg.ID},
				})
				hasCritical = true
				break
			}

			var msgIndexes []int
			for _, vm := range handler.Validate(state, &call) {
				vm.ID = len(allMessages)
				allMessages = append(allMessages, vm)
				msgIndexes = append(msgIndexes, vm.ID)
				if vm.Level == model.LevelCritical {
					hasCritical = true
				}
			}

			if hasCritical {
				toolResults = append(toolResults, model.ToolCallResult{
					Call:                      call,
					CalculationMessageIndexes: msgIndexes,
				})
				break
			}

			result, execMsgs := handler.Execute(state, &call)
			for _, em := range execMsgs {
				em.ID = len(allMessages)
				allMessages = append(allMessages, em)
				msgIndexes = append(msgIndexes, em.ID)
				if em.Level == model.LevelCritical {
					hasCritical = true
				}
			}

			tr := model.ToolCallResult{
				Call:                      call,
				CalculationMessageIndexes: msgIndexes,
			}
			if result != nil {
				if raw, err := json.Marshal(result.Result); err == nil {
					tr.Result = raw
				}
				tr.Summary = result.Summary
			}
			toolResults = append(toolResults, tr)

			if hasCritical {
				break
			}
		}
	}

	if hasCritical {
		outcome = model.OutcomeFailure
	}

	saved := false
	deleted := false
	saveFailed := false
	if !hasCritical {
		if state.Deleted {
			deleted = e.store.Delete()
		}
		if state.Dirty && state.Profile != nil {
			if _, err := e.store.Save(state.Profile); err != nil {
				msg := model.CalculationMessage{
					ID:      len(allMessages),
					Level:   model.LevelCritical,
					Code:    "PROFILE_SAVE_FAILED",
					Message: err.Error(),
				}
				allMessages = append(allMessages, msg)
				outcome = model.OutcomeFailure
				saveFailed = true
			} else {
				saved = true
			}
		}
	}

	// A failed write means the persisted document did not change, so no
	// change patch is reported.
	var changes json.RawMessage
	if !saveFailed {
		if ops := jsonpatch.Diff(initialDoc, profileDoc(state.Profile), ""); len(ops) > 0 {
			changes, _ = json.Marshal(ops)
		}
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()

	if allMessages == nil {
		allMessages = []model.CalculationMessage{}
	}
	if toolResults == nil {
		toolResults = []model.ToolCallResult{}
	}

	e.log.Debug().
		Str("outcome", outcome).
		Int("tool_calls", len(req.CalculationInstructions.ToolCalls)).
		Int("messages", len(allMessages)).
		Dur("elapsed", elapsed).
		Msg("calculation processed")

	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			SessionID:              req.SessionID,
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		CalculationResult: model.CalculationResult{
			Messages:       allMessages,
			ToolResults:    toolResults,
			Profile:        state.Profile,
			ProfileChanges: changes,
			ProfileSaved:   saved,
			ProfileDeleted: deleted,
		},
	}
}

// profileDoc converts a profile to the generic document shape the patch
// differ works on. SavedAt is stamped by the store at write time, so it
// is excluded from change reporting.
func profileDoc(p *model.UserProfile) any {
	if p == nil {
		return nil
	}
	clone := *p
	clone.SavedAt = nil
	raw, err := json.Marshal(&clone)
	if err != nil {
		return nil
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}
	return doc
}
