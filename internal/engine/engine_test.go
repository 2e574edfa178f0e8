package engine

import (
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"retirement-engine/internal/model"
	"retirement-engine/internal/profile"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(profile.NewStore(t.TempDir(), zerolog.Nop()), zerolog.Nop())
}

func call(name, props string) model.ToolCall {
	return model.ToolCall{
		CallID:         "c-" + name,
		ToolName:       name,
		ToolProperties: json.RawMessage(props),
	}
}

func request(calls ...model.ToolCall) *model.CalculationRequest {
	return &model.CalculationRequest{
		SessionID: "test-session",
		CalculationInstructions: model.CalculationInstructions{
			ToolCalls: calls,
		},
	}
}

func TestSaveProfile(t *testing.T) {
	eng := newTestEngine(t)

	resp := eng.Process(request(call("save_profile", `{
		"age": 42,
		"target_retirement_age": 60,
		"marital_status": "married",
		"current_savings": 280000,
		"monthly_contribution": 1500,
		"risk_tolerance": "moderate",
		"expected_monthly_expenses": 4000
	}`)))

	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("expected SUCCESS, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if resp.CalculationMetadata.SessionID != "test-session" {
		t.Fatalf("expected session_id test-session, got %s", resp.CalculationMetadata.SessionID)
	}
	if len(resp.CalculationResult.Messages) != 0 {
		t.Fatalf("expected 0 messages, got %d", len(resp.CalculationResult.Messages))
	}
	if len(resp.CalculationResult.ToolResults) != 1 {
		t.Fatalf("expected 1 tool result, got %d", len(resp.CalculationResult.ToolResults))
	}
	if !resp.CalculationResult.ProfileSaved {
		t.Fatal("expected profile to be persisted")
	}

	p := resp.CalculationResult.Profile
	if p == nil {
		t.Fatal("expected profile in response")
	}
	if p.Age != 42 || p.TargetRetirementAge != 60 {
		t.Fatalf("unexpected ages: %d / %d", p.Age, p.TargetRetirementAge)
	}
	if p.MaritalStatus != "married" {
		t.Fatalf("expected married, got %s", p.MaritalStatus)
	}
	if p.SavedAt == nil {
		t.Fatal("expected saved_at to be stamped by the store")
	}
	if len(resp.CalculationResult.ProfileChanges) == 0 {
		t.Fatal("expected a profile change patch")
	}

	summary := resp.CalculationResult.ToolResults[0].Summary
	if summary == "" {
		t.Fatal("expected a display summary")
	}
}

func TestProfilePersistsAcrossCalculations(t *testing.T) {
	eng := newTestEngine(t)

	resp := eng.Process(request(call("save_profile", `{"age": 42, "target_retirement_age": 60}`)))
	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("save failed: %+v", resp.CalculationResult.Messages)
	}

	resp = eng.Process(request(call("get_profile", `{}`)))
	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("get failed: %+v", resp.CalculationResult.Messages)
	}
	if resp.CalculationResult.Profile == nil || resp.CalculationResult.Profile.Age != 42 {
		t.Fatal("expected the saved profile on a fresh calculation")
	}
	if resp.CalculationResult.ProfileSaved {
		t.Fatal("a read-only calculation must not rewrite the profile")
	}
	if len(resp.CalculationResult.ProfileChanges) != 0 {
		t.Fatalf("expected no profile changes, got %s", resp.CalculationResult.ProfileChanges)
	}
}

func TestUnknownToolFailsCalculation(t *testing.T) {
	eng := newTestEngine(t)

	resp := eng.Process(request(
		call("save_profile", `{"age": 42, "target_retirement_age": 60}`),
		call("estimate_social_security", `{}`),
	))

	if resp.CalculationMetadata.CalculationOutcome != "FAILURE" {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if len(resp.CalculationResult.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(resp.CalculationResult.Messages))
	}
	if resp.CalculationResult.Messages[0].Code != "UNKNOWN_TOOL" {
		t.Fatalf("expected UNKNOWN_TOOL, got %s", resp.CalculationResult.Messages[0].Code)
	}
	// Both calls are echoed: the first succeeded, the second failed.
	if len(resp.CalculationResult.ToolResults) != 2 {
		t.Fatalf("expected 2 tool results, got %d", len(resp.CalculationResult.ToolResults))
	}
	if resp.CalculationResult.ProfileSaved {
		t.Fatal("a failed calculation must not persist profile changes")
	}
}

func TestIncomeFlowLifecycle(t *testing.T) {
	eng := newTestEngine(t)

	resp := eng.Process(request(
		call("save_profile", `{"age": 42, "target_retirement_age": 60}`),
		call("add_income_flow", `{
			"name": "Social Security",
			"type": "social_security",
			"monthly_amount": 2400,
			"start_age": 67,
			"inflation_adjusted": true
		}`),
	))
	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("add failed: %+v", resp.CalculationResult.Messages)
	}
	if len(resp.CalculationResult.Profile.IncomeFlows) != 1 {
		t.Fatalf("expected 1 income flow, got %d", len(resp.CalculationResult.Profile.IncomeFlows))
	}

	flowID := resp.CalculationResult.Profile.IncomeFlows[0].ID
	if flowID == "" {
		t.Fatal("expected a generated flow id")
	}

	resp = eng.Process(request(call("remove_income_flow", `{"flow_id": "`+flowID+`"}`)))
	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("remove failed: %+v", resp.CalculationResult.Messages)
	}
	if len(resp.CalculationResult.Profile.IncomeFlows) != 0 {
		t.Fatal("expected the flow to be removed")
	}

	// Removing a missing id is an ordinary negative result: WARNING, not
	// failure.
	resp = eng.Process(request(call("remove_income_flow", `{"flow_id": "nope"}`)))
	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("expected SUCCESS, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if len(resp.CalculationResult.Messages) != 1 || resp.CalculationResult.Messages[0].Code != "FLOW_NOT_FOUND" {
		t.Fatalf("expected FLOW_NOT_FOUND warning, got %+v", resp.CalculationResult.Messages)
	}
	if resp.CalculationResult.Messages[0].Level != "WARNING" {
		t.Fatalf("expected WARNING level, got %s", resp.CalculationResult.Messages[0].Level)
	}
}

func TestCalculatorRunsWithoutProfile(t *testing.T) {
	eng := newTestEngine(t)

	resp := eng.Process(request(call("calculate_retirement_target", `{"monthly_expenses": 4000}`)))
	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("expected SUCCESS, got %+v", resp.CalculationResult.Messages)
	}

	var result struct {
		Target float64 `json:"target"`
	}
	if err := json.Unmarshal(resp.CalculationResult.ToolResults[0].Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if result.Target != 1_200_000 {
		t.Fatalf("expected target 1,200,000, got %v", result.Target)
	}
}

func TestCriticalValidationStopsRun(t *testing.T) {
	eng := newTestEngine(t)

	resp := eng.Process(request(
		call("calculate_retirement_target_swr", `{"monthly_expenses": 4000, "withdrawal_rate": 1.5}`),
		call("calculate_retirement_target", `{"monthly_expenses": 4000}`),
	))

	if resp.CalculationMetadata.CalculationOutcome != "FAILURE" {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if resp.CalculationResult.Messages[0].Code != "INVALID_WITHDRAWAL_RATE" {
		t.Fatalf("expected INVALID_WITHDRAWAL_RATE, got %s", resp.CalculationResult.Messages[0].Code)
	}
	// Processing stops at the critical call; the second never runs.
	if len(resp.CalculationResult.ToolResults) != 1 {
		t.Fatalf("expected 1 tool result, got %d", len(resp.CalculationResult.ToolResults))
	}
}

func TestUnsupportedBucketStrategy(t *testing.T) {
	eng := newTestEngine(t)

	resp := eng.Process(request(call("simulate_withdrawal_strategy", `{
		"strategy": "bucket",
		"initial_portfolio": 1000000,
		"years": 30,
		"annual_return": 0.06
	}`)))

	if resp.CalculationMetadata.CalculationOutcome != "FAILURE" {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if resp.CalculationResult.Messages[0].Code != "UNSUPPORTED_STRATEGY" {
		t.Fatalf("expected UNSUPPORTED_STRATEGY, got %s", resp.CalculationResult.Messages[0].Code)
	}
}

func TestDeleteProfile(t *testing.T) {
	eng := newTestEngine(t)

	eng.Process(request(call("save_profile", `{"age": 42, "target_retirement_age": 60}`)))

	resp := eng.Process(request(call("delete_profile", `{}`)))
	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("delete failed: %+v", resp.CalculationResult.Messages)
	}
	if !resp.CalculationResult.ProfileDeleted {
		t.Fatal("expected the stored profile to be removed")
	}
	if resp.CalculationResult.Profile != nil {
		t.Fatal("expected no profile after deletion")
	}

	resp = eng.Process(request(call("get_profile", `{}`)))
	if resp.CalculationResult.Profile != nil {
		t.Fatal("expected deletion to persist")
	}
}

func TestSimulationEndToEnd(t *testing.T) {
	eng := newTestEngine(t)

	resp := eng.Process(request(call("compare_strategies", `{
		"initial_portfolio": 1000000,
		"years": 30,
		"annual_return": 0.06,
		"monthly_expenses": 4000
	}`)))

	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("compare failed: %+v", resp.CalculationResult.Messages)
	}

	var result struct {
		Results []model.StrategySimulationResult `json:"results"`
	}
	if err := json.Unmarshal(resp.CalculationResult.ToolResults[0].Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if len(result.Results) != 3 {
		t.Fatalf("expected 3 strategies, got %d", len(result.Results))
	}
	for _, r := range result.Results {
		if len(r.YearlyWithdrawals) != 30 {
			t.Fatalf("strategy %s: expected 30 years, got %d", r.Strategy, len(r.YearlyWithdrawals))
		}
	}
}

func TestFailedSaveReportsNoProfileChanges(t *testing.T) {
	// A regular file where the data directory should be makes every
	// write fail.
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocked, []byte("x"), 0o600); err != nil {
		t.Fatalf("writing blocker: %v", err)
	}
	eng := New(profile.NewStore(filepath.Join(blocked, "data"), zerolog.Nop()), zerolog.Nop())

	resp := eng.Process(request(call("save_profile", `{"age": 42}`)))

	if resp.CalculationMetadata.CalculationOutcome != "FAILURE" {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	found := false
	for _, m := range resp.CalculationResult.Messages {
		if m.Code == "PROFILE_SAVE_FAILED" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a PROFILE_SAVE_FAILED message, got %+v", resp.CalculationResult.Messages)
	}
	if resp.CalculationResult.ProfileSaved {
		t.Fatal("expected profile_saved to be false")
	}
	if len(resp.CalculationResult.ProfileChanges) != 0 {
		t.Fatalf("nothing was persisted, but changes were reported: %s", resp.CalculationResult.ProfileChanges)
	}
}
