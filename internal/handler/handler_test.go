package handler

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"retirement-engine/internal/engine"
	"retirement-engine/internal/model"
	"retirement-engine/internal/profile"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	store := profile.NewStore(t.TempDir(), zerolog.Nop())
	return New(engine.New(store, zerolog.Nop()), zerolog.Nop())
}

func serve(h *Handler, method, uri, body string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	req.SetBodyString(body)

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	h.Handle(ctx)
	return ctx
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(t)

	ctx := serve(h, fasthttp.MethodGet, "http://test/healthz", "")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"status":"ok"}`, string(ctx.Response.Body()))
}

func TestCalculateRejectsWrongMethod(t *testing.T) {
	h := newTestHandler(t)

	ctx := serve(h, fasthttp.MethodGet, "http://test/calculate", "")
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())
}

func TestCalculateRejectsEmptyInstructions(t *testing.T) {
	h := newTestHandler(t)

	ctx := serve(h, fasthttp.MethodPost, "http://test/calculate",
		`{"session_id": "s", "calculation_instructions": {"tool_calls": []}}`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	var errResp model.ErrorResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &errResp))
	assert.Contains(t, errResp.Message, "tool call")
}

func TestCalculateRejectsMalformedBody(t *testing.T) {
	h := newTestHandler(t)

	ctx := serve(h, fasthttp.MethodPost, "http://test/calculate", "{not json")
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestCalculateEndToEnd(t *testing.T) {
	h := newTestHandler(t)

	ctx := serve(h, fasthttp.MethodPost, "http://test/calculate", `{
		"session_id": "s1",
		"calculation_instructions": {
			"tool_calls": [{
				"call_id": "c1",
				"tool_name": "calculate_compound_growth",
				"tool_properties": {
					"principal": 280000,
					"monthly_contribution": 1500,
					"annual_rate": 0.07,
					"years": 18
				}
			}]
		}
	}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp model.CalculationResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))

	assert.Equal(t, model.OutcomeSuccess, resp.CalculationMetadata.CalculationOutcome)
	assert.Equal(t, "s1", resp.CalculationMetadata.SessionID)
	require.Len(t, resp.CalculationResult.ToolResults, 1)

	var result struct {
		FutureValue float64 `json:"future_value"`
	}
	require.NoError(t, json.Unmarshal(resp.CalculationResult.ToolResults[0].Result, &result))
	assert.Greater(t, result.FutureValue, 1_600_000.0)
	assert.Less(t, result.FutureValue, 1_700_000.0)

	assert.NotEmpty(t, resp.CalculationResult.ToolResults[0].Summary)

	ctx = serve(h, fasthttp.MethodGet, "http://test/nope", "")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}
