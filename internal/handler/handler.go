package handler

import (
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"retirement-engine/internal/engine"
	"retirement-engine/internal/model"
)

type Handler struct {
	engine *engine.Engine
	log    zerolog.Logger
}

func New(eng *engine.Engine, log zerolog.Logger) *Handler {
	return &Handler{
		engine: eng,
		log:    log.With().Str("component", "handler").Logger(),
	}
}

// Handle routes all requests: POST /calculate runs a calculation,
// GET /healthz reports liveness.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/calculate":
		h.handleCalculation(ctx)
	case "/healthz":
		if !ctx.IsGet() {
			h.writeError(ctx, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"status":"ok"}`)
	default:
		h.writeError(ctx, http.StatusNotFound, "Not found")
	}
}

func (h *Handler) handleCalculation(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		h.writeError(ctx, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req model.CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.writeError(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.CalculationInstructions.ToolCalls) == 0 {
		h.writeError(ctx, http.StatusBadRequest, "At least one tool call is required")
		return
	}

	resp := h.engine.Process(&req)

	ctx.SetContentType("application/json")
	body, err := json.Marshal(resp)
	if err != nil {
		h.log.Error().Err(err).Msg("encoding response")
		h.writeError(ctx, http.StatusInternalServerError, "Failed to encode response")
		return
	}
	ctx.SetBody(body)
}

func (h *Handler) writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(model.ErrorResponse{Status: status, Message: message})
	ctx.SetBody(body)
}
