package handlers

import (
	"encoding/json"

	"github.com/valyala/fasthttp"
)

// Error codes returned to clients in place of raw store errors.
const (
	errBadRequest  = "bad_request"
	errPersistence = "persistence_failure"
	errInternal    = "internal_error"
)

func respondJSON(ctx *fasthttp.RequestCtx, statusCode int, payload interface{}) {
	ctx.SetStatusCode(statusCode)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(payload)
}
