package handlers

import (
	"github.com/valyala/fasthttp"
)

// HomeHandler answers GET / with the greeting the original API shipped.
func HomeHandler(ctx *fasthttp.RequestCtx) {
	respondJSON(ctx, fasthttp.StatusOK, map[string]string{
		"success": "Hello World",
	})
}
