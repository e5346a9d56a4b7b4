package router

import (
	"encoding/json"
	"strings"

	"github.com/valyala/fasthttp"

	"assessment-api/internal/middleware"
	"assessment-api/internal/utils"
)

// Route declares one endpoint. RequiresAuth is spelled out per route so the
// gating policy is configuration that can be read in one place, not an
// omission buried in handler code.
type Route struct {
	Method       string
	Path         string
	RequiresAuth bool
	Handler      fasthttp.RequestHandler
}

type Router struct {
	routes []Route
	auth   *middleware.AuthMiddleware
}

func New(auth *middleware.AuthMiddleware) *Router {
	utils.LogSuccess("Router", "Router initialized")
	return &Router{auth: auth}
}

func (r *Router) Register(route Route) {
	if route.RequiresAuth {
		route.Handler = r.auth.RequireAuth(route.Handler)
	}
	r.routes = append(r.routes, route)
	utils.LogInfo("Router", "Registered %s %s (auth: %t)", route.Method, route.Path, route.RequiresAuth)
}

// Handler dispatches a request against the route table. Pattern segments
// starting with ':' capture the path segment into the request context.
func (r *Router) Handler(ctx *fasthttp.RequestCtx) {
	method := string(ctx.Method())
	path := string(ctx.Path())

	pathMatched := false
	for _, route := range r.routes {
		params, ok := matchPath(route.Path, path)
		if !ok {
			continue
		}
		pathMatched = true
		if route.Method != method {
			continue
		}

		for name, value := range params {
			ctx.SetUserValue(name, value)
		}
		route.Handler(ctx)
		return
	}

	if pathMatched {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
	} else {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	}
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(map[string]string{
		"message": "Not found",
	})
}

func matchPath(pattern, path string) (map[string]string, bool) {
	patternSegments := strings.Split(strings.Trim(pattern, "/"), "/")
	pathSegments := strings.Split(strings.Trim(path, "/"), "/")

	if len(patternSegments) != len(pathSegments) {
		return nil, false
	}

	var params map[string]string
	for i, segment := range patternSegments {
		if strings.HasPrefix(segment, ":") {
			if pathSegments[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[segment[1:]] = pathSegments[i]
			continue
		}
		if segment != pathSegments[i] {
			return nil, false
		}
	}

	return params, true
}
