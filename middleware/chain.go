// ABOUTME: Helper for composing per-route middleware stacks
// ABOUTME: First middleware listed runs outermost

package middleware

import "net/http"

// Chain wraps h with the given middleware, outermost first, so
// Chain(h, logging, cors, ratelimit) serves as logging(cors(ratelimit(h))).
func Chain(h http.HandlerFunc, mws ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
