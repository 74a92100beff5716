// Package actor carries the placeholder identity recorded on writes.
//
// There is no authentication. The identity comes from the X-Staff-Actor
// header when a front end supplies one, otherwise from configuration.
package actor

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/staffhub/internal/app/system/htmlsanitize"
)

// Header is the request header read by Middleware.
const Header = "X-Staff-Actor"

type ctxKey struct{}

// With returns a copy of ctx carrying name.
func With(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, ctxKey{}, name)
}

// From returns the actor stored in ctx, or "" when none was set.
func From(ctx context.Context) string {
	s, _ := ctx.Value(ctxKey{}).(string)
	return s
}

// Middleware stores the request's actor in its context, falling back to def.
func Middleware(def string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name := strings.TrimSpace(htmlsanitize.PlainText(r.Header.Get(Header)))
			if name == "" {
				name = def
			}
			next.ServeHTTP(w, r.WithContext(With(r.Context(), name)))
		})
	}
}
