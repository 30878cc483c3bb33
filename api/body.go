package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/xraph/forge"
)

// emptyJSONBody gives POSTs with a known zero-length body an empty JSON
// object, so they bind like "{}".
func emptyJSONBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.ContentLength == 0 {
			r.Body = io.NopCloser(strings.NewReader("{}"))
			r.ContentLength = 2
			r.Header.Set("Content-Type", "application/json")
		}
		next.ServeHTTP(w, r)
	})
}

// bind decodes the request body into v. An empty body leaves v zero.
func bind(ctx forge.Context, v any) error {
	if err := ctx.Bind(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
