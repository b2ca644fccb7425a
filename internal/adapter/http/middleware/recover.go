package middleware

import (
	"fmt"
	"net/http"
)

func (h *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if panicValue := recover(); panicValue != nil {
				w.Header().Set("Connection", "close")
				h.log.Error(r.Context(), "recovered from panic", fmt.Errorf("%v", panicValue))
				errorResponse(w, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
