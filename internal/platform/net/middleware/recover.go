package middleware

import (
	"net/http"
	"runtime/debug"

	perr "addressbook/internal/platform/errors"
	"addressbook/internal/platform/logger"
	phttp "addressbook/internal/platform/net/http"
)

// Recover turns a handler panic into a 500 envelope and logs the stack
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
			phttp.Error(perr.PanicErrf("panic recovered")).Write(w, r)
		}()
		next.ServeHTTP(w, r)
	})
}
