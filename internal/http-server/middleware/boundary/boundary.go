// Package boundary converts panics escaping a handler into the generic JSON
// error payload, so the control surface keeps serving and never answers with
// a bare 500.
package boundary

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/strbit/downtime/internal/lib/api/response"
)

func New(log *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}

				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				log.Error("panic while handling request",
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.Any("panic", rvr),
				)

				render.JSON(w, r, response.Error("failed to process request", fmt.Errorf("%v", rvr)))
			}()

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}
