package report

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/strbit/downtime/internal/lib/api/response"
	"github.com/strbit/downtime/internal/lib/logger/sl"
)

// Request is a downtime report from the primary bot's environment.
// @Description Отчёт о состоянии основного процесса
type Request struct {
	// Упал ли основной процесс
	Down *bool `json:"down" example:"true"`
}

type DowntimeReporter interface {
	ReportDown()
	ReportUp()
}

// New godoc
// @Summary Принять отчёт о состоянии основного бота
// @Description Принимает отчёт down/up. Невалидное тело возвращает ok:false со статусом 200. Задержка и алерт происходят асинхронно после ответа.
// @Tags downtime
// @Accept json
// @Produce json
// @Param request body Request true "Отчёт о состоянии"
// @Success 200 {object} response.Response "ok:true если отчёт принят, ok:false если поле down отсутствует или не boolean"
// @Router /downtime [post]
func New(log *slog.Logger, controller DowntimeReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				log.Warn("down field has wrong type", sl.Err(err))
				render.JSON(w, r, response.Fail())

				return
			}

			log.Error("failed to decode req body", sl.Err(err))
			render.JSON(w, r, response.Error("failed to decode request", err))

			return
		}

		if req.Down == nil {
			log.Warn("down field is missing")
			render.JSON(w, r, response.Fail())

			return
		}

		if *req.Down {
			controller.ReportDown()
		} else {
			controller.ReportUp()
		}

		render.JSON(w, r, response.Ok())
	}
}
