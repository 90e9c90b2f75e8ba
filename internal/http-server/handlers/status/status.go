package status

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/strbit/downtime/internal/downtime"
	"github.com/strbit/downtime/internal/lib/api/response"
)

// Response reports the current failover state.
// @Description Текущее состояние перехвата трафика
type Response struct {
	response.Response
	// UP, PENDING_DOWN или DOWN
	Status string `json:"status" example:"UP"`
	// Перехватывает ли сейчас sidecar сообщения
	Down bool `json:"down" example:"false"`
	// Включён ли принудительный режим
	Forced bool `json:"forced" example:"false"`
	// Когда начался период ожидания (если идёт)
	PendingSince *time.Time `json:"pending_since,omitempty"`
}

type StateGiver interface {
	State() downtime.State
}

// New godoc
// @Summary Текущее состояние failover
// @Tags downtime
// @Produce json
// @Success 200 {object} Response
// @Router /downtime [get]
func New(log *slog.Logger, giver StateGiver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.status.New"

		st := giver.State()

		log.Debug("state requested",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("status", string(st.Status)),
		)

		resp := Response{
			Response: response.Ok(),
			Status:   string(st.Status),
			Down:     st.Status == downtime.StatusDown,
			Forced:   st.Forced,
		}

		if !st.PendingSince.IsZero() {
			since := st.PendingSince
			resp.PendingSince = &since
		}

		render.JSON(w, r, resp)
	}
}
