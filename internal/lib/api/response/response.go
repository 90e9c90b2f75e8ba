package response

// Response is the control-surface envelope. The endpoint never uses error
// status codes: validation failures are reported as ok=false with HTTP 200.
// @Description Стандартный ответ управляющего API
type Response struct {
	// Принят ли отчёт
	OK bool `json:"ok" example:"true"`
}

// ErrorPayload is the generic boundary error body for failures that are not
// plain validation errors (panics, broken request bodies).
// @Description Ответ при внутренней ошибке обработчика
type ErrorPayload struct {
	// Человекочитаемое описание
	Message string `json:"message" example:"failed to process request"`
	// Детали ошибки
	Err string `json:"err,omitempty" example:"unexpected EOF"`
}

// Ok returns an accepted response.
func Ok() Response {
	return Response{OK: true}
}

// Fail returns a rejected response.
func Fail() Response {
	return Response{OK: false}
}

// Error returns a generic boundary error payload.
func Error(msg string, err error) ErrorPayload {
	p := ErrorPayload{Message: msg}
	if err != nil {
		p.Err = err.Error()
	}

	return p
}
