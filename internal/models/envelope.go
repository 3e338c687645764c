package models

import (
	"encoding/json"
	"net/http"
	"reflect"
)

// Envelope — единый формат ответа API:
// {status, message, data, errors}. Значение immutable,
// никакого разделяемого состояния между запросами.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Errors  any    `json:"errors"`
}

// Success собирает успешный ответ. Код по умолчанию — 200.
func Success(data any) Envelope {
	if data == nil {
		data = struct{}{}
	}
	return Envelope{
		Status:  http.StatusOK,
		Message: "success",
		Data:    data,
		Errors:  []any{},
	}
}

// Failure собирает ответ об ошибке. Код по умолчанию — 422.
// Строка заворачивается в {message: [строка]}; map/slice отдаются как есть
// (например, ошибки валидации по полям); всё остальное — generic message.
func Failure(errs any) Envelope {
	return Envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "failure",
		Data:    struct{}{},
		Errors:  normalizeErrors(errs),
	}
}

// Code переопределяет HTTP-код ответа.
func (e Envelope) Code(status int) Envelope {
	e.Status = status
	return e
}

// Write сериализует конверт и пишет его с кодом Status.
func (e Envelope) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}

func normalizeErrors(errs any) any {
	switch v := errs.(type) {
	case nil:
		return map[string][]string{}
	case string:
		return map[string][]string{"message": {v}}
	}
	// любой map/slice/array отдаётся как есть, остальное — generic message
	switch reflect.ValueOf(errs).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return errs
	}
	return map[string][]string{"message": {"An unexpected error format occurred."}}
}
