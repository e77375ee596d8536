// Package httputil maps domain errors onto HTTP responses so every handler
// renders failures identically.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "scanhub/pkg/domain-errors"
)

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// WriteJSON renders v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError renders a coded error; unknown errors become 500s with a generic
// message so internals do not leak.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	var body errorBody
	body.Error.Code = string(code)
	if code == dErrors.CodeInternal {
		body.Error.Message = "internal error"
	} else {
		body.Error.Message = err.Error()
	}
	WriteJSON(w, statusFor(code), body)
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeInvalidTransition, dErrors.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
