package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response shape. Status is "ok" for 2xx
// responses, "error" for failures and "not found" for 404s.
type Envelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
	Error  string      `json:"error,omitempty"`
}

func NewSuccessResponse(data interface{}) Envelope {
	return Envelope{Status: "ok", Data: data}
}

func NewSuccessResponseWithMeta(data, meta interface{}) Envelope {
	return Envelope{Status: "ok", Data: data, Meta: meta}
}

func NewErrorResponse(message string) Envelope {
	return Envelope{Status: "error", Error: message}
}

func NewNotFoundResponse(message string) Envelope {
	return Envelope{Status: "not found", Error: message}
}

// WriteJSON serializes the envelope with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// WriteData writes a success envelope.
func WriteData(w http.ResponseWriter, status int, data interface{}) {
	WriteJSON(w, status, NewSuccessResponse(data))
}

// WriteError writes an error envelope, using the not-found variant for 404.
func WriteError(w http.ResponseWriter, status int, message string) {
	if status == http.StatusNotFound {
		WriteJSON(w, status, NewNotFoundResponse(message))
		return
	}
	WriteJSON(w, status, NewErrorResponse(message))
}
