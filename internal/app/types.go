package app

import (
	"encoding/json"
	"net/http"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	greeting = "YouTube Music API Backend Running 🎵"
)

// Envelope wraps every catalog response. Exactly one of Data and Message is set.
type Envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

type RootResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func successEnvelope(data json.RawMessage) Envelope {
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	return Envelope{Status: statusSuccess, Data: data}
}

func errorEnvelope(message string) Envelope {
	return Envelope{Status: statusError, Message: message}
}

// Respond the output with JSON format to the client.
func replyJSON(w http.ResponseWriter, data interface{}, code int) error {
	out, err := json.Marshal(data)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, err = w.Write(out)
	return err
}
