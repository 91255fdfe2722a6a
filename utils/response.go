package utils

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the success envelope.
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// APIError is the failure envelope. It never carries internal error details.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

func NewAPIResponse(statusCode int, data interface{}, message string) APIResponse {
	return APIResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < http.StatusBadRequest,
	}
}

func NewAPIError(statusCode int, message string) APIError {
	return APIError{StatusCode: statusCode, Message: message, Success: false}
}

func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(v)
}

func RespondSuccess(w http.ResponseWriter, statusCode int, data interface{}, message string) error {
	return WriteJSON(w, statusCode, NewAPIResponse(statusCode, data, message))
}

func RespondError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, NewAPIError(statusCode, message))
}
