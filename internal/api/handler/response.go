package handler

import "github.com/sunshine-recruitment/portal/internal/core/domain"

// apiError documents the envelope rendered by the API error handler.
type apiError struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type userResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user"`
}

func success(message string) messageResponse {
	return messageResponse{Success: true, Message: message}
}
