package handler

import "github.com/realtyadmin/backend/internal/interfaces/http/dto"

// Envelope shapes for the OpenAPI document. Handlers write dto.Response; these
// only give swag a typed view of it.

// APIResponse is the success envelope with a typed data field
type APIResponse[T any] struct {
	Success bool      `json:"success" example:"true"`
	Data    T         `json:"data,omitempty"`
	Meta    *dto.Meta `json:"meta,omitempty"`
}

// ErrorResponse is the failure envelope
type ErrorResponse struct {
	Success bool      `json:"success" example:"false"`
	Error   ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code      string `json:"code" example:"ERR_NOT_FOUND"`
	Message   string `json:"message" example:"Unit not found"`
	RequestID string `json:"request_id,omitempty" example:"5f0c7a4e-1d2b-4c8e-9a6f-3e2d1c0b9a87"`
}

// ValidationErrorResponse is returned with 400 when binding or validation
// rejects the request; details is empty for malformed JSON
type ValidationErrorResponse struct {
	Success bool                `json:"success" example:"false"`
	Error   ValidationErrorBody `json:"error"`
}

type ValidationErrorBody struct {
	Code      string                 `json:"code" example:"ERR_VALIDATION"`
	Message   string                 `json:"message" example:"Request validation failed"`
	RequestID string                 `json:"request_id,omitempty"`
	Details   []dto.ValidationDetail `json:"details,omitempty"`
}
