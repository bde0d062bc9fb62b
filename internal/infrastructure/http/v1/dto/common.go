// Package dto defines request and response shapes for the HTTP API.
package dto

// ListResponse wraps collection listings.
type ListResponse struct {
	Items      any `json:"items"`
	TotalCount int `json:"totalCount"`
}

// SuccessResponse reports a completed operation.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// CountResponse returns a bare collection size.
type CountResponse struct {
	Count int `json:"count"`
}

// NumberResponse returns a suggested document number.
type NumberResponse struct {
	Number string `json:"number"`
}
