package model

// ApiResponse is the envelope every typed backend reply is wrapped in. Failures are
// signalled by the HTTP status, never inside the envelope.
type ApiResponse[T any] struct {
	Data T `json:"data"`
}

type PaginatedResponse[T any] struct {
	Data  []T `json:"data"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}
