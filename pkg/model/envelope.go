package model

// APIResponse is the envelope every upstream endpoint wraps its payload in.
type APIResponse[T any] struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Data      *T     `json:"data,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}
