package dto

import "reviewio/internal/pagination"

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// ErrorResponse: status is "fail" for 4xx and "error" for 5xx.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

type Doc[T any] struct {
	Doc T `json:"doc"`
}

type DocResponse[T any] struct {
	Status string `json:"status"`
	Data   Doc[T] `json:"data"`
}

type ListResponse[T any] struct {
	Status  string   `json:"status"`
	Total   int64    `json:"total"`
	Results int      `json:"results"`
	HasNext bool     `json:"hasNext"`
	Page    int64    `json:"page"`
	Data    Doc[[]T] `json:"data"`
}

type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func OK[T any](doc T) DocResponse[T] {
	return DocResponse[T]{Status: StatusSuccess, Data: Doc[T]{Doc: doc}}
}

func List[T any](p pagination.Page[T]) ListResponse[T] {
	return ListResponse[T]{
		Status:  StatusSuccess,
		Total:   p.Total,
		Results: len(p.Items),
		HasNext: p.HasNext,
		Page:    p.Page,
		Data:    Doc[[]T]{Doc: p.Items},
	}
}

func Message(msg string) MessageResponse {
	return MessageResponse{Status: StatusSuccess, Message: msg}
}
