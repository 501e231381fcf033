package models

// Response is the envelope returned by every API endpoint.
// Status is "success" for 2xx, "fail" for client errors, "error" for server errors.
type Response struct {
	Status  string       `json:"status"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes the page metadata for a total row count.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// OK wraps data in a success envelope.
func OK(data any) Response {
	return Response{Status: "success", Data: data}
}

// OKMessage wraps data in a success envelope with a human-readable message.
func OKMessage(message string, data any) Response {
	return Response{Status: "success", Message: message, Data: data}
}
