package api

// Wire contract shared by the client and the reference admin API.

// Pagination describes the page window of a list response.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
}

// ListEnvelope is the response body of GET /api/admin/{entity}.
type ListEnvelope[T any] struct {
	Data       []T            `json:"data"`
	Stats      map[string]int `json:"stats,omitempty"`
	Pagination Pagination     `json:"pagination"`
}

// BulkRequest is the body of POST /api/admin/{entity}/bulk.
type BulkRequest struct {
	Action  string  `json:"action"`
	IDs     []int64 `json:"ids"`
	BatchID string  `json:"batch_id,omitempty"`
}

// BulkFailure reports one ID a bulk action could not process.
type BulkFailure struct {
	ID    int64  `json:"id"`
	Error string `json:"error"`
}

// BulkResult reports per-ID outcomes of a bulk action.
type BulkResult struct {
	Action    string        `json:"action"`
	Succeeded []int64       `json:"succeeded"`
	Failed    []BulkFailure `json:"failed,omitempty"`
}

// ErrorBody is the JSON error shape the admin API returns on failure.
type ErrorBody struct {
	Error string `json:"error"`
}
