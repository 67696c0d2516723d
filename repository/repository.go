package repository

import "errors"

// Sentinel errors shared by all stores.
var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrUnknownTag is returned when a tag sync references a missing tag id.
	ErrUnknownTag = errors.New("unknown tag id")
)

// LoadOptions declares which post relations to eager-load. Every relationship
// load is explicit; nothing is lazily fetched after the query returns.
type LoadOptions struct {
	Author   bool
	Category bool
	Tags     bool
}

// Pagination carries page metadata for list payloads.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func paginate(page, perPage int, total int64) Pagination {
	return Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: int((total + int64(perPage) - 1) / int64(perPage)),
	}
}
