package database

import (
	"strings"

	"kanbot/internal/models"
)

// Sort defaults applied when a caller passes unknown values.
const (
	DefaultSortField = "created_at"
	OrderAsc         = "ASC"
	OrderDesc        = "DESC"
)

// taskSortFields is the allow-list of columns a task listing may sort by.
// Sorting is interpolated into the query text, so anything outside this set
// is replaced with the default rather than rejected.
var taskSortFields = map[string]bool{
	"id":         true,
	"title":      true,
	"status":     true,
	"created_at": true,
	"updated_at": true,
	"priority":   true,
	"due_date":   true,
}

// ListOptions controls sorting and filtering of task listings
type ListOptions struct {
	SortBy string // column name, allow-listed
	Order  string // ASC or DESC, case-insensitive
	Status string // optional status filter, empty means all
}

// NormalizeListOptions coerces invalid sort, order, and filter values to safe
// defaults. Compatibility dictates silent normalization instead of errors, so
// it is an explicit step callers (and tests) can observe.
func NormalizeListOptions(opts ListOptions) ListOptions {
	if !taskSortFields[opts.SortBy] {
		opts.SortBy = DefaultSortField
	}

	switch strings.ToUpper(opts.Order) {
	case OrderAsc, OrderDesc:
		opts.Order = strings.ToUpper(opts.Order)
	default:
		opts.Order = OrderAsc
	}

	if opts.Status != "" && !models.IsValidStatus(opts.Status) {
		opts.Status = ""
	}

	return opts
}
