package clix

import (
	"github.com/spf13/pflag"
)

type PaginationParams struct {
	Limit  int
	Offset int
}

// ParsePagination reads the shared --limit/--offset flags, clamping them to
// sane values so callers never see a non-positive page size.
func ParsePagination(flags *pflag.FlagSet) (PaginationParams, error) {
	limit, _ := flags.GetInt("limit")
	offset, _ := flags.GetInt("offset")
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return PaginationParams{Limit: limit, Offset: offset}, nil
}
