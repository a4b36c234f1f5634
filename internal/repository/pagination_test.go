package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListParams_Normalize(t *testing.T) {
	tests := []struct {
		name          string
		params        ListParams
		expectedPage  int
		expectedLimit int
	}{
		{
			name:          "zero values fall back to defaults",
			params:        ListParams{},
			expectedPage:  DefaultPage,
			expectedLimit: DefaultLimit,
		},
		{
			name:          "negative values fall back to defaults",
			params:        ListParams{Page: -2, Limit: -5},
			expectedPage:  DefaultPage,
			expectedLimit: DefaultLimit,
		},
		{
			name:          "valid values pass through",
			params:        ListParams{Page: 3, Limit: 25},
			expectedPage:  3,
			expectedLimit: 25,
		},
		{
			name:          "limit is capped",
			params:        ListParams{Page: 1, Limit: 5000},
			expectedPage:  1,
			expectedLimit: MaxLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.Normalize()
			assert.Equal(t, tt.expectedPage, tt.params.Page)
			assert.Equal(t, tt.expectedLimit, tt.params.Limit)
		})
	}
}

func TestListParams_Offset(t *testing.T) {
	params := ListParams{Page: 4, Limit: 10}
	assert.Equal(t, 30, params.Offset())

	params = ListParams{Page: 1, Limit: 50}
	assert.Equal(t, 0, params.Offset())
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name          string
		limit         int
		total         int64
		expectedPages int
	}{
		{name: "empty table", limit: 10, total: 0, expectedPages: 0},
		{name: "exact multiple", limit: 10, total: 30, expectedPages: 3},
		{name: "partial last page", limit: 10, total: 31, expectedPages: 4},
		{name: "single row", limit: 10, total: 1, expectedPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := ListParams{Page: 1, Limit: tt.limit}
			p := NewPagination(params, tt.total)

			assert.Equal(t, tt.expectedPages, p.TotalPages)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.limit, p.Limit)
		})
	}
}
