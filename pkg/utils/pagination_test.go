package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams_Defaults(t *testing.T) {
	p := GetPaginationParams(0, -5)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.Limit)
}

func TestCalculateOffset(t *testing.T) {
	assert.Equal(t, 0, PaginationParams{Page: 1, Limit: 10}.CalculateOffset())
	assert.Equal(t, 20, PaginationParams{Page: 3, Limit: 10}.CalculateOffset())
	assert.Equal(t, 0, PaginationParams{Page: 0, Limit: 10}.CalculateOffset())
}

func TestCalculateMeta(t *testing.T) {
	meta := CalculateMeta(25, 2, 10)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.Limit)
	assert.Equal(t, int64(25), meta.TotalCount)
	assert.Equal(t, 3, meta.TotalPages)
}

func TestCalculateMeta_NoLimitReturnsEverything(t *testing.T) {
	meta := CalculateMeta(7, 3, 0)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 7, meta.Limit)
	assert.Equal(t, 1, meta.TotalPages)
}
