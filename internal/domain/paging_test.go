package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePage(t *testing.T) {
	assert.NoError(t, ValidatePage(0, 1))
	assert.NoError(t, ValidatePage(3, MaxPageSize))

	assert.ErrorIs(t, ValidatePage(-1, 10), ErrValidation)
	assert.ErrorIs(t, ValidatePage(0, 0), ErrValidation)
	assert.ErrorIs(t, ValidatePage(0, MaxPageSize+1), ErrValidation)

	assert.ErrorIs(t, ValidatePage(1<<62, 2), ErrValidation)
	assert.ErrorIs(t, ValidatePage(math.MaxInt, 1), ErrValidation)
	last := (math.MaxInt - MaxPageSize) / MaxPageSize
	assert.NoError(t, ValidatePage(last, MaxPageSize))
	assert.Positive(t, Offset(last, MaxPageSize))
}

func TestPaging(t *testing.T) {
	tests := []struct {
		total int64
		size  int
		pages int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 5, 5},
	}

	for _, tt := range tests {
		p := &Page[int]{Number: 1, Size: tt.size, Total: tt.total}
		assert.Equal(t, Paging{Size: tt.size, TotalPage: tt.pages, CurrentPage: 1}, *p.Paging(), "total=%d size=%d", tt.total, tt.size)
	}

	assert.Equal(t, 20, Offset(2, 10))
}
