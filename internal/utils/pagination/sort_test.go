package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradeledger/trade_ledger_app/internal/utils/pagination"
)

var allowed = map[string]bool{
	"name":      true,
	"createdAt": true,
}

func TestParseSortBy_Empty(t *testing.T) {
	assert.Equal(t, pagination.DefaultSort, pagination.ParseSortBy("", allowed))
}

func TestParseSortBy_FieldAndDirection(t *testing.T) {
	assert.Equal(t, pagination.Sort{Field: "name", Desc: false}, pagination.ParseSortBy("name:asc", allowed))
	assert.Equal(t, pagination.Sort{Field: "name", Desc: true}, pagination.ParseSortBy("name:desc", allowed))
	assert.Equal(t, pagination.Sort{Field: "name", Desc: true}, pagination.ParseSortBy("name:DESC", allowed))
}

func TestParseSortBy_FieldOnlyDefaultsAscending(t *testing.T) {
	assert.Equal(t, pagination.Sort{Field: "name", Desc: false}, pagination.ParseSortBy("name", allowed))
}

func TestParseSortBy_UnknownFieldFallsBack(t *testing.T) {
	assert.Equal(t, pagination.DefaultSort, pagination.ParseSortBy("password:asc", allowed))
}

func TestParseSortBy_UnknownDirectionFallsBack(t *testing.T) {
	assert.Equal(t, pagination.DefaultSort, pagination.ParseSortBy("name:sideways", allowed))
}
