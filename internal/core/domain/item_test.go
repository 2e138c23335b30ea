package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
)

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "spices", domain.NormalizeCategory("  Spices "))
	assert.Equal(t, "dry fruits", domain.NormalizeCategory("Dry Fruits"))
	assert.Equal(t, "", domain.NormalizeCategory("   "))
}
