package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeOrderTotals_PartialPayment(t *testing.T) {
	items := []domain.OrderItem{
		{ItemID: "a", Quantity: 2, Price: dec("50"), Unit: domain.UnitKilogram},
	}

	totals, err := domain.ComputeOrderTotals(items, dec("60"))

	require.NoError(t, err)
	assert.True(t, totals.TotalAmount.Equal(dec("100")), "total = %s", totals.TotalAmount)
	assert.True(t, totals.AmountPending.Equal(dec("40")), "pending = %s", totals.AmountPending)
	assert.Equal(t, domain.OrderPending, totals.Status)
}

func TestComputeOrderTotals_FullyPaidCompletes(t *testing.T) {
	items := []domain.OrderItem{
		{ItemID: "a", Quantity: 2, Price: dec("50"), Unit: domain.UnitNumber},
	}

	totals, err := domain.ComputeOrderTotals(items, dec("100"))

	require.NoError(t, err)
	assert.True(t, totals.AmountPending.IsZero())
	assert.Equal(t, domain.OrderCompleted, totals.Status)
}

func TestComputeOrderTotals_MultipleLines(t *testing.T) {
	items := []domain.OrderItem{
		{ItemID: "a", Quantity: 3, Price: dec("10.50"), Unit: domain.UnitGram},
		{ItemID: "b", Quantity: 1, Price: dec("8.25"), Unit: domain.UnitNumber},
	}

	totals, err := domain.ComputeOrderTotals(items, decimal.Zero)

	require.NoError(t, err)
	assert.True(t, totals.TotalAmount.Equal(dec("39.75")), "total = %s", totals.TotalAmount)
	assert.True(t, totals.AmountPending.Equal(dec("39.75")))
	assert.Equal(t, domain.OrderPending, totals.Status)
}

func TestComputeOrderTotals_PaidExceedsTotal(t *testing.T) {
	items := []domain.OrderItem{
		{ItemID: "a", Quantity: 1, Price: dec("10"), Unit: domain.UnitNumber},
	}

	_, err := domain.ComputeOrderTotals(items, dec("10.01"))

	assert.ErrorIs(t, err, domain.ErrPaidExceedsTotal)
}

func TestComputeOrderTotals_NoItems(t *testing.T) {
	totals, err := domain.ComputeOrderTotals(nil, decimal.Zero)

	require.NoError(t, err)
	assert.True(t, totals.TotalAmount.IsZero())
	assert.Equal(t, domain.OrderCompleted, totals.Status)
}

func TestValidateCounterparty(t *testing.T) {
	assert.NoError(t, domain.OrderSale.ValidateCounterparty(domain.PersonCustomer))
	assert.NoError(t, domain.OrderPurchase.ValidateCounterparty(domain.PersonSupplier))
	assert.Error(t, domain.OrderSale.ValidateCounterparty(domain.PersonSupplier))
	assert.Error(t, domain.OrderPurchase.ValidateCounterparty(domain.PersonCustomer))
}

func TestBalanceDelta_ApplyAndReverseNetsToZero(t *testing.T) {
	delta := domain.NewBalanceDelta()
	delta.ApplyPending(domain.OrderSale, "person-1", dec("40"))
	delta.ReversePending(domain.OrderSale, "person-1", dec("40"))

	assert.True(t, delta.IsZero())
}

func TestBalanceDelta_MoveBetweenPersons(t *testing.T) {
	delta := domain.NewBalanceDelta()
	delta.ReversePending(domain.OrderSale, "person-old", dec("40"))
	delta.ApplyPending(domain.OrderSale, "person-new", dec("40"))

	assert.True(t, delta.Receivable.IsZero())
	assert.True(t, delta.Payable.IsZero())
	assert.True(t, delta.PersonOverdue["person-old"].Equal(dec("-40")))
	assert.True(t, delta.PersonOverdue["person-new"].Equal(dec("40")))
}

func TestBalanceDelta_PurchaseTargetsPayable(t *testing.T) {
	delta := domain.NewBalanceDelta()
	delta.ApplyPending(domain.OrderPurchase, "person-1", dec("25"))

	assert.True(t, delta.Receivable.IsZero())
	assert.True(t, delta.Payable.Equal(dec("25")))
	assert.True(t, delta.PersonOverdue["person-1"].Equal(dec("25")))
}
