package domain

import (
	"github.com/shopspring/decimal"
)

// PersonOrderGroup is one row of the per-person report: the person, their
// matching orders and the sum of their paid amounts.
type PersonOrderGroup struct {
	Person          Person          `json:"person"`
	Orders          []Order         `json:"orders"`
	TotalAmountPaid decimal.Decimal `json:"totalAmountPaid"`
}

// PersonDayGroup aggregates one person's orders within a single day bucket.
type PersonDayGroup struct {
	Person                 Person          `json:"person"`
	Orders                 []Order         `json:"orders"`
	PersonPendingAmountSum decimal.Decimal `json:"personPendingAmountSum"`
}

// DateBucket groups per-person aggregates under one calendar day
// (YYYY-MM-DD of order creation time) with a day-level pending total.
type DateBucket struct {
	Date               string           `json:"date"`
	Persons            []PersonDayGroup `json:"persons"`
	TotalPendingAmount decimal.Decimal  `json:"totalPendingAmount"`
}
