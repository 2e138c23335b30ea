package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
)

// ReportParams defines the filters for the per-person order report.
type ReportParams struct {
	PersonID  string           `form:"personId"`
	Status    string           `form:"status" binding:"omitempty,oneof=pending completed"`
	Type      string           `form:"type" binding:"omitempty,oneof=sale purchase"`
	StartDate *time.Time       `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time       `form:"endDate" time_format:"2006-01-02"`
	MinAmount *decimal.Decimal `form:"minAmount"`
	MaxAmount *decimal.Decimal `form:"maxAmount"`
	PageParams
}

// GroupedReportParams defines the filters for the grouped-by-date report.
type GroupedReportParams struct {
	PersonID  string     `form:"personId"`
	Type      string     `form:"type" binding:"omitempty,oneof=customer supplier"`
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
	PageParams
}

// PersonGroupResponse is one row of the per-person report.
type PersonGroupResponse struct {
	Person          PersonResponse  `json:"person"`
	Orders          []OrderResponse `json:"orders"`
	TotalAmountPaid decimal.Decimal `json:"totalAmountPaid"`
}

// ReportResponse is the paginated per-person report, with the total paid
// amount over the whole filtered set.
type ReportResponse struct {
	Results     []PersonGroupResponse `json:"results"`
	TotalAmount decimal.Decimal       `json:"totalAmount"`
	PageMeta
}

// PersonDayGroupResponse is one person's aggregate inside a day bucket.
type PersonDayGroupResponse struct {
	Person                 PersonResponse  `json:"person"`
	Orders                 []OrderResponse `json:"orders"`
	PersonPendingAmountSum decimal.Decimal `json:"personPendingAmountSum"`
}

// DateBucketResponse is one calendar day of the grouped-by-date report.
type DateBucketResponse struct {
	Date               string                   `json:"date"`
	Persons            []PersonDayGroupResponse `json:"persons"`
	TotalPendingAmount decimal.Decimal          `json:"totalPendingAmount"`
}

// GroupedReportResponse is the paginated grouped-by-date report.
type GroupedReportResponse struct {
	Results []DateBucketResponse `json:"results"`
	PageMeta
}

// ToPersonGroupResponse converts a domain report row.
func ToPersonGroupResponse(g domain.PersonOrderGroup) PersonGroupResponse {
	return PersonGroupResponse{
		Person:          ToPersonResponse(&g.Person),
		Orders:          ToOrderResponses(g.Orders),
		TotalAmountPaid: g.TotalAmountPaid,
	}
}

// ToDateBucketResponse converts a domain day bucket.
func ToDateBucketResponse(b domain.DateBucket) DateBucketResponse {
	persons := make([]PersonDayGroupResponse, len(b.Persons))
	for i, pg := range b.Persons {
		persons[i] = PersonDayGroupResponse{
			Person:                 ToPersonResponse(&pg.Person),
			Orders:                 ToOrderResponses(pg.Orders),
			PersonPendingAmountSum: pg.PersonPendingAmountSum,
		}
	}
	return DateBucketResponse{
		Date:               b.Date,
		Persons:            persons,
		TotalPendingAmount: b.TotalPendingAmount,
	}
}
