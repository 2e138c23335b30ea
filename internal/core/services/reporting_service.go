package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portsrepo "github.com/tradeledger/trade_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tradeledger/trade_ledger_app/internal/core/ports/services"
	"github.com/tradeledger/trade_ledger_app/internal/dto"
)

// reportingService aggregates the user's orders into the per-person and
// per-day report shapes. The repository supplies flat rows; all grouping
// happens here.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	personRepo    portsrepo.PersonRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, personRepo portsrepo.PersonRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo, personRepo: personRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// personsForOrders resolves the distinct counterparties of the given orders.
func (s *reportingService) personsForOrders(ctx context.Context, orders []domain.Order) (map[string]domain.Person, error) {
	seen := make(map[string]bool)
	var personIDs []string
	for _, order := range orders {
		if !seen[order.PersonID] {
			seen[order.PersonID] = true
			personIDs = append(personIDs, order.PersonID)
		}
	}
	return s.personRepo.FindPersonsByIDs(ctx, personIDs)
}

// ReportByPerson groups the user's filtered orders per person with paid sums,
// plus a global total paid over the whole filtered set.
func (s *reportingService) ReportByPerson(ctx context.Context, userID string, params dto.ReportParams) (*dto.ReportResponse, error) {
	params.Normalize()

	orders, err := s.reportingRepo.FindOrdersForReport(ctx, portsrepo.ReportFilter{
		UserID:    userID,
		PersonID:  params.PersonID,
		Status:    params.Status,
		OrderType: params.Type,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		MinAmount: params.MinAmount,
		MaxAmount: params.MaxAmount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load report orders: %w", err)
	}

	persons, err := s.personsForOrders(ctx, orders)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve report persons: %w", err)
	}

	totalPaid := decimal.Zero
	groupIndex := make(map[string]int)
	var groups []domain.PersonOrderGroup
	for _, order := range orders {
		totalPaid = totalPaid.Add(order.AmountPaid)
		idx, ok := groupIndex[order.PersonID]
		if !ok {
			idx = len(groups)
			groupIndex[order.PersonID] = idx
			groups = append(groups, domain.PersonOrderGroup{
				Person:          persons[order.PersonID],
				TotalAmountPaid: decimal.Zero,
			})
		}
		groups[idx].Orders = append(groups[idx].Orders, order)
		groups[idx].TotalAmountPaid = groups[idx].TotalAmountPaid.Add(order.AmountPaid)
	}

	// Most recently active counterparty first.
	sort.SliceStable(groups, func(i, j int) bool {
		lastOf := func(g domain.PersonOrderGroup) int64 {
			last := g.Orders[len(g.Orders)-1]
			return last.CreatedAt.UnixNano()
		}
		return lastOf(groups[i]) > lastOf(groups[j])
	})

	total := len(groups)
	page := pageSlice(groups, params.Offset(), params.Limit)

	resp := &dto.ReportResponse{
		Results:     make([]dto.PersonGroupResponse, len(page)),
		TotalAmount: totalPaid,
		PageMeta:    dto.NewPageMeta(params.Page, params.Limit, total),
	}
	for i, group := range page {
		resp.Results[i] = dto.ToPersonGroupResponse(group)
	}
	return resp, nil
}

// GroupedByDate buckets the user's orders per calendar day and person with
// pending subtotals and day totals, newest day first.
func (s *reportingService) GroupedByDate(ctx context.Context, userID string, params dto.GroupedReportParams) (*dto.GroupedReportResponse, error) {
	params.Normalize()

	orders, err := s.reportingRepo.FindOrdersForReport(ctx, portsrepo.ReportFilter{
		UserID:     userID,
		PersonID:   params.PersonID,
		PersonType: params.Type,
		StartDate:  params.StartDate,
		EndDate:    params.EndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load report orders: %w", err)
	}

	persons, err := s.personsForOrders(ctx, orders)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve report persons: %w", err)
	}

	type dayKey struct {
		date     string
		personID string
	}
	bucketIndex := make(map[string]int)
	dayGroupIndex := make(map[dayKey]int)
	var buckets []domain.DateBucket

	for _, order := range orders {
		date := order.CreatedAt.Format("2006-01-02")
		bi, ok := bucketIndex[date]
		if !ok {
			bi = len(buckets)
			bucketIndex[date] = bi
			buckets = append(buckets, domain.DateBucket{
				Date:               date,
				TotalPendingAmount: decimal.Zero,
			})
		}

		key := dayKey{date: date, personID: order.PersonID}
		gi, ok := dayGroupIndex[key]
		if !ok {
			gi = len(buckets[bi].Persons)
			dayGroupIndex[key] = gi
			buckets[bi].Persons = append(buckets[bi].Persons, domain.PersonDayGroup{
				Person:                 persons[order.PersonID],
				PersonPendingAmountSum: decimal.Zero,
			})
		}
		group := &buckets[bi].Persons[gi]
		group.Orders = append(group.Orders, order)
		group.PersonPendingAmountSum = group.PersonPendingAmountSum.Add(order.AmountPending)
		buckets[bi].TotalPendingAmount = buckets[bi].TotalPendingAmount.Add(order.AmountPending)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Date > buckets[j].Date
	})

	total := len(buckets)
	page := pageSlice(buckets, params.Offset(), params.Limit)

	resp := &dto.GroupedReportResponse{
		Results:  make([]dto.DateBucketResponse, len(page)),
		PageMeta: dto.NewPageMeta(params.Page, params.Limit, total),
	}
	for i, bucket := range page {
		resp.Results[i] = dto.ToDateBucketResponse(bucket)
	}
	return resp, nil
}

// pageSlice returns the [offset, offset+limit) window of s, clamped.
func pageSlice[T any](s []T, offset, limit int) []T {
	if offset >= len(s) {
		return nil
	}
	end := offset + limit
	if end > len(s) {
		end = len(s)
	}
	return s[offset:end]
}
