package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tradeledger/trade_ledger_app/internal/apperrors"
	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portsrepo "github.com/tradeledger/trade_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tradeledger/trade_ledger_app/internal/core/ports/services"
	"github.com/tradeledger/trade_ledger_app/internal/dto"
	"github.com/tradeledger/trade_ledger_app/internal/middleware"
	"github.com/tradeledger/trade_ledger_app/internal/utils/pagination"
)

// orderSortFields whitelists sortBy fields for order listings.
var orderSortFields = map[string]bool{
	"createdAt":     true,
	"totalAmount":   true,
	"amountPaid":    true,
	"amountPending": true,
	"status":        true,
	"type":          true,
}

// orderService keeps order totals and the user/person balance aggregates
// mutually consistent across the order lifecycle. Every mutation computes one
// balance delta which the repository applies in the same transaction as the
// order write.
type orderService struct {
	orderRepo     portsrepo.OrderRepositoryFacade
	personRepo    portsrepo.PersonRepositoryFacade
	inventoryRepo portsrepo.InventoryRepositoryFacade
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo portsrepo.OrderRepositoryFacade, personRepo portsrepo.PersonRepositoryFacade, inventoryRepo portsrepo.InventoryRepositoryFacade) portssvc.OrderSvcFacade {
	return &orderService{
		orderRepo:     orderRepo,
		personRepo:    personRepo,
		inventoryRepo: inventoryRepo,
	}
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

// resolveCounterparty loads the person and validates ownership and the
// sale=>customer / purchase=>supplier rule.
func (s *orderService) resolveCounterparty(ctx context.Context, user *domain.User, orderType domain.OrderType, personID string) (*domain.Person, error) {
	person, err := s.personRepo.FindPersonByID(ctx, personID)
	if err != nil {
		return nil, err
	}
	if person.UserID != user.UserID {
		return nil, fmt.Errorf("%w: person %s does not belong to user", apperrors.ErrForbidden, personID)
	}
	if err := orderType.ValidateCounterparty(person.Type); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return person, nil
}

// buildOrderLines resolves the requested lines against the catalog and the
// user's inventory. Sale lines must reference inventory members; purchase
// lines outside the inventory are returned as memberships to add.
func (s *orderService) buildOrderLines(ctx context.Context, user *domain.User, orderType domain.OrderType, reqItems []dto.OrderItemRequest) ([]domain.OrderItem, []string, error) {
	itemIDs := make([]string, len(reqItems))
	for i, line := range reqItems {
		itemIDs[i] = line.ItemID
	}

	catalog, err := s.inventoryRepo.FindItemsByIDs(ctx, itemIDs)
	if err != nil {
		return nil, nil, err
	}
	membership, err := s.inventoryRepo.MembershipSet(ctx, user.InventoryID, itemIDs)
	if err != nil {
		return nil, nil, err
	}

	lines := make([]domain.OrderItem, len(reqItems))
	var addItemIDs []string
	for i, line := range reqItems {
		item, ok := catalog[line.ItemID]
		if !ok {
			return nil, nil, fmt.Errorf("%w: item %s", apperrors.ErrNotFound, line.ItemID)
		}
		if !membership[line.ItemID] {
			if orderType == domain.OrderSale {
				return nil, nil, fmt.Errorf("%w: item %s not in inventory", apperrors.ErrNotFound, line.ItemID)
			}
			addItemIDs = append(addItemIDs, line.ItemID)
		}
		lines[i] = domain.OrderItem{
			ItemID:   line.ItemID,
			ItemName: item.Name,
			Quantity: line.Quantity,
			Price:    line.Price,
			Unit:     domain.ItemUnit(line.Unit),
		}
	}
	return lines, addItemIDs, nil
}

// CreateOrder validates the counterparty and inventory membership, derives
// the totals and persists the order with its aggregate adjustments.
func (s *orderService) CreateOrder(ctx context.Context, user *domain.User, req dto.CreateOrderRequest) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	orderType := domain.OrderType(req.Type)
	person, err := s.resolveCounterparty(ctx, user, orderType, req.PersonID)
	if err != nil {
		return nil, err
	}

	lines, addItemIDs, err := s.buildOrderLines(ctx, user, orderType, req.Items)
	if err != nil {
		return nil, err
	}

	totals, err := domain.ComputeOrderTotals(lines, req.AmountPaid)
	if err != nil {
		if errors.Is(err, domain.ErrPaidExceedsTotal) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		return nil, err
	}

	now := time.Now()
	order := domain.Order{
		OrderID:       uuid.NewString(),
		UserID:        user.UserID,
		PersonID:      person.PersonID,
		PersonName:    person.Name,
		Type:          orderType,
		Status:        totals.Status,
		Items:         lines,
		AmountPaid:    req.AmountPaid,
		AmountPending: totals.AmountPending,
		TotalAmount:   totals.TotalAmount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	delta := domain.NewBalanceDelta()
	delta.ApplyPending(orderType, person.PersonID, totals.AmountPending)

	if err := s.orderRepo.SaveOrder(ctx, order, user.InventoryID, addItemIDs, delta); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	if req.ShopNumber != "" && req.ShopNumber != person.ShopNumber {
		person.ShopNumber = req.ShopNumber
		person.LastUpdatedAt = now
		if err := s.personRepo.UpdatePerson(ctx, *person); err != nil {
			logger.Warn("Failed to update person shop number", "person_id", person.PersonID, "error", err)
		}
	}

	logger.Info("Order created",
		"order_id", order.OrderID,
		"type", req.Type,
		"person_id", person.PersonID,
		"total", totals.TotalAmount.String(),
		"pending", totals.AmountPending.String(),
	)
	return &order, nil
}

// findOwnedOrder loads the order and verifies ownership.
func (s *orderService) findOwnedOrder(ctx context.Context, user *domain.User, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != user.UserID {
		return nil, fmt.Errorf("%w: order %s does not belong to user", apperrors.ErrForbidden, orderID)
	}
	return order, nil
}

// GetOrder retrieves an order owned by the user.
func (s *orderService) GetOrder(ctx context.Context, user *domain.User, orderID string) (*domain.Order, error) {
	return s.findOwnedOrder(ctx, user, orderID)
}

// UpdateOrder recomputes the totals, moves the order between persons when the
// counterparty changed, and reapplies the pending amounts on the matching
// aggregates. The old contribution is reversed and the new one applied in a
// single delta, so a same-person update nets out to new minus old.
func (s *orderService) UpdateOrder(ctx context.Context, user *domain.User, orderID string, req dto.UpdateOrderRequest) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	previous, err := s.findOwnedOrder(ctx, user, orderID)
	if err != nil {
		return nil, err
	}

	newType := previous.Type
	if req.Type != "" {
		newType = domain.OrderType(req.Type)
	}

	person, err := s.resolveCounterparty(ctx, user, newType, req.PersonID)
	if err != nil {
		return nil, err
	}

	lines, _, err := s.buildOrderLines(ctx, user, newType, req.Items)
	if err != nil {
		return nil, err
	}

	totals, err := domain.ComputeOrderTotals(lines, req.AmountPaid)
	if err != nil {
		if errors.Is(err, domain.ErrPaidExceedsTotal) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		return nil, err
	}

	order := *previous
	order.PersonID = person.PersonID
	order.PersonName = person.Name
	order.Type = newType
	order.Status = totals.Status
	order.Items = lines
	order.AmountPaid = req.AmountPaid
	order.AmountPending = totals.AmountPending
	order.TotalAmount = totals.TotalAmount
	order.LastUpdatedAt = time.Now()

	delta := domain.NewBalanceDelta()
	delta.ReversePending(previous.Type, previous.PersonID, previous.AmountPending)
	delta.ApplyPending(newType, person.PersonID, totals.AmountPending)

	if err := s.orderRepo.UpdateOrder(ctx, order, delta); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", orderID, err)
	}

	logger.Info("Order updated",
		"order_id", orderID,
		"status", string(totals.Status),
		"pending", totals.AmountPending.String(),
	)
	return &order, nil
}

// DeleteOrder detaches the order from its person and user aggregates and
// removes it.
func (s *orderService) DeleteOrder(ctx context.Context, user *domain.User, orderID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.findOwnedOrder(ctx, user, orderID)
	if err != nil {
		return nil, err
	}

	delta := domain.NewBalanceDelta()
	delta.ReversePending(order.Type, order.PersonID, order.AmountPending)

	if err := s.orderRepo.DeleteOrder(ctx, *order, delta); err != nil {
		return nil, fmt.Errorf("failed to delete order %s: %w", orderID, err)
	}

	logger.Info("Order deleted", "order_id", orderID)
	return order, nil
}

// ListOrders retrieves a filtered, sorted page of the user's orders.
func (s *orderService) ListOrders(ctx context.Context, userID string, params dto.ListOrdersParams) ([]domain.Order, int, error) {
	params.Normalize()
	sort := pagination.ParseSortBy(params.SortBy, orderSortFields)

	filter := portsrepo.OrderFilter{
		UserID:    userID,
		PersonID:  params.PersonID,
		Status:    params.Status,
		Type:      params.Type,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		MinAmount: params.MinAmount,
		MaxAmount: params.MaxAmount,
		SortCol:   sort.Field,
		SortDesc:  sort.Desc,
		Limit:     params.Limit,
		Offset:    params.Offset(),
	}
	orders, total, err := s.orderRepo.ListOrders(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}
