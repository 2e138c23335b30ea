package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portsrepo "github.com/tradeledger/trade_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tradeledger/trade_ledger_app/internal/core/ports/services"
	"github.com/tradeledger/trade_ledger_app/internal/dto"
	"github.com/tradeledger/trade_ledger_app/internal/middleware"
)

// inventoryService manages items scoped to a user's inventory. Category
// labels are case-normalized at read time.
type inventoryService struct {
	inventoryRepo portsrepo.InventoryRepositoryFacade
	imageRepo     portsrepo.ImageRepositoryFacade
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryFacade, imageRepo portsrepo.ImageRepositoryFacade) portssvc.InventorySvcFacade {
	return &inventoryService{inventoryRepo: inventoryRepo, imageRepo: imageRepo}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// GetInventory resolves the inventory with all items expanded.
func (s *inventoryService) GetInventory(ctx context.Context, inventoryID string) (*domain.Inventory, error) {
	inv, err := s.inventoryRepo.FindInventoryByID(ctx, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory %s: %w", inventoryID, err)
	}
	return inv, nil
}

// GetCategories extracts the distinct normalized category labels.
func (s *inventoryService) GetCategories(ctx context.Context, inventoryID string) ([]string, error) {
	inv, err := s.inventoryRepo.FindInventoryByID(ctx, inventoryID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, item := range inv.Items {
		category := domain.NormalizeCategory(item.Category)
		if category == "" || seen[category] {
			continue
		}
		seen[category] = true
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories, nil
}

// GetItemsByCategory groups the inventory's items under each normalized
// category label.
func (s *inventoryService) GetItemsByCategory(ctx context.Context, inventoryID string) (map[string][]domain.Item, error) {
	inv, err := s.inventoryRepo.FindInventoryByID(ctx, inventoryID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]domain.Item)
	for _, item := range inv.Items {
		category := domain.NormalizeCategory(item.Category)
		grouped[category] = append(grouped[category], item)
	}
	return grouped, nil
}

// AddItem creates an item, attaches the optional image reference and adds it
// to the inventory.
func (s *inventoryService) AddItem(ctx context.Context, inventoryID string, req dto.AddItemRequest, imageID *string) (*domain.Item, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	item := domain.Item{
		ItemID:      uuid.NewString(),
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		ImageID:     imageID,
	}
	if err := s.inventoryRepo.AddItem(ctx, inventoryID, item); err != nil {
		return nil, fmt.Errorf("failed to add item to inventory %s: %w", inventoryID, err)
	}

	logger.Info("Item added", "item_id", item.ItemID, "inventory_id", inventoryID)
	return &item, nil
}

// UpdateItem replaces item fields; a new image replaces and deletes the
// previously stored one.
func (s *inventoryService) UpdateItem(ctx context.Context, itemID string, req dto.UpdateItemRequest, imageID *string) (*domain.Item, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	item, err := s.inventoryRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Description != nil {
		item.Description = *req.Description
	}

	var replacedImageID *string
	if imageID != nil {
		replacedImageID = item.ImageID
		item.ImageID = imageID
	}

	if err := s.inventoryRepo.UpdateItem(ctx, *item); err != nil {
		return nil, fmt.Errorf("failed to update item %s: %w", itemID, err)
	}

	if replacedImageID != nil {
		if err := s.imageRepo.DeleteImage(ctx, *replacedImageID); err != nil {
			logger.Warn("Failed to delete replaced item image", "image_id", *replacedImageID, "error", err)
		}
	}
	return item, nil
}

// RemoveItem removes the item from the inventory's item set. The item record
// and its image are retained for order history.
func (s *inventoryService) RemoveItem(ctx context.Context, inventoryID, itemID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.inventoryRepo.RemoveItem(ctx, inventoryID, itemID); err != nil {
		return err
	}

	logger.Info("Item removed from inventory", "item_id", itemID, "inventory_id", inventoryID)
	return nil
}
