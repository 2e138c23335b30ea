package repositories

import (
	"context"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
)

// ImageRepositoryFacade defines persistence for stored binary objects.
type ImageRepositoryFacade interface {
	// SaveImage stores the image bytes and metadata.
	SaveImage(ctx context.Context, image domain.Image) error

	// FindImageByID retrieves a stored image including its bytes.
	FindImageByID(ctx context.Context, imageID string) (*domain.Image, error)

	// DeleteImage removes a stored image.
	DeleteImage(ctx context.Context, imageID string) error
}
