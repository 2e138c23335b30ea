package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tradeledger/trade_ledger_app/internal/apperrors"
	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portsrepo "github.com/tradeledger/trade_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tradeledger/trade_ledger_app/internal/core/ports/services"
	"github.com/tradeledger/trade_ledger_app/internal/middleware"
)

// imageService stores uploaded images, enforcing the size ceiling and the
// image-only content type policy.
type imageService struct {
	imageRepo    portsrepo.ImageRepositoryFacade
	maxSizeBytes int64
}

// NewImageService creates a new image service.
func NewImageService(imageRepo portsrepo.ImageRepositoryFacade, maxSizeBytes int64) portssvc.ImageSvcFacade {
	return &imageService{imageRepo: imageRepo, maxSizeBytes: maxSizeBytes}
}

var _ portssvc.ImageSvcFacade = (*imageService)(nil)

// Store validates and persists an uploaded image, returning its ID.
func (s *imageService) Store(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: only image uploads are allowed, got %s", apperrors.ErrValidation, contentType)
	}
	if int64(len(data)) > s.maxSizeBytes {
		return "", fmt.Errorf("%w: image exceeds maximum size of %d bytes", apperrors.ErrValidation, s.maxSizeBytes)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty image upload", apperrors.ErrValidation)
	}

	image := domain.Image{
		ImageID:     uuid.NewString(),
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		Data:        data,
		CreatedAt:   time.Now(),
	}
	if err := s.imageRepo.SaveImage(ctx, image); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	logger.Info("Image stored", "image_id", image.ImageID, "size_bytes", image.SizeBytes)
	return image.ImageID, nil
}

// Get retrieves a stored image.
func (s *imageService) Get(ctx context.Context, imageID string) (*domain.Image, error) {
	return s.imageRepo.FindImageByID(ctx, imageID)
}

// Delete removes a stored image.
func (s *imageService) Delete(ctx context.Context, imageID string) error {
	return s.imageRepo.DeleteImage(ctx, imageID)
}
