package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradeledger/trade_ledger_app/internal/apperrors"
	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portsrepo "github.com/tradeledger/trade_ledger_app/internal/core/ports/repositories"
)

type PgxImageRepository struct {
	BaseRepository
}

// newPgxImageRepository creates a new repository for stored images.
func newPgxImageRepository(pool *pgxpool.Pool) portsrepo.ImageRepositoryFacade {
	return &PgxImageRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ImageRepositoryFacade = (*PgxImageRepository)(nil)

// SaveImage stores the image bytes and metadata.
func (r *PgxImageRepository) SaveImage(ctx context.Context, image domain.Image) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO images (image_id, file_name, content_type, size_bytes, data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`, image.ImageID, image.FileName, image.ContentType, image.SizeBytes, image.Data, image.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert image %s: %w", image.ImageID, err)
	}
	return nil
}

// FindImageByID retrieves a stored image including its bytes.
func (r *PgxImageRepository) FindImageByID(ctx context.Context, imageID string) (*domain.Image, error) {
	var image domain.Image
	err := r.Pool.QueryRow(ctx, `
		SELECT image_id, file_name, content_type, size_bytes, data, created_at
		FROM images WHERE image_id = $1;
	`, imageID).Scan(&image.ImageID, &image.FileName, &image.ContentType, &image.SizeBytes, &image.Data, &image.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: image %s", apperrors.ErrNotFound, imageID)
		}
		return nil, fmt.Errorf("failed to find image %s: %w", imageID, err)
	}
	return &image, nil
}

// DeleteImage removes a stored image.
func (r *PgxImageRepository) DeleteImage(ctx context.Context, imageID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM images WHERE image_id = $1;`, imageID)
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %w", imageID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: image %s", apperrors.ErrNotFound, imageID)
	}
	return nil
}
