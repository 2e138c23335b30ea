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
	"github.com/tradeledger/trade_ledger_app/internal/models"
)

type PgxCollectionRepository struct {
	BaseRepository
}

// newPgxCollectionRepository creates a new repository for collection data.
func newPgxCollectionRepository(pool *pgxpool.Pool) portsrepo.CollectionRepositoryFacade {
	return &PgxCollectionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CollectionRepositoryFacade = (*PgxCollectionRepository)(nil)

func toModelCollection(d domain.Collection) models.Collection {
	return models.Collection{
		CollectionID:     d.CollectionID,
		UserID:           d.UserID,
		BankName:         d.BankName,
		AgentName:        d.AgentName,
		AgentPhoneNumber: d.AgentPhoneNumber,
		ImageID:          nullStringPtr(d.ImageID),
		Amount:           d.Amount,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainCollection(m models.Collection) domain.Collection {
	return domain.Collection{
		CollectionID:     m.CollectionID,
		UserID:           m.UserID,
		BankName:         m.BankName,
		AgentName:        m.AgentName,
		AgentPhoneNumber: m.AgentPhoneNumber,
		ImageID:          ptrFromNull(m.ImageID),
		Amount:           m.Amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const collectionColumns = `collection_id, user_id, bank_name, agent_name, agent_phone_number, image_id, amount, created_at, last_updated_at`

func scanCollection(row pgx.Row) (models.Collection, error) {
	var m models.Collection
	err := row.Scan(
		&m.CollectionID,
		&m.UserID,
		&m.BankName,
		&m.AgentName,
		&m.AgentPhoneNumber,
		&m.ImageID,
		&m.Amount,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveCollection inserts a new collection.
func (r *PgxCollectionRepository) SaveCollection(ctx context.Context, collection domain.Collection) error {
	m := toModelCollection(collection)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO collections (`+collectionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`,
		m.CollectionID,
		m.UserID,
		m.BankName,
		m.AgentName,
		m.AgentPhoneNumber,
		m.ImageID,
		m.Amount,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert collection %s: %w", m.CollectionID, err)
	}
	return nil
}

func (r *PgxCollectionRepository) findTransactions(ctx context.Context, collectionIDs []string) (map[string][]domain.CollectionTransaction, error) {
	result := make(map[string][]domain.CollectionTransaction, len(collectionIDs))
	if len(collectionIDs) == 0 {
		return result, nil
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT transaction_id, collection_id, amount, occurred_at
		FROM collection_transactions
		WHERE collection_id = ANY($1)
		ORDER BY occurred_at ASC, transaction_id ASC;
	`, collectionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.CollectionTransaction
		if err := rows.Scan(&m.TransactionID, &m.CollectionID, &m.Amount, &m.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan collection transaction: %w", err)
		}
		result[m.CollectionID] = append(result[m.CollectionID], domain.CollectionTransaction{
			TransactionID: m.TransactionID,
			CollectionID:  m.CollectionID,
			Amount:        m.Amount,
			OccurredAt:    m.OccurredAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate collection transactions: %w", err)
	}
	return result, nil
}

// FindCollectionForUser retrieves a collection owned by the user, with its
// transaction history.
func (r *PgxCollectionRepository) FindCollectionForUser(ctx context.Context, userID, collectionID string) (*domain.Collection, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+collectionColumns+` FROM collections
		WHERE collection_id = $1 AND user_id = $2;
	`, collectionID, userID)
	m, err := scanCollection(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: collection %s", apperrors.ErrNotFound, collectionID)
		}
		return nil, fmt.Errorf("failed to find collection %s: %w", collectionID, err)
	}

	collection := toDomainCollection(m)
	txns, err := r.findTransactions(ctx, []string{collectionID})
	if err != nil {
		return nil, err
	}
	collection.Transactions = txns[collectionID]
	return &collection, nil
}

// ListCollectionsByUser retrieves a page of the user's collections plus the
// total count, newest first.
func (r *PgxCollectionRepository) ListCollectionsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Collection, int, error) {
	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT count(*) FROM collections WHERE user_id = $1;`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count collections: %w", err)
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT `+collectionColumns+` FROM collections
		WHERE user_id = $1
		ORDER BY created_at DESC, collection_id DESC
		LIMIT $2 OFFSET $3;
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	collections := make([]domain.Collection, 0, limit)
	collectionIDs := make([]string, 0, limit)
	for rows.Next() {
		m, err := scanCollection(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan collection row: %w", err)
		}
		collections = append(collections, toDomainCollection(m))
		collectionIDs = append(collectionIDs, m.CollectionID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate collection rows: %w", err)
	}

	txns, err := r.findTransactions(ctx, collectionIDs)
	if err != nil {
		return nil, 0, err
	}
	for i := range collections {
		collections[i].Transactions = txns[collections[i].CollectionID]
	}
	return collections, total, nil
}

// AppendTransaction appends a history entry and bumps the running amount by
// the same value in one transaction.
func (r *PgxCollectionRepository) AppendTransaction(ctx context.Context, txn domain.CollectionTransaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE collections
		SET amount = amount + $2, last_updated_at = now()
		WHERE collection_id = $1;
	`, txn.CollectionID, txn.Amount)
	if err != nil {
		return fmt.Errorf("failed to bump collection amount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: collection %s", apperrors.ErrNotFound, txn.CollectionID)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO collection_transactions (transaction_id, collection_id, amount, occurred_at)
		VALUES ($1, $2, $3, $4);
	`, txn.TransactionID, txn.CollectionID, txn.Amount, txn.OccurredAt)
	if err != nil {
		return fmt.Errorf("failed to insert collection transaction: %w", err)
	}

	return r.Commit(ctx, tx)
}

// UpdateCollection persists mutable collection fields.
func (r *PgxCollectionRepository) UpdateCollection(ctx context.Context, collection domain.Collection) error {
	m := toModelCollection(collection)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE collections
		SET bank_name = $2, agent_name = $3, agent_phone_number = $4,
		    image_id = $5, last_updated_at = $6
		WHERE collection_id = $1;
	`, m.CollectionID, m.BankName, m.AgentName, m.AgentPhoneNumber, m.ImageID, m.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update collection %s: %w", m.CollectionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: collection %s", apperrors.ErrNotFound, m.CollectionID)
	}
	return nil
}

// DeleteCollection removes a collection owned by the user with its history.
func (r *PgxCollectionRepository) DeleteCollection(ctx context.Context, userID, collectionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM collection_transactions WHERE collection_id = $1;`, collectionID); err != nil {
		return fmt.Errorf("failed to delete collection history for %s: %w", collectionID, err)
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM collections WHERE collection_id = $1 AND user_id = $2;
	`, collectionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete collection %s: %w", collectionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: collection %s", apperrors.ErrNotFound, collectionID)
	}

	return r.Commit(ctx, tx)
}
