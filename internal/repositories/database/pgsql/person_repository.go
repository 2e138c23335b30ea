package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradeledger/trade_ledger_app/internal/apperrors"
	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portsrepo "github.com/tradeledger/trade_ledger_app/internal/core/ports/repositories"
	"github.com/tradeledger/trade_ledger_app/internal/models"
)

type PgxPersonRepository struct {
	BaseRepository
}

// newPgxPersonRepository creates a new repository for person data.
func newPgxPersonRepository(pool *pgxpool.Pool) portsrepo.PersonRepositoryFacade {
	return &PgxPersonRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PersonRepositoryFacade = (*PgxPersonRepository)(nil)

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func ptrFromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func toModelPerson(d domain.Person) models.Person {
	return models.Person{
		PersonID:     d.PersonID,
		UserID:       d.UserID,
		Name:         d.Name,
		PhoneNumber:  d.PhoneNumber,
		ShopNumber:   nullString(d.ShopNumber),
		Email:        nullString(d.Email),
		Type:         string(d.Type),
		ImageID:      nullStringPtr(d.ImageID),
		TotalOverdue: d.TotalOverdue,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainPerson(m models.Person) domain.Person {
	return domain.Person{
		PersonID:     m.PersonID,
		UserID:       m.UserID,
		Name:         m.Name,
		PhoneNumber:  m.PhoneNumber,
		ShopNumber:   m.ShopNumber.String,
		Email:        m.Email.String,
		Type:         domain.PersonType(m.Type),
		ImageID:      ptrFromNull(m.ImageID),
		TotalOverdue: m.TotalOverdue,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const personColumns = `person_id, user_id, name, phone_number, shop_number, email, type, image_id, total_overdue, created_at, last_updated_at`

func scanPerson(row pgx.Row) (models.Person, error) {
	var m models.Person
	err := row.Scan(
		&m.PersonID,
		&m.UserID,
		&m.Name,
		&m.PhoneNumber,
		&m.ShopNumber,
		&m.Email,
		&m.Type,
		&m.ImageID,
		&m.TotalOverdue,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SavePerson inserts a new person.
func (r *PgxPersonRepository) SavePerson(ctx context.Context, person domain.Person) error {
	m := toModelPerson(person)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO persons (`+personColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`,
		m.PersonID,
		m.UserID,
		m.Name,
		m.PhoneNumber,
		m.ShopNumber,
		m.Email,
		m.Type,
		m.ImageID,
		m.TotalOverdue,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save person %s: %w", m.PersonID, err)
	}
	return nil
}

// FindPersonByID retrieves a person by ID.
func (r *PgxPersonRepository) FindPersonByID(ctx context.Context, personID string) (*domain.Person, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+personColumns+` FROM persons WHERE person_id = $1;`, personID)
	m, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: person %s", apperrors.ErrNotFound, personID)
		}
		return nil, fmt.Errorf("failed to find person %s: %w", personID, err)
	}
	p := toDomainPerson(m)
	return &p, nil
}

// FindPersonsByIDs retrieves several persons keyed by ID.
func (r *PgxPersonRepository) FindPersonsByIDs(ctx context.Context, personIDs []string) (map[string]domain.Person, error) {
	result := make(map[string]domain.Person, len(personIDs))
	if len(personIDs) == 0 {
		return result, nil
	}

	rows, err := r.Pool.Query(ctx, `SELECT `+personColumns+` FROM persons WHERE person_id = ANY($1);`, personIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find persons by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person row: %w", err)
		}
		result[m.PersonID] = toDomainPerson(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate person rows: %w", err)
	}
	return result, nil
}

// ListPersonsByUser retrieves a page of the user's persons plus the total count.
func (r *PgxPersonRepository) ListPersonsByUser(ctx context.Context, userID string, filter portsrepo.PersonFilter) ([]domain.Person, int, error) {
	where := `WHERE user_id = $1`
	args := []any{userID}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(` AND type = $%d`, len(args))
	}
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		where += fmt.Sprintf(` AND name ILIKE $%d`, len(args))
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT count(*) FROM persons `+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count persons: %w", err)
	}

	sortCol := filter.SortCol
	if sortCol == "" {
		sortCol = "created_at"
	}
	dir := "ASC"
	if filter.SortDesc {
		dir = "DESC"
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT %s FROM persons %s
		ORDER BY %s %s, person_id %s
		LIMIT $%d OFFSET $%d;
	`, personColumns, where, sortCol, dir, dir, len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list persons: %w", err)
	}
	defer rows.Close()

	persons := make([]domain.Person, 0, filter.Limit)
	for rows.Next() {
		m, err := scanPerson(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan person row: %w", err)
		}
		persons = append(persons, toDomainPerson(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate person rows: %w", err)
	}
	return persons, total, nil
}

// UpdatePerson persists mutable person fields.
func (r *PgxPersonRepository) UpdatePerson(ctx context.Context, person domain.Person) error {
	m := toModelPerson(person)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE persons
		SET name = $2, phone_number = $3, shop_number = $4, email = $5, image_id = $6, last_updated_at = $7
		WHERE person_id = $1;
	`, m.PersonID, m.Name, m.PhoneNumber, m.ShopNumber, m.Email, m.ImageID, m.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update person %s: %w", m.PersonID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: person %s", apperrors.ErrNotFound, m.PersonID)
	}
	return nil
}

// DeletePersonAdjustingUser removes the person and subtracts their
// totalOverdue from the owning user's matching aggregate in one transaction.
// The person's orders are retained.
func (r *PgxPersonRepository) DeletePersonAdjustingUser(ctx context.Context, person domain.Person) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if person.TotalOverdue.IsPositive() {
		column := "pending_payable"
		if person.Type == domain.PersonCustomer {
			column = "pending_receivable"
		}
		// Lock the user row so concurrent reconciliations serialize here.
		var cur string
		err = tx.QueryRow(ctx, `SELECT user_id FROM users WHERE user_id = $1 FOR UPDATE;`, person.UserID).Scan(&cur)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, person.UserID)
			}
			return fmt.Errorf("failed to lock user %s: %w", person.UserID, err)
		}
		_, err = tx.Exec(ctx,
			`UPDATE users SET `+column+` = `+column+` - $2, last_updated_at = now() WHERE user_id = $1;`,
			person.UserID, person.TotalOverdue)
		if err != nil {
			return fmt.Errorf("failed to adjust user aggregate for person delete: %w", err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM persons WHERE person_id = $1 AND user_id = $2;`, person.PersonID, person.UserID)
	if err != nil {
		return fmt.Errorf("failed to delete person %s: %w", person.PersonID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: person %s", apperrors.ErrNotFound, person.PersonID)
	}

	return r.Commit(ctx, tx)
}
