package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Collection is the database row for a cash-collection record.
type Collection struct {
	CollectionID     string          `db:"collection_id"`
	UserID           string          `db:"user_id"`
	BankName         string          `db:"bank_name"`
	AgentName        string          `db:"agent_name"`
	AgentPhoneNumber string          `db:"agent_phone_number"`
	ImageID          sql.NullString  `db:"image_id"`
	Amount           decimal.Decimal `db:"amount"`
	AuditFields
}

// CollectionTransaction is one append-only row of a collection's history.
type CollectionTransaction struct {
	TransactionID string          `db:"transaction_id"`
	CollectionID  string          `db:"collection_id"`
	Amount        decimal.Decimal `db:"amount"`
	OccurredAt    time.Time       `db:"occurred_at"`
}
