package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CollectionTransaction is one append-only entry of a collection's history.
type CollectionTransaction struct {
	TransactionID string          `json:"transactionID"`
	CollectionID  string          `json:"collectionID"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    time.Time       `json:"time"`
}

// Collection is a per-user cash-collection record. Amount is the running sum
// of the transaction history.
type Collection struct {
	CollectionID     string                  `json:"collectionID"`
	UserID           string                  `json:"userID"`
	BankName         string                  `json:"bankName"`
	AgentName        string                  `json:"agentName"`
	AgentPhoneNumber string                  `json:"agentPhoneNumber"`
	ImageID          *string                 `json:"imageID,omitempty"`
	Amount           decimal.Decimal         `json:"amount"`
	Transactions     []CollectionTransaction `json:"transactionHistory,omitempty"`
	AuditFields
}
