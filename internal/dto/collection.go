package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
)

// CreateCollectionRequest defines the data for a new cash-collection record.
// Sent as multipart form fields alongside an optional image file.
type CreateCollectionRequest struct {
	BankName         string `form:"bankName" binding:"required"`
	AgentName        string `form:"agentName" binding:"required"`
	AgentPhoneNumber string `form:"agentPhoneNumber" binding:"required"`
}

// UpdateCollectionRequest defines the data allowed for updating a collection.
type UpdateCollectionRequest struct {
	BankName         *string `json:"bankName"`
	AgentName        *string `json:"agentName"`
	AgentPhoneNumber *string `json:"agentPhoneNumber"`
}

// AddAmountRequest appends an amount to a collection's transaction history.
// Negative amounts are not rejected at this layer; upstream validation owns
// that policy.
type AddAmountRequest struct {
	CollectionID string          `json:"collectionId" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
}

// ListCollectionsParams defines query parameters for listing collections.
type ListCollectionsParams struct {
	PageParams
}

// CollectionTransactionResponse is one history entry of a collection.
type CollectionTransactionResponse struct {
	Amount decimal.Decimal `json:"amount"`
	Time   time.Time       `json:"time"`
}

// CollectionResponse is the API representation of a collection.
type CollectionResponse struct {
	CollectionID     string                          `json:"id"`
	BankName         string                          `json:"bankName"`
	AgentName        string                          `json:"agentName"`
	AgentPhoneNumber string                          `json:"agentPhoneNumber"`
	ImageID          *string                         `json:"imageID,omitempty"`
	Amount           decimal.Decimal                 `json:"amount"`
	Transactions     []CollectionTransactionResponse `json:"transactionHistory,omitempty"`
}

// ToCollectionResponse converts a domain.Collection to its API representation.
func ToCollectionResponse(c *domain.Collection) CollectionResponse {
	resp := CollectionResponse{
		CollectionID:     c.CollectionID,
		BankName:         c.BankName,
		AgentName:        c.AgentName,
		AgentPhoneNumber: c.AgentPhoneNumber,
		ImageID:          c.ImageID,
		Amount:           c.Amount,
	}
	for _, txn := range c.Transactions {
		resp.Transactions = append(resp.Transactions, CollectionTransactionResponse{
			Amount: txn.Amount,
			Time:   txn.OccurredAt,
		})
	}
	return resp
}

// ListCollectionsResponse wraps a page of collections.
type ListCollectionsResponse struct {
	Collections []CollectionResponse `json:"collections"`
	PageMeta
}
