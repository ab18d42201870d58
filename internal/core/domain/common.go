package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // operator UserID
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // operator UserID
}

// TenderType is the payment method of a sale or of a registered cash amount.
type TenderType string

const (
	TenderCash   TenderType = "CASH"
	TenderCredit TenderType = "CREDIT"
	TenderDebit  TenderType = "DEBIT"
	TenderPix    TenderType = "PIX"
	TenderOther  TenderType = "OTHER"
)

// TenderTypes lists every valid tender type in display order.
var TenderTypes = []TenderType{TenderCash, TenderCredit, TenderDebit, TenderPix, TenderOther}

// Valid reports whether t is one of the five known tender types.
func (t TenderType) Valid() bool {
	switch t {
	case TenderCash, TenderCredit, TenderDebit, TenderPix, TenderOther:
		return true
	}
	return false
}

// Condition is the stock and pricing dimension of a book.
type Condition string

const (
	ConditionNew        Condition = "NEW"
	ConditionDiscounted Condition = "DISCOUNTED"
)

// Valid reports whether c is a known condition.
func (c Condition) Valid() bool {
	return c == ConditionNew || c == ConditionDiscounted
}
