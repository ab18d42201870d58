package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
)

// CreateSaleLineRequest is one cart line of a sale request. The unit price is
// advisory (what the terminal displayed); the server re-resolves it from the
// price table and its value is authoritative.
type CreateSaleLineRequest struct {
	CatalogCode     string           `json:"catalogCode" binding:"required"`
	Condition       domain.Condition `json:"condition" binding:"required,oneof=NEW DISCOUNTED"`
	Quantity        int              `json:"quantity" binding:"required,gt=0"`
	UnitPrice       *decimal.Decimal `json:"unitPrice,omitempty"`
	DiscountPercent decimal.Decimal  `json:"discountPercent"`
}

// CreateSaleRequest is the payload of the sale creation endpoint. Total, if
// supplied, is advisory only; the server-computed total is returned.
type CreateSaleRequest struct {
	CustomerID *string                 `json:"customerID,omitempty"`
	TenderType domain.TenderType       `json:"tenderType" binding:"required,oneof=CASH CREDIT DEBIT PIX OTHER"`
	Lines      []CreateSaleLineRequest `json:"lines" binding:"required,min=1,dive"`
	Total      *decimal.Decimal        `json:"total,omitempty"`
}

// SaleLineResponse is one line of a sale as returned to callers.
type SaleLineResponse struct {
	BookID          string          `json:"bookID"`
	Condition       string          `json:"condition"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	LineTotal       decimal.Decimal `json:"lineTotal"`
}

// SaleResponse is a sale as returned to callers.
type SaleResponse struct {
	SaleID     string             `json:"saleID"`
	SaleDate   time.Time          `json:"saleDate"`
	CustomerID *string            `json:"customerID,omitempty"`
	TenderType string             `json:"tenderType"`
	Total      decimal.Decimal    `json:"total"`
	OperatorID string             `json:"operatorID"`
	SessionID  *string            `json:"sessionID,omitempty"`
	Lines      []SaleLineResponse `json:"lines,omitempty"`
}

// ReversalSummary is the result of a sale reversal.
type ReversalSummary struct {
	SaleID          string          `json:"saleID"`
	ReversedTotal   decimal.Decimal `json:"reversedTotal"`
	LineCount       int             `json:"lineCount"`
	SessionAffected bool            `json:"sessionAffected"`
}

// ListSalesParams narrows and paginates the sales listing.
type ListSalesParams struct {
	From       *time.Time
	To         *time.Time
	TenderType *domain.TenderType
	CustomerID *string
	Limit      int
	NextToken  *string
}

// ListSalesResponse is a page of sales plus the token for the next page.
type ListSalesResponse struct {
	Sales     []SaleResponse `json:"sales"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToSaleLineResponse converts a domain.SaleLine to its response DTO.
func ToSaleLineResponse(line domain.SaleLine) SaleLineResponse {
	return SaleLineResponse{
		BookID:          line.BookID,
		Condition:       string(line.Condition),
		Quantity:        line.Quantity,
		UnitPrice:       line.UnitPrice,
		DiscountPercent: line.DiscountPercent,
		LineTotal:       line.LineTotal,
	}
}

// ToSaleResponse converts a domain.Sale (with or without lines) to its
// response DTO.
func ToSaleResponse(sale *domain.Sale) SaleResponse {
	resp := SaleResponse{
		SaleID:     sale.SaleID,
		SaleDate:   sale.SaleDate,
		CustomerID: sale.CustomerID,
		TenderType: string(sale.TenderType),
		Total:      sale.Total,
		OperatorID: sale.OperatorID,
		SessionID:  sale.SessionID,
	}
	if len(sale.Lines) > 0 {
		resp.Lines = make([]SaleLineResponse, len(sale.Lines))
		for i, line := range sale.Lines {
			resp.Lines[i] = ToSaleLineResponse(line)
		}
	}
	return resp
}
