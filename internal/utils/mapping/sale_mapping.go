package mapping

import (
	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
	"github.com/sebodomatias/bookstore_pos_app/internal/models"
)

func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:      d.SaleID,
		SaleDate:    d.SaleDate,
		CustomerID:  d.CustomerID,
		TenderType:  string(d.TenderType),
		Total:       d.Total,
		OperatorID:  d.OperatorID,
		SessionID:   d.SessionID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:      m.SaleID,
		SaleDate:    m.SaleDate,
		CustomerID:  m.CustomerID,
		TenderType:  domain.TenderType(m.TenderType),
		Total:       m.Total,
		OperatorID:  m.OperatorID,
		SessionID:   m.SessionID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainSaleSlice(ms []models.Sale) []domain.Sale {
	ds := make([]domain.Sale, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSale(m)
	}
	return ds
}

func ToModelSaleLine(d domain.SaleLine) models.SaleLine {
	return models.SaleLine{
		LineID:          d.LineID,
		SaleID:          d.SaleID,
		BookID:          d.BookID,
		Condition:       string(d.Condition),
		Quantity:        d.Quantity,
		UnitPrice:       d.UnitPrice,
		DiscountPercent: d.DiscountPercent,
		LineTotal:       d.LineTotal,
	}
}

func ToDomainSaleLine(m models.SaleLine) domain.SaleLine {
	return domain.SaleLine{
		LineID:          m.LineID,
		SaleID:          m.SaleID,
		BookID:          m.BookID,
		Condition:       domain.Condition(m.Condition),
		Quantity:        m.Quantity,
		UnitPrice:       m.UnitPrice,
		DiscountPercent: m.DiscountPercent,
		LineTotal:       m.LineTotal,
	}
}

func ToDomainSaleLineSlice(ms []models.SaleLine) []domain.SaleLine {
	ds := make([]domain.SaleLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSaleLine(m)
	}
	return ds
}
