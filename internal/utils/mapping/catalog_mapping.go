package mapping

import (
	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
	"github.com/sebodomatias/bookstore_pos_app/internal/models"
)

func ToModelBook(d domain.Book) models.Book {
	return models.Book{
		BookID:      d.BookID,
		CatalogCode: d.CatalogCode,
		Title:       d.Title,
		Author:      d.Author,
		Publisher:   d.Publisher,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBook(m models.Book) domain.Book {
	return domain.Book{
		BookID:      m.BookID,
		CatalogCode: m.CatalogCode,
		Title:       m.Title,
		Author:      m.Author,
		Publisher:   m.Publisher,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainBookSlice(ms []models.Book) []domain.Book {
	ds := make([]domain.Book, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBook(m)
	}
	return ds
}

func ToDomainStockLine(m models.StockLine) domain.StockLine {
	return domain.StockLine{
		BookID:      m.BookID,
		Condition:   domain.Condition(m.Condition),
		Quantity:    m.Quantity,
		LastUpdated: m.LastUpdated,
	}
}

func ToDomainStockLineSlice(ms []models.StockLine) []domain.StockLine {
	ds := make([]domain.StockLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStockLine(m)
	}
	return ds
}

func ToModelPriceLine(d domain.PriceLine) models.PriceLine {
	return models.PriceLine{
		BookID:      d.BookID,
		Condition:   string(d.Condition),
		UnitPrice:   d.UnitPrice,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainPriceLine(m models.PriceLine) domain.PriceLine {
	return domain.PriceLine{
		BookID:      m.BookID,
		Condition:   domain.Condition(m.Condition),
		UnitPrice:   m.UnitPrice,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
