package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	catalogRepo := newPgxCatalogRepository(dbPool)
	stockRepo := newPgxStockRepository(dbPool)
	cashSessionRepo := newPgxCashSessionRepository(dbPool)
	saleRepo := newPgxSaleRepository(dbPool, stockRepo, cashSessionRepo)
	customerRepo := newPgxCustomerRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CatalogRepo:     catalogRepo,
		StockRepo:       stockRepo,
		CashSessionRepo: cashSessionRepo,
		SaleRepo:        saleRepo,
		CustomerRepo:    customerRepo,
		UserRepo:        userRepo,
		ReportingRepo:   reportingRepo,
	}
}
