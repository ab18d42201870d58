package services

import (
	portsrepo "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/repositories"
	portssvc "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/services"
	"github.com/sebodomatias/bookstore_pos_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Catalog = NewCatalogService(repos.CatalogRepo, repos.StockRepo)
	container.Stock = NewStockService(repos.StockRepo, repos.CatalogRepo)
	container.Customer = NewCustomerService(repos.CustomerRepo)
	container.User = NewUserService(repos.UserRepo)

	// The sale coordinator reads sessions but never mutates them directly;
	// session mutation during a sale happens inside the sale repository's
	// atomic path.
	container.Sale = NewSaleService(repos.SaleRepo, repos.CatalogRepo, repos.StockRepo, repos.CashSessionRepo, repos.CustomerRepo)
	container.CashSession = NewCashSessionService(repos.CashSessionRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.CashSessionRepo)

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.SaleSvcFacade        = (*saleService)(nil)
	_ portssvc.CashSessionSvcFacade = (*cashSessionService)(nil)
	_ portssvc.CatalogSvcFacade     = (*catalogService)(nil)
	_ portssvc.StockSvcFacade       = (*stockService)(nil)
	_ portssvc.CustomerSvcFacade    = (*customerService)(nil)
	_ portssvc.UserSvcFacade        = (*userService)(nil)
	_ portssvc.ReportingService     = (*reportingService)(nil)
)
