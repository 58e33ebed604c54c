package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/cardstock-pro/internal/application/approval"
	"github.com/tu-usuario/cardstock-pro/internal/application/inbox"
	"github.com/tu-usuario/cardstock-pro/internal/application/monitor"
	"github.com/tu-usuario/cardstock-pro/internal/application/stock"
	"github.com/tu-usuario/cardstock-pro/internal/application/summary"
	"github.com/tu-usuario/cardstock-pro/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	IntakeUC   *stock.IntakeUseCase
	StockOutUC *stock.StockOutUseCase
	StockInUC  *stock.StockInUseCase
	SaleUC     *stock.SaleUseCase
	DecisionUC *approval.DecisionUseCase
	InboxUC    *inbox.UseCase
	SummaryUC  *summary.UseCase
	LowStockUC *monitor.LowStockUseCase
	StationUC  *usecase.StationUseCase
	CatalogUC  *usecase.CatalogUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Todas las rutas de negocio requieren Bearer Token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Movimientos de stock (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.IntakeUC, deps.StockOutUC, deps.StockInUC, deps.SaleUC)
	stockGroup.Post("/intake", stockHandler.Intake)
	stockGroup.Post("/out", stockHandler.StockOut)
	stockGroup.Post("/in", stockHandler.StockIn)
	stockGroup.Post("/sale", stockHandler.Sale)

	// Bandeja y aprobaciones (protegido; decidir es solo admin)
	approvalHandler := NewApprovalHandler(deps.DecisionUC, deps.InboxUC)
	protected.Post("/approvals/:id/decision", RequireRole("admin"), approvalHandler.Decide)
	inboxGroup := protected.Group("/inbox")
	inboxGroup.Get("/", approvalHandler.ListInbox)
	inboxGroup.Patch("/:id/read", approvalHandler.MarkRead)

	// Lecturas de resumen (protegido)
	summaryGroup := protected.Group("/summary")
	summaryHandler := NewSummaryHandler(deps.SummaryUC)
	summaryGroup.Get("/category-type", summaryHandler.CategoryType)
	summaryGroup.Get("/station-monitor", summaryHandler.StationMonitor)
	summaryGroup.Get("/total", summaryHandler.Total)
	summaryGroup.Get("/stations", summaryHandler.Stations)

	// Monitor de stock bajo (protegido, solo admin)
	monitorHandler := NewMonitorHandler(deps.LowStockUC)
	protected.Post("/monitor/low-stock/check", RequireRole("admin"), monitorHandler.CheckLowStock)

	// Estaciones y catálogo (protegido)
	catalogHandler := NewCatalogHandler(deps.StationUC, deps.CatalogUC)
	stations := protected.Group("/stations")
	stations.Post("/", catalogHandler.CreateStation)
	stations.Get("/", catalogHandler.ListStations)

	catalog := protected.Group("/catalog")
	catalog.Post("/categories", catalogHandler.CreateCategory)
	catalog.Get("/categories", catalogHandler.ListCategories)
	catalog.Post("/types", catalogHandler.CreateType)
	catalog.Get("/types", catalogHandler.ListTypes)
}
