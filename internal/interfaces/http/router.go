package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tallerpro/taller-api/internal/application/auth"
	"github.com/tallerpro/taller-api/internal/application/catalog"
	"github.com/tallerpro/taller-api/internal/application/matching"
	"github.com/tallerpro/taller-api/internal/application/stock"
	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CatalogUC    *catalog.UseCase
	StockUC      *stock.UseCase
	LedgerUC     *stock.LedgerUseCase
	SuggestionUC *matching.SuggestionUseCase
	TicketUC     *matching.PickingTicketUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo de tipos de material (protegido; mantenimiento solo
	// admin/almacenista, consulta para todos los roles)
	types := protected.Group("/material-types")
	typeHandler := NewMaterialTypeHandler(deps.CatalogUC)
	maintainers := RequireRole(entity.RoleAdmin, entity.RoleAlmacenista)
	types.Get("/", typeHandler.Search)
	types.Post("/", maintainers, typeHandler.Create)
	types.Get("/:id", typeHandler.GetByID)
	types.Put("/:id", maintainers, typeHandler.Update)
	types.Delete("/:id", maintainers, typeHandler.Deactivate)
	types.Get("/:id/equivalents", typeHandler.Equivalents)
	types.Post("/:id/equivalents", maintainers, typeHandler.AddEquivalence)
	types.Delete("/:id/equivalents/:equivalent_id", maintainers, typeHandler.RemoveEquivalence)

	// Lotes de stock + ledger (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, deps.LedgerUC)
	stockGroup.Post("/", maintainers, stockHandler.Create)
	stockGroup.Get("/", stockHandler.List)
	stockGroup.Get("/:id", stockHandler.GetByID)
	stockGroup.Post("/:id/reserve", stockHandler.Reserve)
	stockGroup.Post("/:id/release", stockHandler.Release)
	stockGroup.Post("/:id/consume", stockHandler.Consume)
	stockGroup.Post("/:id/add", maintainers, stockHandler.Add)

	// Motor de sugerencias (protegido)
	suggestions := protected.Group("/suggestions")
	suggestionHandler := NewSuggestionHandler(deps.SuggestionUC, deps.TicketUC)
	suggestions.Post("/", suggestionHandler.GetSuggestions)
	suggestions.Post("/:id/accept", suggestionHandler.Accept)
	suggestions.Post("/:id/reject", suggestionHandler.Reject)
	suggestions.Get("/:id/picking-ticket", suggestionHandler.PickingTicket)
}
