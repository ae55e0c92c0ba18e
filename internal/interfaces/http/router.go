package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-ledger/internal/application/analytics"
	"github.com/jhoicas/ventas-ledger/internal/application/auth"
	"github.com/jhoicas/ventas-ledger/internal/application/ledger"
	"github.com/jhoicas/ventas-ledger/internal/application/usecase"
	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	LedgerUC    *ledger.UseCase
	StatementUC *ledger.StatementUseCase
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	CustomerUC  *usecase.CustomerUseCase
	ExpenseUC   *usecase.ExpenseUseCase
	ReportUC    *analytics.ReportUseCase
	UserUC      *usecase.UserUseCase
	ExportUC    *analytics.ExportUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/me", authHandler.Me)

	// Ventas y pagos
	saleHandler := NewSaleHandler(deps.LedgerUC)
	sales := protected.Group("/sales")
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Post("/:id/payments", saleHandler.RecordPayment)
	protected.Post("/payments/quick", saleHandler.QuickPayment)

	// Clientes
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.LedgerUC, deps.StatementUC)
	customers := protected.Group("/customers")
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Get("/:id/account", customerHandler.Account)
	customers.Get("/:id/statement.pdf", customerHandler.Statement)

	// Productos: lectura para todos, escritura admin
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)
	products.Post("/:id/stock", adminOnly, productHandler.AddStock)

	// Categorías
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := protected.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Put("/:id", adminOnly, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	// Gastos (admin)
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses := protected.Group("/expenses", adminOnly)
	expenses.Get("/", expenseHandler.List)
	expenses.Post("/", expenseHandler.Create)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)

	// Usuarios (admin)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", adminOnly)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Reportes
	dashboardHandler := NewDashboardHandler(deps.ReportUC)
	protected.Get("/reports", dashboardHandler.GetReport)
	protected.Get("/reports/debts", dashboardHandler.GetDebts)
	protected.Get("/dashboard", dashboardHandler.GetSummary)

	// Exports JSON
	exportHandler := NewExportHandler(deps.ExportUC)
	export := protected.Group("/export")
	export.Get("/products", exportHandler.Products)
	export.Get("/inventory", exportHandler.Inventory)
	export.Get("/sales", exportHandler.Sales)
}
