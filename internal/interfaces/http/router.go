package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-motos/internal/application/auth"
	"github.com/jhoicas/inventario-motos/internal/application/catalog"
	"github.com/jhoicas/inventario-motos/internal/application/inventory"
	"github.com/jhoicas/inventario-motos/internal/application/purchasing"
	"github.com/jhoicas/inventario-motos/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *catalog.ProductUseCase
	MasterDataUC *catalog.MasterDataUseCase
	LedgerUC     *inventory.LedgerUseCase
	SaleUC       *sales.SaleUseCase
	OrderUC      *purchasing.OrderUseCase
	AuthUC       *auth.AuthUseCase
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

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/generate-barcode", productHandler.GenerateBarcode)
	products.Get("/validate/:barcode", productHandler.ValidateBarcode)
	products.Get("/:barcode", productHandler.GetByBarcode)
	products.Put("/:barcode", productHandler.Update)
	products.Delete("/:barcode", productHandler.Delete)

	// Inventory ledger (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	invGroup.Post("/movements", inventoryHandler.ApplyMovement)
	invGroup.Get("/movements/recent", inventoryHandler.Recent)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
	invGroup.Get("/depleted", inventoryHandler.Depleted)
	invGroup.Get("/:barcode", inventoryHandler.Snapshot)
	invGroup.Get("/:barcode/movements", inventoryHandler.History)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/cancel", saleHandler.Cancel)

	// Purchase orders (protegido)
	orders := protected.Group("/purchase-orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/suggest/:supplierId", orderHandler.Suggest)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id/status", orderHandler.SetStatus)
	orders.Post("/:id/receive", orderHandler.Receive)
	orders.Post("/:id/cancel", orderHandler.Cancel)

	// Master data (protegido)
	masterHandler := NewMasterDataHandler(deps.MasterDataUC)
	categories := protected.Group("/categories")
	categories.Post("/", masterHandler.CreateCategory)
	categories.Get("/", masterHandler.ListCategories)
	categories.Put("/:id", masterHandler.UpdateCategory)
	categories.Delete("/:id", masterHandler.DeleteCategory)

	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", masterHandler.CreateSupplier)
	suppliers.Get("/", masterHandler.ListSuppliers)
	suppliers.Get("/:id", masterHandler.GetSupplier)
	suppliers.Put("/:id", masterHandler.UpdateSupplier)
	suppliers.Delete("/:id", masterHandler.DeleteSupplier)
}
