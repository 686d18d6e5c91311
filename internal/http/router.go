package http

import (
	"net/http"

	"purchasing-backend/internal/auth"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(handler *Handler, jwtSecret string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(Timeout)
	r.Use(CORS)

	r.Get("/healthz", handler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", handler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(jwtSecret))

			// Any authenticated role.
			r.Get("/products", handler.ListProducts)
			r.Get("/products/autocomplete", handler.AutocompleteProducts)
			r.Get("/products/total-sales", handler.TotalSalesByProduct)
			r.Get("/products/total-sales-per-customer", handler.TotalSalesPerCustomer)
			r.Get("/products/total-sales-per-customer/export", handler.ExportTotalSalesPerCustomer)
			r.Get("/products/total-sales-per-product-customer", handler.TotalSalesPerProductCustomer)
			r.Get("/products/{id}", handler.GetProduct)
			r.Post("/products", handler.CreateProduct)
			r.Put("/products/{id}", handler.UpdateProduct)
			r.Delete("/products/{id}", handler.DeleteProduct)

			// Planning or sales.
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(auth.RolePlanning, auth.RoleSales))

				r.Get("/stock-mutations", handler.ListStockMutations)
				r.Post("/stock-mutations", handler.CreateStockMutation)
				r.Get("/stock-mutations/{id}", handler.GetStockMutation)
				r.Delete("/stock-mutations/{id}", handler.DeleteStockMutation)

				r.Get("/stock-location-inventory", handler.ListInventory)
				r.Get("/stock-location-inventory/full", handler.ListInventoryFull)
				r.Get("/stock-location-inventory/product-types", handler.ListLocationProductTypes)
				r.Get("/stock-location-inventory/balance", handler.InventoryBalance)

				r.Get("/orders", handler.ListOrders)
				r.Post("/orders", handler.CreateOrder)
			})

			// Planning only.
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(auth.RolePlanning))

				r.Get("/suppliers", handler.ListSuppliers)
				r.Get("/suppliers/autocomplete", handler.AutocompleteSuppliers)
				r.Get("/suppliers/{id}", handler.GetSupplier)
				r.Post("/suppliers", handler.CreateSupplier)
				r.Put("/suppliers/{id}", handler.UpdateSupplier)
				r.Delete("/suppliers/{id}", handler.DeleteSupplier)

				r.Get("/stock-locations", handler.ListStockLocations)
				r.Get("/stock-locations/{id}", handler.GetStockLocation)
				r.Post("/stock-locations", handler.CreateStockLocation)
				r.Put("/stock-locations/{id}", handler.UpdateStockLocation)
				r.Delete("/stock-locations/{id}", handler.DeleteStockLocation)

				r.Get("/users", handler.ListUsers)
				r.Post("/users", handler.CreateUser)
			})
		})
	})

	return r
}
