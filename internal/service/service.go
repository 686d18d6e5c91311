package service

import (
	"context"
	"log"
	"strings"

	"purchasing-backend/internal/domain"
	"purchasing-backend/internal/geo"
	"purchasing-backend/internal/report"
	"purchasing-backend/internal/repository"
)

type Service struct {
	repo     *repository.Repository
	geocoder geo.Geocoder
}

// New builds the service. geocoder may be nil; supplier geocoding is then
// skipped entirely.
func New(repo *repository.Repository, geocoder geo.Geocoder) *Service {
	return &Service{repo: repo, geocoder: geocoder}
}

func (s *Service) ListProducts(ctx context.Context, filter repository.ProductListFilter) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx, filter)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, input repository.ProductInput) (domain.Product, error) {
	return s.repo.CreateProduct(ctx, input)
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, input repository.ProductInput) (*domain.Product, error) {
	return s.repo.UpdateProduct(ctx, id, input)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.DeleteProduct(ctx, id)
}

func (s *Service) AutocompleteProducts(ctx context.Context, query string) ([]domain.ProductAutocompleteRow, error) {
	return s.repo.AutocompleteProducts(ctx, query)
}

func (s *Service) ListSuppliers(ctx context.Context, filter repository.SupplierListFilter) ([]domain.Supplier, error) {
	return s.repo.ListSuppliers(ctx, filter)
}

func (s *Service) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	return s.repo.GetSupplierByID(ctx, id)
}

func (s *Service) CreateSupplier(ctx context.Context, input repository.SupplierInput) (domain.Supplier, error) {
	s.geocodeSupplier(ctx, &input)
	return s.repo.CreateSupplier(ctx, input)
}

func (s *Service) UpdateSupplier(ctx context.Context, id int64, input repository.SupplierInput) (*domain.Supplier, error) {
	s.geocodeSupplier(ctx, &input)
	return s.repo.UpdateSupplier(ctx, id, input)
}

func (s *Service) DeleteSupplier(ctx context.Context, id int64) error {
	return s.repo.DeleteSupplier(ctx, id)
}

func (s *Service) AutocompleteSuppliers(ctx context.Context, query string) ([]domain.SupplierAutocompleteRow, error) {
	return s.repo.AutocompleteSuppliers(ctx, query)
}

// geocodeSupplier fills missing coordinates once at save time. Lookup
// failures only log; the supplier is saved without coordinates.
func (s *Service) geocodeSupplier(ctx context.Context, input *repository.SupplierInput) {
	if s.geocoder == nil || (input.Lat != nil && input.Lon != nil) {
		return
	}
	address := supplierAddressText(input)
	if address == "" {
		return
	}
	lat, lon, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		log.Printf("geocode supplier %q: %v", input.Name, err)
		return
	}
	input.Lat = &lat
	input.Lon = &lon
}

func supplierAddressText(input *repository.SupplierInput) string {
	parts := make([]string, 0, 4)
	for _, part := range []*string{input.Address, input.Postal, input.City} {
		if part != nil && strings.TrimSpace(*part) != "" {
			parts = append(parts, strings.TrimSpace(*part))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	parts = append(parts, input.CountryCode)
	return strings.Join(parts, ", ")
}

func (s *Service) ListStockLocations(ctx context.Context, search string, limit, offset int) ([]domain.StockLocation, error) {
	return s.repo.ListStockLocations(ctx, search, limit, offset)
}

func (s *Service) GetStockLocation(ctx context.Context, id int64) (*domain.StockLocation, error) {
	return s.repo.GetStockLocationByID(ctx, id)
}

func (s *Service) CreateStockLocation(ctx context.Context, input repository.StockLocationInput) (domain.StockLocation, error) {
	return s.repo.CreateStockLocation(ctx, input)
}

func (s *Service) UpdateStockLocation(ctx context.Context, id int64, input repository.StockLocationInput) (*domain.StockLocation, error) {
	return s.repo.UpdateStockLocation(ctx, id, input)
}

func (s *Service) DeleteStockLocation(ctx context.Context, id int64) error {
	return s.repo.DeleteStockLocation(ctx, id)
}

func (s *Service) ListInventory(ctx context.Context, filter repository.InventoryListFilter) ([]domain.StockLocationInventory, error) {
	return s.repo.ListInventory(ctx, filter)
}

func (s *Service) ListInventoryFull(ctx context.Context, filter repository.InventoryListFilter) ([]domain.StockLocationInventoryFull, error) {
	return s.repo.ListInventoryFull(ctx, filter)
}

func (s *Service) ListLocationProductTypes(ctx context.Context, locationID int64) ([]domain.LocationProductType, error) {
	return s.repo.ListLocationProductTypes(ctx, locationID)
}

func (s *Service) GetInventoryBalance(ctx context.Context, productID, locationID int64) (int, error) {
	return s.repo.GetInventoryBalance(ctx, productID, locationID)
}

func (s *Service) SalesAmountToday(ctx context.Context, productID, locationID int64) (int, error) {
	return s.repo.SalesAmountForPairToday(ctx, productID, locationID)
}

func (s *Service) CreateStockMutation(ctx context.Context, input repository.StockMutationInput) (domain.StockMutation, error) {
	return s.repo.CreateStockMutation(ctx, input)
}

func (s *Service) ListStockMutations(ctx context.Context, productID *int64, limit, offset int) ([]domain.StockMutation, error) {
	return s.repo.ListStockMutations(ctx, productID, limit, offset)
}

func (s *Service) GetStockMutation(ctx context.Context, id int64) (*domain.StockMutation, error) {
	return s.repo.GetStockMutationByID(ctx, id)
}

func (s *Service) DeleteStockMutation(ctx context.Context, id int64) error {
	return s.repo.DeleteStockMutation(ctx, id)
}

func (s *Service) CreateOrder(ctx context.Context, input repository.OrderInput) (domain.Order, error) {
	return s.repo.CreateOrder(ctx, input)
}

func (s *Service) ListOrders(ctx context.Context, orderType string, limit, offset int) ([]domain.Order, error) {
	return s.repo.ListOrders(ctx, orderType, limit, offset)
}

func (s *Service) TotalSalesByProduct(ctx context.Context, year int, query string) ([]report.Row, error) {
	totals, err := s.repo.SalesTotals(ctx, year)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.ListSalesOrderLines(ctx, year, query, true, false)
	if err != nil {
		return nil, err
	}
	return report.TotalSalesByProduct(lines, totals), nil
}

func (s *Service) TotalSalesPerCustomer(ctx context.Context, year int, query string) ([]report.Row, error) {
	totals, err := s.repo.SalesTotals(ctx, year)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.ListSalesOrderLines(ctx, year, query, false, true)
	if err != nil {
		return nil, err
	}
	return report.TotalSalesPerCustomer(lines, totals), nil
}

func (s *Service) TotalSalesPerProductCustomer(ctx context.Context, year int, query string) ([]report.Row, error) {
	totals, err := s.repo.SalesTotals(ctx, year)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.ListSalesOrderLines(ctx, year, query, true, true)
	if err != nil {
		return nil, err
	}
	return report.TotalSalesPerProductCustomer(lines, totals), nil
}

func (s *Service) EnsureDefaultUser(ctx context.Context) error {
	return s.repo.EnsureDefaultUser(ctx)
}

func (s *Service) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	return s.repo.AuthenticateUser(ctx, username, password)
}

func (s *Service) CreateUser(ctx context.Context, username, password, role string) (*domain.User, error) {
	return s.repo.CreateUser(ctx, username, password, role)
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}
