package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"purchasing-backend/internal/auth"
	"purchasing-backend/internal/domain"
	"purchasing-backend/internal/report"
	"purchasing-backend/internal/repository"
	"purchasing-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type Handler struct {
	svc       *service.Service
	jwtSecret string
}

func NewHandler(svc *service.Service, jwtSecret string) *Handler {
	return &Handler{svc: svc, jwtSecret: jwtSecret}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.svc.AuthenticateUser(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := auth.GenerateToken(h.jwtSecret, user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !auth.ValidRole(req.Role) {
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}
	user, err := h.svc.CreateUser(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			writeError(w, http.StatusConflict, "username already taken")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": users, "count": len(users)})
}

type productRequest struct {
	Identifier              *string         `json:"identifier"`
	Name                    string          `json:"name"`
	NameShort               *string         `json:"name_short"`
	SearchName              *string         `json:"search_name"`
	Unit                    *string         `json:"unit"`
	Supplier                *string         `json:"supplier"`
	ProductType             *string         `json:"product_type"`
	PricePurchase           decimal.Decimal `json:"price_purchase"`
	PricePurchaseCurrency   string          `json:"price_purchase_currency"`
	PriceSelling            decimal.Decimal `json:"price_selling"`
	PriceSellingCurrency    string          `json:"price_selling_currency"`
	PriceSellingAlt         decimal.Decimal `json:"price_selling_alt"`
	PriceSellingAltCurrency string          `json:"price_selling_alt_currency"`
	PricePurchaseEx         decimal.Decimal `json:"price_purchase_ex"`
	PriceSellingEx          decimal.Decimal `json:"price_selling_ex"`
	PriceSellingAltEx       decimal.Decimal `json:"price_selling_alt_ex"`
	TaxPercentage           decimal.Decimal `json:"tax_percentage"`
}

func (req productRequest) toInput() repository.ProductInput {
	return repository.ProductInput{
		Identifier:              req.Identifier,
		Name:                    req.Name,
		NameShort:               req.NameShort,
		SearchName:              req.SearchName,
		Unit:                    req.Unit,
		Supplier:                req.Supplier,
		ProductType:             req.ProductType,
		PricePurchase:           req.PricePurchase,
		PricePurchaseCurrency:   req.PricePurchaseCurrency,
		PriceSelling:            req.PriceSelling,
		PriceSellingCurrency:    req.PriceSellingCurrency,
		PriceSellingAlt:         req.PriceSellingAlt,
		PriceSellingAltCurrency: req.PriceSellingAltCurrency,
		PricePurchaseEx:         req.PricePurchaseEx,
		PriceSellingEx:          req.PriceSellingEx,
		PriceSellingAltEx:       req.PriceSellingAltEx,
		TaxPercentage:           req.TaxPercentage,
	}
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, err := parseOptionalInt(query.Get("limit"), 200)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := parseOptionalInt(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.svc.ListProducts(r.Context(), repository.ProductListFilter{
		Search:      query.Get("search"),
		ProductType: query.Get("product_type"),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	product, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := h.svc.CreateProduct(r.Context(), req.toInput())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := h.svc.UpdateProduct(r.Context(), id, req.toInput())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AutocompleteProducts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.AutocompleteProducts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

type supplierRequest struct {
	Identifier  *string  `json:"identifier"`
	Name        string   `json:"name"`
	Address     *string  `json:"address"`
	Postal      *string  `json:"postal"`
	City        *string  `json:"city"`
	State       *string  `json:"state"`
	CountryCode string   `json:"country_code"`
	Tel         *string  `json:"tel"`
	Mobile      *string  `json:"mobile"`
	Email       *string  `json:"email"`
	Contact     *string  `json:"contact"`
	Remarks     *string  `json:"remarks"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
}

func (req supplierRequest) toInput() repository.SupplierInput {
	return repository.SupplierInput{
		Identifier:  req.Identifier,
		Name:        req.Name,
		Address:     req.Address,
		Postal:      req.Postal,
		City:        req.City,
		State:       req.State,
		CountryCode: req.CountryCode,
		Tel:         req.Tel,
		Mobile:      req.Mobile,
		Email:       req.Email,
		Contact:     req.Contact,
		Remarks:     req.Remarks,
		Lat:         req.Lat,
		Lon:         req.Lon,
	}
}

func (h *Handler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, err := parseOptionalInt(query.Get("limit"), 200)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := parseOptionalInt(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.svc.ListSuppliers(r.Context(), repository.SupplierListFilter{
		Search: query.Get("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h *Handler) GetSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	supplier, err := h.svc.GetSupplier(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "supplier not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, supplier)
}

func (h *Handler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req supplierRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := h.svc.CreateSupplier(r.Context(), req.toInput())
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			writeError(w, http.StatusConflict, "supplier already exists")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req supplierRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := h.svc.UpdateSupplier(r.Context(), id, req.toInput())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "supplier not found")
			return
		}
		if errors.Is(err, repository.ErrConflict) {
			writeError(w, http.StatusConflict, "supplier already exists")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.DeleteSupplier(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "supplier not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AutocompleteSuppliers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.AutocompleteSuppliers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

type stockLocationRequest struct {
	Identifier *string `json:"identifier"`
	Name       string  `json:"name"`
}

func (h *Handler) ListStockLocations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, err := parseOptionalInt(query.Get("limit"), 200)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := parseOptionalInt(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.svc.ListStockLocations(r.Context(), query.Get("search"), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h *Handler) GetStockLocation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	location, err := h.svc.GetStockLocation(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "stock location not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, location)
}

func (h *Handler) CreateStockLocation(w http.ResponseWriter, r *http.Request) {
	var req stockLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := h.svc.CreateStockLocation(r.Context(), repository.StockLocationInput{
		Identifier: req.Identifier,
		Name:       req.Name,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateStockLocation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req stockLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := h.svc.UpdateStockLocation(r.Context(), id, repository.StockLocationInput{
		Identifier: req.Identifier,
		Name:       req.Name,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "stock location not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteStockLocation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.DeleteStockLocation(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "stock location not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func inventoryFilterFromQuery(r *http.Request) (repository.InventoryListFilter, error) {
	query := r.URL.Query()
	limit, err := parseOptionalInt(query.Get("limit"), 200)
	if err != nil {
		return repository.InventoryListFilter{}, err
	}
	offset, err := parseOptionalInt(query.Get("offset"), 0)
	if err != nil {
		return repository.InventoryListFilter{}, err
	}
	productID, err := parseOptionalInt64(query.Get("product"))
	if err != nil {
		return repository.InventoryListFilter{}, err
	}
	locationID, err := parseOptionalInt64(query.Get("location"))
	if err != nil {
		return repository.InventoryListFilter{}, err
	}
	return repository.InventoryListFilter{
		ProductID:  productID,
		LocationID: locationID,
		Search:     query.Get("q"),
		Limit:      limit,
		Offset:     offset,
	}, nil
}

func (h *Handler) ListInventory(w http.ResponseWriter, r *http.Request) {
	filter, err := inventoryFilterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	items, err := h.svc.ListInventory(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h *Handler) ListInventoryFull(w http.ResponseWriter, r *http.Request) {
	filter, err := inventoryFilterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	items, err := h.svc.ListInventoryFull(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h *Handler) ListLocationProductTypes(w http.ResponseWriter, r *http.Request) {
	locationID, err := parseID(r.URL.Query().Get("location_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "location_id is required")
		return
	}
	rows, err := h.svc.ListLocationProductTypes(r.Context(), locationID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) InventoryBalance(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	productID, err := parseID(query.Get("product"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "product is required")
		return
	}
	locationID, err := parseID(query.Get("location"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "location is required")
		return
	}
	amount, err := h.svc.GetInventoryBalance(r.Context(), productID, locationID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	salesToday, err := h.svc.SalesAmountToday(r.Context(), productID, locationID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"product":            productID,
		"location":           locationID,
		"amount":             amount,
		"sales_amount_today": salesToday,
	})
}

type createStockMutationRequest struct {
	Product      int64  `json:"product"`
	FromLocation *int64 `json:"from_location"`
	ToLocation   *int64 `json:"to_location"`
	MutationType string `json:"mutation_type"`
	Amount       int    `json:"amount"`
}

func (h *Handler) CreateStockMutation(w http.ResponseWriter, r *http.Request) {
	var req createStockMutationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := h.svc.CreateStockMutation(r.Context(), repository.StockMutationInput{
		ProductID:      req.Product,
		FromLocationID: req.FromLocation,
		ToLocationID:   req.ToLocation,
		MutationType:   domain.MutationType(req.MutationType),
		Amount:         req.Amount,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) ListStockMutations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, err := parseOptionalInt(query.Get("limit"), 200)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := parseOptionalInt(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	productID, err := parseOptionalInt64(query.Get("product"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.svc.ListStockMutations(r.Context(), productID, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h *Handler) GetStockMutation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	mutation, err := h.svc.GetStockMutation(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "stock mutation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, mutation)
}

func (h *Handler) DeleteStockMutation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.DeleteStockMutation(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "stock mutation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type orderLineRequest struct {
	Product               int64           `json:"product"`
	Location              *int64          `json:"location"`
	Amount                int             `json:"amount"`
	PricePurchase         decimal.Decimal `json:"price_purchase"`
	PricePurchaseCurrency string          `json:"price_purchase_currency"`
	PriceSelling          decimal.Decimal `json:"price_selling"`
	PriceSellingCurrency  string          `json:"price_selling_currency"`
}

type createOrderRequest struct {
	OrderName  string             `json:"order_name"`
	CustomerID int64              `json:"customer_id"`
	OrderType  string             `json:"order_type"`
	StartDate  string             `json:"start_date"`
	Lines      []orderLineRequest `json:"lines"`
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date")
		return
	}

	lines := make([]repository.OrderLineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, repository.OrderLineInput{
			ProductID:             line.Product,
			LocationID:            line.Location,
			Amount:                line.Amount,
			PricePurchase:         line.PricePurchase,
			PricePurchaseCurrency: line.PricePurchaseCurrency,
			PriceSelling:          line.PriceSelling,
			PriceSellingCurrency:  line.PriceSellingCurrency,
		})
	}

	created, err := h.svc.CreateOrder(r.Context(), repository.OrderInput{
		OrderName:  req.OrderName,
		CustomerID: req.CustomerID,
		OrderType:  req.OrderType,
		StartDate:  startDate,
		Lines:      lines,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, err := parseOptionalInt(query.Get("limit"), 200)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := parseOptionalInt(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.svc.ListOrders(r.Context(), query.Get("order_type"), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func parseReportArgs(r *http.Request) (int, string, error) {
	query := r.URL.Query()
	year, err := parseOptionalInt(query.Get("year"), time.Now().Year())
	if err != nil {
		return 0, "", err
	}
	return year, query.Get("q"), nil
}

func (h *Handler) TotalSalesByProduct(w http.ResponseWriter, r *http.Request) {
	year, q, err := parseReportArgs(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.svc.TotalSalesByProduct(r.Context(), year, q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": rows, "num_pages": 1})
}

func (h *Handler) TotalSalesPerCustomer(w http.ResponseWriter, r *http.Request) {
	year, q, err := parseReportArgs(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.svc.TotalSalesPerCustomer(r.Context(), year, q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": rows, "num_pages": 1})
}

func (h *Handler) TotalSalesPerProductCustomer(w http.ResponseWriter, r *http.Request) {
	year, q, err := parseReportArgs(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.svc.TotalSalesPerProductCustomer(r.Context(), year, q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": rows, "num_pages": 1})
}

func (h *Handler) ExportTotalSalesPerCustomer(w http.ResponseWriter, r *http.Request) {
	year, q, err := parseReportArgs(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.svc.TotalSalesPerCustomer(r.Context(), year, q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="total_sales_per_customer.xlsx"`)
	if err := report.WriteCustomerSalesXLSX(w, rows); err != nil {
		log.Printf("write sales export: %v", err)
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func parseOptionalInt(raw string, defaultValue int) (int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer: %s", raw)
	}
	if parsed < 0 {
		return 0, fmt.Errorf("value cannot be negative")
	}
	return parsed, nil
}

func parseOptionalInt64(raw string) (*int64, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed <= 0 {
		return nil, fmt.Errorf("invalid id value: %s", raw)
	}
	return &parsed, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id")
	}
	return id, nil
}

func parseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
