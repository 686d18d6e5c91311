package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID                      int64           `json:"id"`
	Identifier              *string         `json:"identifier,omitempty"`
	Name                    string          `json:"name"`
	NameShort               *string         `json:"name_short,omitempty"`
	SearchName              *string         `json:"search_name,omitempty"`
	Unit                    *string         `json:"unit,omitempty"`
	Supplier                *string         `json:"supplier,omitempty"`
	ProductType             *string         `json:"product_type,omitempty"`
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
	CreatedAt               time.Time       `json:"created_at"`
	ModifiedAt              time.Time       `json:"modified_at"`
}

// ShowName mirrors how products are displayed in pickers: the short name
// with the full name in parentheses when both are set.
func (p Product) ShowName() string {
	if p.NameShort != nil && *p.NameShort != "" {
		if p.Name != "" {
			return *p.NameShort + " (" + p.Name + ")"
		}
		return *p.NameShort
	}
	return p.Name
}

type Supplier struct {
	ID          int64     `json:"id"`
	Identifier  *string   `json:"identifier,omitempty"`
	Name        string    `json:"name"`
	Address     *string   `json:"address,omitempty"`
	Postal      *string   `json:"postal,omitempty"`
	City        *string   `json:"city,omitempty"`
	State       *string   `json:"state,omitempty"`
	CountryCode string    `json:"country_code"`
	Tel         *string   `json:"tel,omitempty"`
	Mobile      *string   `json:"mobile,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Contact     *string   `json:"contact,omitempty"`
	Remarks     *string   `json:"remarks,omitempty"`
	Lat         *float64  `json:"lat,omitempty"`
	Lon         *float64  `json:"lon,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	ModifiedAt  time.Time `json:"modified_at"`
}

type StockLocation struct {
	ID         int64     `json:"id"`
	Identifier *string   `json:"identifier,omitempty"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// StockLocationInventory is the derived per-(product, location) balance.
// Rows only exist for pairs that have been touched by a mutation; an absent
// row reads as a zero balance. Amounts may go negative (oversold).
type StockLocationInventory struct {
	ID         int64     `json:"id"`
	ProductID  int64     `json:"product"`
	LocationID int64     `json:"location"`
	Amount     int       `json:"amount"`
	ModifiedAt time.Time `json:"modified_at"`
}

type StockLocationInventoryFull struct {
	ID               int64         `json:"id"`
	Product          Product       `json:"product"`
	Location         StockLocation `json:"location"`
	Amount           int           `json:"amount"`
	SalesAmountToday int           `json:"sales_amount_today"`
	ModifiedAt       time.Time     `json:"modified_at"`
}

type StockMutation struct {
	ID             int64        `json:"id"`
	ProductID      int64        `json:"product"`
	ProductName    string       `json:"product_name"`
	FromLocationID *int64       `json:"from_location,omitempty"`
	ToLocationID   *int64       `json:"to_location,omitempty"`
	MutationType   MutationType `json:"mutation_type"`
	Amount         int          `json:"amount"`
	Summary        string       `json:"summary"`
	CreatedAt      time.Time    `json:"created_at"`
	ModifiedAt     time.Time    `json:"modified_at"`
}

type Order struct {
	ID         int64     `json:"id"`
	OrderName  string    `json:"order_name"`
	CustomerID int64     `json:"customer_id"`
	OrderType  string    `json:"order_type"`
	StartDate  time.Time `json:"start_date"`
	CreatedAt  time.Time `json:"created_at"`
}

type OrderLine struct {
	ID                    int64           `json:"id"`
	OrderID               int64           `json:"order_id"`
	ProductID             int64           `json:"product_id"`
	LocationID            *int64          `json:"location_id,omitempty"`
	Amount                int             `json:"amount"`
	PricePurchase         decimal.Decimal `json:"price_purchase"`
	PricePurchaseCurrency string          `json:"price_purchase_currency"`
	PriceSelling          decimal.Decimal `json:"price_selling"`
	PriceSellingCurrency  string          `json:"price_selling_currency"`
}

// SalesOrderLine is one order line joined with its order and product, the
// source row for the sales reports.
type SalesOrderLine struct {
	ProductID             int64
	ProductName           string
	CustomerID            int64
	OrderName             string
	Amount                int
	PricePurchase         decimal.Decimal
	PricePurchaseCurrency string
	PriceSelling          decimal.Decimal
	PriceSellingCurrency  string
}

// SalesTotals are the grand totals over a report scope, used as the
// denominators for every row's percentages.
type SalesTotals struct {
	Amount        int
	PricePurchase decimal.Decimal
	PriceSelling  decimal.Decimal
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type ProductAutocompleteRow struct {
	ID            int64           `json:"id"`
	Identifier    *string         `json:"identifier,omitempty"`
	Name          string          `json:"name"`
	Value         string          `json:"value"`
	PricePurchase decimal.Decimal `json:"price_purchase"`
	PriceSelling  decimal.Decimal `json:"price_selling"`
}

type SupplierAutocompleteRow struct {
	ID          int64   `json:"id"`
	Identifier  *string `json:"identifier,omitempty"`
	Name        string  `json:"name"`
	Postal      *string `json:"postal,omitempty"`
	City        *string `json:"city,omitempty"`
	CountryCode string  `json:"country_code"`
	Tel         *string `json:"tel,omitempty"`
	Mobile      *string `json:"mobile,omitempty"`
	Email       *string `json:"email,omitempty"`
	Contact     *string `json:"contact,omitempty"`
	Remarks     *string `json:"remarks,omitempty"`
	Value       string  `json:"value"`
}

type LocationProductType struct {
	LocationID  int64   `json:"location_id"`
	ProductType *string `json:"product_type"`
}
