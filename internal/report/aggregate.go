// Package report builds the sales reports: order lines grouped by product,
// by customer, or by both, with profit and percentage columns derived from
// the year's grand totals.
package report

import (
	"sort"

	"purchasing-backend/internal/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Row is one report group. Percentage fields are nil when the corresponding
// grand total is zero (no sales in scope), which serializes as JSON null.
type Row struct {
	ProductName           string           `json:"product_name,omitempty"`
	OrderName             string           `json:"order_name,omitempty"`
	Amount                int              `json:"amount"`
	PricePurchaseAmount   decimal.Decimal  `json:"price_purchase_amount"`
	PricePurchaseCurrency string           `json:"price_purchase_currency"`
	PriceSellingAmount    decimal.Decimal  `json:"price_selling_amount"`
	PriceSellingCurrency  string           `json:"price_selling_currency"`
	Profit                decimal.Decimal  `json:"profit"`
	AmountPerc            *decimal.Decimal `json:"amount_perc"`
	AmountSellingPerc     *decimal.Decimal `json:"amount_selling_perc"`
}

type groupKey struct {
	customerID int64
	productID  int64
}

// TotalSalesByProduct groups the lines per product.
func TotalSalesByProduct(lines []domain.SalesOrderLine, totals domain.SalesTotals) []Row {
	return aggregate(lines, totals,
		func(line domain.SalesOrderLine) groupKey {
			return groupKey{productID: line.ProductID}
		},
		func(line domain.SalesOrderLine, row *Row) {
			row.ProductName = line.ProductName
		},
	)
}

// TotalSalesPerCustomer groups the lines per customer, labelled with the
// first-seen order name for that customer.
func TotalSalesPerCustomer(lines []domain.SalesOrderLine, totals domain.SalesTotals) []Row {
	return aggregate(lines, totals,
		func(line domain.SalesOrderLine) groupKey {
			return groupKey{customerID: line.CustomerID}
		},
		func(line domain.SalesOrderLine, row *Row) {
			row.OrderName = line.OrderName
		},
	)
}

// TotalSalesPerProductCustomer groups the lines per (customer, product) pair.
func TotalSalesPerProductCustomer(lines []domain.SalesOrderLine, totals domain.SalesTotals) []Row {
	return aggregate(lines, totals,
		func(line domain.SalesOrderLine) groupKey {
			return groupKey{customerID: line.CustomerID, productID: line.ProductID}
		},
		func(line domain.SalesOrderLine, row *Row) {
			row.ProductName = line.ProductName
			row.OrderName = line.OrderName
		},
	)
}

// aggregate folds order lines into groups in first-seen order, derives the
// profit and percentage columns, and sorts by selling amount descending.
// The stable sort keeps first-seen order on ties, so output is deterministic
// for a given input order.
func aggregate(
	lines []domain.SalesOrderLine,
	totals domain.SalesTotals,
	keyOf func(domain.SalesOrderLine) groupKey,
	label func(domain.SalesOrderLine, *Row),
) []Row {
	index := make(map[groupKey]int, len(lines))
	rows := make([]Row, 0, len(lines))

	for _, line := range lines {
		key := keyOf(line)
		if i, ok := index[key]; ok {
			rows[i].Amount += line.Amount
			rows[i].PricePurchaseAmount = rows[i].PricePurchaseAmount.Add(line.PricePurchase)
			rows[i].PriceSellingAmount = rows[i].PriceSellingAmount.Add(line.PriceSelling)
			continue
		}
		row := Row{
			Amount:                line.Amount,
			PricePurchaseAmount:   line.PricePurchase,
			PricePurchaseCurrency: line.PricePurchaseCurrency,
			PriceSellingAmount:    line.PriceSelling,
			PriceSellingCurrency:  line.PriceSellingCurrency,
		}
		label(line, &row)
		index[key] = len(rows)
		rows = append(rows, row)
	}

	for i := range rows {
		rows[i].Profit = rows[i].PriceSellingAmount.Sub(rows[i].PricePurchaseAmount).Round(2)
		if totals.Amount != 0 {
			perc := decimal.NewFromInt(int64(rows[i].Amount)).
				Mul(hundred).
				Div(decimal.NewFromInt(int64(totals.Amount))).
				Round(2)
			rows[i].AmountPerc = &perc
		}
		if !totals.PriceSelling.IsZero() {
			perc := rows[i].PriceSellingAmount.
				Mul(hundred).
				Div(totals.PriceSelling).
				Round(2)
			rows[i].AmountSellingPerc = &perc
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].PriceSellingAmount.GreaterThan(rows[j].PriceSellingAmount)
	})
	return rows
}
