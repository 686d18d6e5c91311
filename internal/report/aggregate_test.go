package report

import (
	"testing"

	"purchasing-backend/internal/domain"

	"github.com/shopspring/decimal"
)

func line(productID int64, productName string, customerID int64, orderName string, amount int, purchase, selling string) domain.SalesOrderLine {
	return domain.SalesOrderLine{
		ProductID:             productID,
		ProductName:           productName,
		CustomerID:            customerID,
		OrderName:             orderName,
		Amount:                amount,
		PricePurchase:         decimal.RequireFromString(purchase),
		PricePurchaseCurrency: "EUR",
		PriceSelling:          decimal.RequireFromString(selling),
		PriceSellingCurrency:  "EUR",
	}
}

func totalsOf(lines []domain.SalesOrderLine) domain.SalesTotals {
	var totals domain.SalesTotals
	for _, l := range lines {
		totals.Amount += l.Amount
		totals.PricePurchase = totals.PricePurchase.Add(l.PricePurchase)
		totals.PriceSelling = totals.PriceSelling.Add(l.PriceSelling)
	}
	return totals
}

func assertDecimal(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func assertPerc(t *testing.T, got *decimal.Decimal, want string) {
	t.Helper()
	if got == nil {
		t.Fatalf("got nil percentage, want %s", want)
	}
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestTotalSalesByProduct(t *testing.T) {
	// Two orders for P1 (amount 12 + 8), one for P2 (amount 5).
	lines := []domain.SalesOrderLine{
		line(1, "P1", 10, "ORD-A", 12, "60.00", "120.00"),
		line(2, "P2", 10, "ORD-A", 5, "25.00", "40.00"),
		line(1, "P1", 20, "ORD-B", 8, "40.00", "80.00"),
	}
	rows := TotalSalesByProduct(lines, totalsOf(lines))

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].ProductName != "P1" || rows[1].ProductName != "P2" {
		t.Fatalf("rows ordered %q, %q; want P1 first (higher selling total)", rows[0].ProductName, rows[1].ProductName)
	}

	p1 := rows[0]
	if p1.Amount != 20 {
		t.Fatalf("P1 amount = %d, want 20", p1.Amount)
	}
	assertDecimal(t, p1.PricePurchaseAmount, "100.00")
	assertDecimal(t, p1.PriceSellingAmount, "200.00")
	assertDecimal(t, p1.Profit, "100.00")
	assertPerc(t, p1.AmountPerc, "80")
	assertPerc(t, p1.AmountSellingPerc, "83.33")

	p2 := rows[1]
	if p2.Amount != 5 {
		t.Fatalf("P2 amount = %d, want 5", p2.Amount)
	}
	assertDecimal(t, p2.Profit, "15.00")
	assertPerc(t, p2.AmountPerc, "20")
	assertPerc(t, p2.AmountSellingPerc, "16.67")
}

func TestTotalSalesPerCustomer(t *testing.T) {
	lines := []domain.SalesOrderLine{
		line(1, "P1", 10, "ORD-A", 12, "60.00", "120.00"),
		line(2, "P2", 10, "ORD-A", 13, "65.00", "130.00"),
		line(1, "P1", 20, "ORD-B", 5, "25.00", "50.00"),
	}
	rows := TotalSalesPerCustomer(lines, totalsOf(lines))

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].OrderName != "ORD-A" {
		t.Fatalf("first row labelled %q, want ORD-A", rows[0].OrderName)
	}
	if rows[0].Amount != 25 || rows[1].Amount != 5 {
		t.Fatalf("amounts = %d, %d; want 25, 5", rows[0].Amount, rows[1].Amount)
	}
	assertPerc(t, rows[0].AmountPerc, "83.33")
	assertPerc(t, rows[1].AmountPerc, "16.67")

	// Percentages over the same denominator sum back to ~100.
	sum := rows[0].AmountPerc.Add(*rows[1].AmountPerc)
	if sum.Sub(decimal.NewFromInt(100)).Abs().GreaterThan(decimal.RequireFromString("0.01")) {
		t.Fatalf("amount percentages sum to %s, want ~100", sum)
	}
}

func TestTotalSalesPerProductCustomer(t *testing.T) {
	// Same product sold to two customers stays two rows.
	lines := []domain.SalesOrderLine{
		line(1, "P1", 10, "ORD-A", 4, "20.00", "40.00"),
		line(1, "P1", 20, "ORD-B", 6, "30.00", "60.00"),
		line(1, "P1", 10, "ORD-A", 1, "5.00", "10.00"),
	}
	rows := TotalSalesPerProductCustomer(lines, totalsOf(lines))

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].OrderName != "ORD-B" || rows[0].Amount != 6 {
		t.Fatalf("top row = %q amount %d, want ORD-B amount 6", rows[0].OrderName, rows[0].Amount)
	}
	if rows[1].ProductName != "P1" || rows[1].Amount != 5 {
		t.Fatalf("second row = %q amount %d, want P1 amount 5", rows[1].ProductName, rows[1].Amount)
	}
}

func TestAggregateGrandTotalsSharedAcrossGroupings(t *testing.T) {
	lines := []domain.SalesOrderLine{
		line(1, "P1", 10, "ORD-A", 3, "10.00", "30.00"),
		line(2, "P2", 20, "ORD-B", 7, "20.00", "70.00"),
	}
	totals := totalsOf(lines)

	byProduct := TotalSalesByProduct(lines, totals)
	byCustomer := TotalSalesPerCustomer(lines, totals)

	var productSum, customerSum decimal.Decimal
	for _, row := range byProduct {
		productSum = productSum.Add(row.PriceSellingAmount)
	}
	for _, row := range byCustomer {
		customerSum = customerSum.Add(row.PriceSellingAmount)
	}
	if !productSum.Equal(customerSum) {
		t.Fatalf("selling totals differ: by product %s, by customer %s", productSum, customerSum)
	}
}

func TestAggregateZeroDenominators(t *testing.T) {
	// Rows exist (filtered scope) but the grand totals are zero, e.g. the
	// unfiltered year had no volume. Percentages must be null, not a division
	// error.
	lines := []domain.SalesOrderLine{
		line(1, "P1", 10, "ORD-A", 0, "0.00", "0.00"),
	}
	rows := TotalSalesByProduct(lines, domain.SalesTotals{})

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].AmountPerc != nil {
		t.Fatalf("amount_perc = %s, want nil", rows[0].AmountPerc)
	}
	if rows[0].AmountSellingPerc != nil {
		t.Fatalf("amount_selling_perc = %s, want nil", rows[0].AmountSellingPerc)
	}
	assertDecimal(t, rows[0].Profit, "0.00")
}

func TestAggregateTiesKeepFirstSeenOrder(t *testing.T) {
	lines := []domain.SalesOrderLine{
		line(3, "P3", 10, "ORD-A", 1, "5.00", "50.00"),
		line(1, "P1", 10, "ORD-A", 1, "5.00", "50.00"),
		line(2, "P2", 10, "ORD-A", 1, "5.00", "50.00"),
	}
	rows := TotalSalesByProduct(lines, totalsOf(lines))

	want := []string{"P3", "P1", "P2"}
	for i, name := range want {
		if rows[i].ProductName != name {
			t.Fatalf("row %d = %q, want %q (first-seen order on equal selling amounts)", i, rows[i].ProductName, name)
		}
	}
}

func TestAggregateEmptyScope(t *testing.T) {
	rows := TotalSalesByProduct(nil, domain.SalesTotals{})
	if len(rows) != 0 {
		t.Fatalf("got %d rows, want 0", len(rows))
	}
}
