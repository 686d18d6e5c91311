package report

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func TestWriteCustomerSalesXLSX(t *testing.T) {
	perc := decimal.RequireFromString("62.50")
	rows := []Row{
		{
			OrderName:             "ORD-A",
			Amount:                25,
			PricePurchaseAmount:   decimal.RequireFromString("125.00"),
			PricePurchaseCurrency: "EUR",
			PriceSellingAmount:    decimal.RequireFromString("250.00"),
			PriceSellingCurrency:  "EUR",
			Profit:                decimal.RequireFromString("125.00"),
			AmountPerc:            &perc,
			AmountSellingPerc:     &perc,
		},
		{
			OrderName:             "ORD-B",
			Amount:                5,
			PricePurchaseAmount:   decimal.RequireFromString("25.00"),
			PricePurchaseCurrency: "EUR",
			PriceSellingAmount:    decimal.RequireFromString("50.00"),
			PriceSellingCurrency:  "EUR",
			Profit:                decimal.RequireFromString("25.00"),
		},
	}

	var buf bytes.Buffer
	if err := WriteCustomerSalesXLSX(&buf, rows); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	file, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer file.Close()

	sheet := file.GetSheetName(0)
	cell := func(ref string) string {
		t.Helper()
		value, err := file.GetCellValue(sheet, ref)
		if err != nil {
			t.Fatalf("read cell %s: %v", ref, err)
		}
		return value
	}

	if got := cell("A1"); got != "order_name" {
		t.Errorf("A1 = %q, want order_name", got)
	}
	if got := cell("I1"); got != "amount_selling_perc" {
		t.Errorf("I1 = %q, want amount_selling_perc", got)
	}

	if got := cell("A2"); got != "ORD-A" {
		t.Errorf("A2 = %q, want ORD-A", got)
	}
	if got := cell("B2"); got != "25" {
		t.Errorf("B2 = %q, want 25", got)
	}
	if got := cell("E2"); got != "250" {
		t.Errorf("E2 = %q, want 250", got)
	}
	if got := cell("H2"); got != "62.5" {
		t.Errorf("H2 = %q, want 62.5", got)
	}

	if got := cell("A3"); got != "ORD-B" {
		t.Errorf("A3 = %q, want ORD-B", got)
	}
	// Nil percentages come out as empty cells, not zeroes.
	if got := cell("H3"); got != "" {
		t.Errorf("H3 = %q, want empty", got)
	}

	// Nothing past the written rows.
	if got := cell("A4"); got != "" {
		t.Errorf("A4 = %q, want empty", got)
	}
}
