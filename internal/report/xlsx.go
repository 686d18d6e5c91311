package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var xlsxHeader = []any{
	"order_name",
	"amount",
	"price_purchase_amount",
	"price_purchase_currency",
	"price_selling_amount",
	"price_selling_currency",
	"profit",
	"amount_perc",
	"amount_selling_perc",
}

// WriteCustomerSalesXLSX renders the per-customer report as a single-sheet
// workbook, one row per group, in the order the rows were computed.
func WriteCustomerSalesXLSX(w io.Writer, rows []Row) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	if err := file.SetSheetRow(sheet, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx cell name: %w", err)
		}
		values := []any{
			row.OrderName,
			row.Amount,
			row.PricePurchaseAmount.InexactFloat64(),
			row.PricePurchaseCurrency,
			row.PriceSellingAmount.InexactFloat64(),
			row.PriceSellingCurrency,
			row.Profit.InexactFloat64(),
			percCell(row.AmountPerc),
			percCell(row.AmountSellingPerc),
		}
		if err := file.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", i+2, err)
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func percCell(value *decimal.Decimal) any {
	if value == nil {
		return nil
	}
	return value.InexactFloat64()
}
