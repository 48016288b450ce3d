package income

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"streampulse/internal/normalize"
)

// LoadOrders reads a completed-orders export. The export carries a subtitle
// row directly under the header, which is skipped.
func LoadOrders(r io.Reader) ([]Order, error) {
	rows, err := sheetRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("orders export has no data rows")
	}

	idx, err := headerIndex(rows[0], []string{"Order ID", "Order Status", "Seller SKU", "Product Name", "Variation", "Quantity"})
	if err != nil {
		return nil, err
	}

	orders := make([]Order, 0, len(rows)-2)
	for _, row := range rows[2:] { // row 1 is the subtitle
		id := cell(row, idx["Order ID"])
		if id == "" {
			continue
		}
		orders = append(orders, Order{
			OrderID:     id,
			Status:      cell(row, idx["Order Status"]),
			SellerSKU:   cell(row, idx["Seller SKU"]),
			ProductName: cell(row, idx["Product Name"]),
			Variation:   cell(row, idx["Variation"]),
			Quantity:    int(normalize.Number(cell(row, idx["Quantity"]))),
		})
	}
	return orders, nil
}

// LoadSettlements reads a settlement-income export.
func LoadSettlements(r io.Reader) ([]Settlement, error) {
	rows, err := sheetRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("settlement export has no header row")
	}

	idx, err := headerIndex(rows[0], []string{"Order/adjustment ID", "Total settlement amount"})
	if err != nil {
		return nil, err
	}

	settlements := make([]Settlement, 0, len(rows)-1)
	for _, row := range rows[1:] {
		id := cell(row, idx["Order/adjustment ID"])
		if id == "" {
			continue
		}
		settlements = append(settlements, Settlement{
			OrderID: id,
			Amount:  normalize.Number(cell(row, idx["Total settlement amount"])),
		})
	}
	return settlements, nil
}

func sheetRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func headerIndex(header []string, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}

	var missing []string
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}
