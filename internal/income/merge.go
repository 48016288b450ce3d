package income

import (
	"fmt"
	"sort"
)

// statusCompleted is the order status that qualifies a row for settlement
// matching ("Selesai" in the marketplace export).
const statusCompleted = "Selesai"

// Order is one row of the completed-orders export. An order ID may appear on
// several rows when the order contains multiple SKUs.
type Order struct {
	OrderID     string
	Status      string
	SellerSKU   string
	ProductName string
	Variation   string
	Quantity    int
}

// Settlement is one row of the settlement-income export.
type Settlement struct {
	OrderID string
	Amount  float64
}

// SummaryRow is the per-product-group result of the merge: one row per
// (seller SKU, product name, variation) with the 60/40 profit split applied.
type SummaryRow struct {
	SellerSKU   string  `json:"seller_sku"`
	ProductName string  `json:"product_name"`
	Variation   string  `json:"variation"`
	TotalQty    int     `json:"total_qty"`
	Revenue     float64 `json:"revenue"`
	CostPerUnit float64 `json:"cost_per_unit"`
	TotalCost   float64 `json:"total_cost"`
	Profit      float64 `json:"profit"`
	Share60     float64 `json:"share_60"`
	Share40     float64 `json:"share_40"`
}

// Totals aggregates the whole report. Revenue counts each settled order
// once, regardless of how many SKU rows it spans.
type Totals struct {
	Orders       int     `json:"orders"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalCost    float64 `json:"total_cost"`
	TotalProfit  float64 `json:"total_profit"`
	Share60      float64 `json:"share_60"`
	Share40      float64 `json:"share_40"`
}

// Merge joins completed orders against deduplicated settlements and groups
// the matches by (SKU, product, variation). It fails only when nothing
// matches; an empty cost ledger just produces zero-cost rows.
func Merge(orders []Order, settlements []Settlement, costs *CostStore) ([]SummaryRow, Totals, error) {
	// Settlements are deduplicated by order ID, first row wins.
	amounts := make(map[string]float64, len(settlements))
	for _, st := range settlements {
		if _, seen := amounts[st.OrderID]; !seen {
			amounts[st.OrderID] = st.Amount
		}
	}

	type key struct{ sku, product, variation string }
	type group struct {
		qty     int
		revenue float64
	}
	groups := make(map[key]*group)
	matchedOrders := make(map[string]float64)

	for _, o := range orders {
		if o.Status != statusCompleted {
			continue
		}
		amount, ok := amounts[o.OrderID]
		if !ok {
			continue
		}

		k := key{o.SellerSKU, o.ProductName, o.Variation}
		g, exists := groups[k]
		if !exists {
			g = &group{}
			groups[k] = g
		}
		g.qty += o.Quantity
		// Every matched order row carries the order's settlement amount,
		// matching the upstream join semantics.
		g.revenue += amount

		matchedOrders[o.OrderID] = amount
	}

	if len(groups) == 0 {
		return nil, Totals{}, fmt.Errorf("no orders matched any settlement")
	}

	rows := make([]SummaryRow, 0, len(groups))
	for k, g := range groups {
		unit := costs.Get(k.product)
		totalCost := float64(g.qty) * unit
		profit := g.revenue - totalCost
		rows = append(rows, SummaryRow{
			SellerSKU:   k.sku,
			ProductName: k.product,
			Variation:   k.variation,
			TotalQty:    g.qty,
			Revenue:     g.revenue,
			CostPerUnit: unit,
			TotalCost:   totalCost,
			Profit:      profit,
			Share60:     profit * 0.6,
			Share40:     profit * 0.4,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SellerSKU != rows[j].SellerSKU {
			return rows[i].SellerSKU < rows[j].SellerSKU
		}
		return rows[i].Variation < rows[j].Variation
	})

	totals := Totals{Orders: len(matchedOrders)}
	for _, amount := range matchedOrders {
		totals.TotalRevenue += amount
	}
	for _, r := range rows {
		totals.TotalCost += r.TotalCost
	}
	totals.TotalProfit = totals.TotalRevenue - totals.TotalCost
	totals.Share60 = totals.TotalProfit * 0.6
	totals.Share40 = totals.TotalProfit * 0.4

	return rows, totals, nil
}
