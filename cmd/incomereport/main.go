// Command incomereport merges a completed-order export with a settlement
// export, applies the product cost ledger, and writes the profit summary
// workbook with its 60/40 split.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"streampulse/internal/config"
	"streampulse/internal/exporter"
	"streampulse/internal/income"
	"streampulse/internal/infrastructure"
)

func main() {
	ordersPath := flag.String("orders", "", "orders .xlsx export (required unless managing costs)")
	settlementsPath := flag.String("settlements", "", "settlement .xlsx export (required unless managing costs)")
	costsPath := flag.String("costs", "", "product cost ledger JSON (defaults to the configured path)")
	outPath := flag.String("out", "income_summary.xlsx", "output workbook path")
	setProduct := flag.String("set-product", "", "product name to set a unit cost for")
	setCost := flag.Float64("set-cost", 0, "unit cost to record with -set-product")
	listCosts := flag.Bool("list-costs", false, "print the cost ledger and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := infrastructure.MustInitializeLogger(cfg.Logging)

	ledgerPath := cfg.Paths.CostFile
	if *costsPath != "" {
		ledgerPath = *costsPath
	}
	costs := income.NewCostStore(ledgerPath)

	switch {
	case *setProduct != "":
		if err := costs.Set(*setProduct, *setCost); err != nil {
			logger.Error("failed to set cost", "product", *setProduct, "error", err)
			os.Exit(1)
		}
		logger.Info("cost recorded", "product", *setProduct, "cost", *setCost)
		return

	case *listCosts:
		for _, product := range costs.Products() {
			fmt.Printf("%s\t%.2f\n", product, costs.Get(product))
		}
		return
	}

	if *ordersPath == "" || *settlementsPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := buildReport(logger, costs, *ordersPath, *settlementsPath, *outPath); err != nil {
		logger.Error("income report failed", "error", err)
		os.Exit(1)
	}
}

func buildReport(logger *slog.Logger, costs *income.CostStore, ordersPath, settlementsPath, outPath string) error {
	ordersFile, err := os.Open(ordersPath)
	if err != nil {
		return fmt.Errorf("open orders: %w", err)
	}
	defer ordersFile.Close()

	orders, err := income.LoadOrders(ordersFile)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}

	settlementsFile, err := os.Open(settlementsPath)
	if err != nil {
		return fmt.Errorf("open settlements: %w", err)
	}
	defer settlementsFile.Close()

	settlements, err := income.LoadSettlements(settlementsFile)
	if err != nil {
		return fmt.Errorf("load settlements: %w", err)
	}

	rows, totals, err := income.Merge(orders, settlements, costs)
	if err != nil {
		return fmt.Errorf("merge: %w", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	if err := exporter.WriteIncomeWorkbook(out, rows, totals); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	logger.Info("income report written",
		"orders", len(orders),
		"settlements", len(settlements),
		"products", len(rows),
		"profit", totals.TotalProfit,
		"out", outPath)
	return nil
}
