package dataprocessing

import (
	"fmt"
	"strings"
)

// Canonical column names used throughout the engine. The loader translates
// the platform's raw Indonesian headers into these before any processing.
const (
	ColCreatorExternalID = "creator_external_id"
	ColCreator           = "creator"
	ColNickname          = "nickname"
	ColStartTime         = "start_time"
	ColDuration          = "duration"
	ColGMVGross          = "gmv_gross"
	ColProductsAdded     = "products_added"
	ColProductsSold      = "products_sold"
	ColOrdersCreated     = "orders_created"
	ColOrdersLive        = "orders_live"
	ColProductsSoldLive  = "products_sold_live"
	ColBuyers            = "buyers"
	ColAvgPrice          = "avg_price"
	ColAdConversionRate  = "ad_conversion_rate"
	ColGMVLive           = "gmv_live"
	ColViewers           = "viewers"
	ColViews             = "views"
	ColAvgWatchTime      = "avg_watch_time"
	ColComments          = "comments"
	ColShares            = "shares"
	ColLikes             = "likes"
	ColNewFollowers      = "new_followers"
	ColProductViews      = "product_views"
	ColProductClicks     = "product_clicks"
	ColCTR               = "ctr"
)

// columnMapping translates the raw export headers to canonical names.
// Headers are matched after whitespace trimming; anything not in this table
// is ignored.
var columnMapping = map[string]string{
	"ID Kreator":      ColCreatorExternalID,
	"Kreator":         ColCreator,
	"Nama panggilan":  ColNickname,
	"Waktu Live":      ColStartTime,
	"Durasi":          ColDuration,
	"Nilai barang dagangan bruto (LIVE) (Rp)": ColGMVGross,
	"Produk yang ditambahkan":                 ColProductsAdded,
	"Produk Terjual":                          ColProductsSold,
	"Pesanan SKU yang dibuat":                 ColOrdersCreated,
	"Pesanan SKU (LIVE)":                      ColOrdersLive,
	"Produk yang terjual dari LIVE":           ColProductsSoldLive,
	"Pembeli":                                 ColBuyers,
	"Harga Rata-Rata (Rp)":                    ColAvgPrice,
	"Rasio pesanan per klik (LIVE)":           ColAdConversionRate,
	"GMV yang didapat dari LIVE (Rp)":         ColGMVLive,
	"Penonton":                                ColViewers,
	"Dilihat":                                 ColViews,
	"Durasi menonton rata-rata (Siaran LIVE)": ColAvgWatchTime,
	"Komentar":                    ColComments,
	"Live Dibagikan":              ColShares,
	"Suka pada LIVE":              ColLikes,
	"Pengikut baru (Video kreator)": ColNewFollowers,
	"Produk Dilihat":              ColProductViews,
	"Klik Produk":                 ColProductClicks,
	"CTR":                         ColCTR,
}

// requiredColumns must all be present after mapping or the batch is rejected.
var requiredColumns = []string{ColCreator, ColGMVLive, ColViewers, ColOrdersLive}

// RawRow is one session record as loaded: canonical column name to the raw,
// still-untyped cell text. Produced by the loader and consumed exactly once.
type RawRow map[string]string

// SchemaError reports that a batch is missing mandatory columns after header
// mapping. It is fatal for the batch, never for the process: the caller gets
// the full list of missing canonical names and no sessions are produced.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// mapHeaders translates a raw header row into canonical names, returning the
// column index for each recognized canonical name.
func mapHeaders(header []string) map[string]int {
	indexes := make(map[string]int, len(header))
	for i, raw := range header {
		if canonical, ok := columnMapping[strings.TrimSpace(raw)]; ok {
			indexes[canonical] = i
		}
	}
	return indexes
}

// validateRequired checks the mandatory subset and returns a SchemaError
// naming every absent column.
func validateRequired(indexes map[string]int) error {
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := indexes[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}
