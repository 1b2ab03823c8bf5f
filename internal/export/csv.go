package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/merchops/pricedesk/internal/domain"
)

// Row is one exportable product line. Aliases carries the target
// platform's comma-separated SKU aliases when exporting for a platform.
type Row struct {
	SKU           string
	Name          string
	Price         float64
	Stock         int
	Velocity      float64
	RunwayDays    float64
	Status        domain.Status
	CostPrice     float64
	ReturnRatePct float64
	Aliases       string
}

var header = []string{"sku", "name", "price", "stock", "velocity", "runway_days", "status", "cost_price", "return_rate_pct"}

// WriteMaster writes one CSV row per master SKU.
func WriteMaster(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(record(r.SKU, r)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WritePlatform writes one CSV row per platform alias, duplicating the
// master data for each comma-separated alias. Rows without any alias for
// the platform are skipped: the platform cannot address them.
func WritePlatform(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	platformHeader := append([]string{"alias"}, header...)
	if err := cw.Write(platformHeader); err != nil {
		return err
	}

	for _, r := range rows {
		for _, alias := range strings.Split(r.Aliases, ",") {
			alias = strings.TrimSpace(alias)
			if alias == "" {
				continue
			}
			rec := append([]string{alias}, record(r.SKU, r)...)
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func record(sku string, r Row) []string {
	return []string{
		sku,
		r.Name,
		formatFloat(r.Price),
		strconv.Itoa(r.Stock),
		formatFloat(r.Velocity),
		formatFloat(r.RunwayDays),
		string(r.Status),
		formatFloat(r.CostPrice),
		formatFloat(r.ReturnRatePct),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
