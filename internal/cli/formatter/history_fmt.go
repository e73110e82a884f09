package formatter

import (
	"strconv"
	"time"

	"github.com/alexanderramin/estimate/internal/domain"
)

// FormatHistory renders recorded runs as a table. Paths are shown relative
// to base when possible.
func FormatHistory(runs []*domain.EstimateRun, format domain.NumberFormat, base string, now time.Time) string {
	if len(runs) == 0 {
		return Dim("No runs recorded yet.") + "\n"
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		pdf := Dim("--")
		if r.Rendered {
			pdf = RelPath(r.PDFPath, base)
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			RelPath(r.SourcePath, base),
			format.FormatDuration(r.TotalHours),
			strconv.Itoa(r.NodeCount),
			pdf,
			HumanTimestamp(r.CreatedAt, now),
		})
	}
	return RenderTable([]string{"ID", "SOURCE", "TOTAL", "ITEMS", "PDF", "WHEN"}, rows)
}
