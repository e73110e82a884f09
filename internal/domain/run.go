package domain

import "time"

// EstimateRun records one processed outline document.
type EstimateRun struct {
	ID           string
	SourcePath   string
	MarkdownPath string
	PDFPath      string // empty when nothing was rendered
	TotalHours   *float64
	NodeCount    int
	LeafCount    int
	Rendered     bool
	CreatedAt    time.Time
}
