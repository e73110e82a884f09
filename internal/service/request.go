package service

import (
	"path/filepath"
	"strings"
)

// withDefaults fills in output paths derived from the source.
func (r Request) withDefaults() Request {
	if r.MarkdownPath == "" {
		r.MarkdownPath = r.SourcePath
	}
	if r.Render && r.PDFPath == "" {
		r.PDFPath = DefaultPDFPath(r.SourcePath)
	}
	return r
}

// DefaultPDFPath swaps the source extension for .pdf.
func DefaultPDFPath(sourcePath string) string {
	return strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath)) + ".pdf"
}

// canonicalSource resolves path to the absolute form stored in history.
func canonicalSource(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
