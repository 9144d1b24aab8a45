// File: internal/services/ocr/interface.go
package ocr

// Extractor pulls text out of an uploaded document. The extension decides
// the path: ".pdf" rasterizes every page and concatenates the per-page text
// in page order with no separator; anything else is treated as a single
// raster image. No language hints, no confidence scores, no size limits.
type Extractor interface {
	Extract(ext string, data []byte) (string, error)
}
