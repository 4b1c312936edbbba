// Package export implements the Export Post-processor (C8): it wraps raw
// facade export bytes in the envelope format from spec.md §6.4/§4.8, and
// pulls page metadata out of PDF exports via pdfcpu.
package export

import (
	"bytes"
	"encoding/base64"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/geogebra-mcp/geogebra-mcp/internal/errs"
)

// ViewSettings captures the graphics-view state active at export time.
type ViewSettings struct {
	XMin, XMax, YMin, YMax float64
	ShowAxes               bool
	ShowGrid               bool
}

// Metadata accompanies every export envelope.
type Metadata struct {
	Scale       float64       `json:"scale,omitempty"`
	Transparent bool          `json:"transparent,omitempty"`
	DPI         int           `json:"dpi,omitempty"`
	Width       int           `json:"width,omitempty"`
	Height      int           `json:"height,omitempty"`
	ViewSettings *ViewSettings `json:"viewSettings,omitempty"`
	PageCount   int           `json:"pageCount,omitempty"`
}

// Envelope is the wire format every export tool returns.
type Envelope struct {
	Format   string   `json:"format"`
	Data     string   `json:"data"`
	Encoding string   `json:"encoding"`
	Metadata Metadata `json:"metadata"`
}

// WrapPNG builds a base64 PNG envelope.
func WrapPNG(raw []byte, meta Metadata) Envelope {
	return Envelope{
		Format:   "png",
		Data:     base64.StdEncoding.EncodeToString(raw),
		Encoding: "base64",
		Metadata: meta,
	}
}

// WrapSVG builds a utf8 SVG envelope.
func WrapSVG(raw []byte, meta Metadata) Envelope {
	return Envelope{
		Format:   "svg",
		Data:     string(raw),
		Encoding: "utf8",
		Metadata: meta,
	}
}

// WrapPDF builds a base64 PDF envelope, enriching meta with the page count
// read back via pdfcpu so callers don't have to re-parse the PDF themselves.
func WrapPDF(raw []byte, meta Metadata) (Envelope, error) {
	count, err := pdfPageCount(raw)
	if err != nil {
		return Envelope{}, errs.Newf(errs.EncodingError, "reading PDF page count: %v", err)
	}
	meta.PageCount = count
	return Envelope{
		Format:   "pdf",
		Data:     base64.StdEncoding.EncodeToString(raw),
		Encoding: "base64",
		Metadata: meta,
	}, nil
}

func pdfPageCount(raw []byte) (int, error) {
	return api.PageCount(bytes.NewReader(raw), nil)
}

// WrapAnimation builds a base64 envelope for an encoded GIF or MP4. format
// must be "gif" or "mp4".
func WrapAnimation(format string, raw []byte, meta Metadata) Envelope {
	return Envelope{
		Format:   format,
		Data:     base64.StdEncoding.EncodeToString(raw),
		Encoding: "base64",
		Metadata: meta,
	}
}
