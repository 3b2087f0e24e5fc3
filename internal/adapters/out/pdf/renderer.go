// Package pdf renders dockets as single-page PDF documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/go-pdf/fpdf"
)

var _ ports.DocumentRenderer = (*DocketRenderer)(nil)

// Fixed metadata so identical fields render identical bytes.
var fixedCreationDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// DocketRenderer lays the docket fields out as a two-column table under a title.
type DocketRenderer struct {
	title string
}

func NewDocketRenderer(title string) *DocketRenderer {
	if title == "" {
		title = "Delivery Docket"
	}
	return &DocketRenderer{title: title}
}

func (r *DocketRenderer) Render(ctx context.Context, fields []order.Field) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := fpdf.New("P", "mm", "A5", "")
	doc.SetCreationDate(fixedCreationDate)
	doc.SetModificationDate(fixedCreationDate)
	doc.SetCatalogSort(true)
	doc.SetTitle(r.title, true)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, r.title, "", 1, "C", false, 0, "")
	doc.Ln(2)

	tr := doc.UnicodeTranslatorFromDescriptor("")
	for _, f := range fields {
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(55, 7, tr(f.Label), "B", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(0, 7, tr(f.Value), "B", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render docket: %w", err)
	}

	return buf.Bytes(), nil
}
