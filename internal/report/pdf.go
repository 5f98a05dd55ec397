package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/webrecon/domainscan/internal/model"
)

// pdfLinesPerPage is how many report lines fit on one A4 page at the
// configured font size.
const pdfLinesPerPage = 54

// disableConfigDir makes pdfcpu run without touching the user's config
// directory. Applied once per process.
var disableConfigDir sync.Once

// PDFWriter outputs reports as PDF documents, the default report artifact.
//
// Design decision: We render the text report line by line through pdfcpu's
// JSON page description rather than drawing primitives directly. This keeps
// the PDF and text formats identical in content and pushes pagination and
// font handling down to the library.
type PDFWriter struct {
	baseWriter
}

// NewPDFWriter creates a PDFWriter that outputs to the given writer.
func NewPDFWriter(output io.Writer) *PDFWriter {
	return &PDFWriter{
		baseWriter: newBaseWriter(output),
	}
}

// pdfFont is the font block of a page description entry.
type pdfFont struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// pdfText is one positioned text box on a page.
type pdfText struct {
	Value  string  `json:"value"`
	Anchor string  `json:"anchor"`
	Dx     float64 `json:"dx"`
	Dy     float64 `json:"dy"`
	Font   pdfFont `json:"font"`
}

// pdfContent is the content block of one page.
type pdfContent struct {
	Text []pdfText `json:"text"`
}

// pdfPage is one page of the generated document.
type pdfPage struct {
	Content pdfContent `json:"content"`
}

// pdfDocument is the top level pdfcpu create description.
type pdfDocument struct {
	Paper string             `json:"paper"`
	Pages map[string]pdfPage `json:"pages"`
}

// Write renders the report as a PDF document.
func (w *PDFWriter) Write(report *model.DomainReport) (int, error) {
	disableConfigDir.Do(api.DisableConfigDir)

	lines := NewTextWriter(io.Discard, WithVerbose(true)).RenderLines(report)

	desc, err := json.Marshal(buildPDFDocument(lines))
	if err != nil {
		return 0, fmt.Errorf("failed to build pdf description: %w", err)
	}

	var buf bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(desc), &buf, nil); err != nil {
		return 0, fmt.Errorf("failed to generate pdf: %w", err)
	}

	return w.output.Write(buf.Bytes())
}

// buildPDFDocument paginates the report lines into a page description.
func buildPDFDocument(lines []string) pdfDocument {
	doc := pdfDocument{
		Paper: "A4",
		Pages: map[string]pdfPage{},
	}

	pageNum := 1
	for start := 0; start < len(lines) || pageNum == 1; start += pdfLinesPerPage {
		end := start + pdfLinesPerPage
		if end > len(lines) {
			end = len(lines)
		}

		var body bytes.Buffer
		for _, line := range lines[start:end] {
			body.WriteString(line)
			body.WriteString("\n")
		}

		doc.Pages[strconv.Itoa(pageNum)] = pdfPage{
			Content: pdfContent{
				Text: []pdfText{
					{
						Value:  body.String(),
						Anchor: "tl",
						Dx:     40,
						Dy:     -40,
						Font:   pdfFont{Name: "Courier", Size: 9},
					},
				},
			},
		}
		pageNum++
	}

	return doc
}
