// Package parse extracts plain text from uploaded documents. A
// DocumentParser dispatches on the file extension to a registered loader and
// interleaves page/slide boundary markers into the extracted text so
// downstream chunks keep their positional hints.
//
// Supported out of the box: .txt, .md, .csv, .pdf, .docx, .pptx. Additional
// formats can be registered per parser instance.
package parse

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hupe1980/ragmesh/core"
)

// Parser extracts the plain text of the document at path.
type Parser interface {
	Parse(path string) (string, error)
}

// Loader extracts text for a single format. Implementations return the
// document's sections (pages, slides, rows) in order; the parser joins them
// with boundary markers.
type Loader func(path string) ([]Section, error)

// Section is one extracted unit of a document with an optional label
// ("Page 3", "Slide 1") rendered as a boundary marker.
type Section struct {
	Label string
	Text  string
}

// sectionSeparator visually divides sections in the combined text.
const sectionSeparator = "\n\n" + "----------------------------------------" + "\n\n"

// DocumentParser routes paths to per-extension loaders.
type DocumentParser struct {
	loaders map[string]Loader
}

// NewDocumentParser constructs a parser with all built-in loaders registered.
func NewDocumentParser() *DocumentParser {
	p := &DocumentParser{loaders: make(map[string]Loader)}
	p.Register(".txt", loadPlainText)
	p.Register(".md", loadPlainText)
	p.Register(".csv", loadCSV)
	p.Register(".pdf", loadPDF)
	p.Register(".docx", loadDocx)
	p.Register(".pptx", loadPptx)
	return p
}

// Register installs (or replaces) the loader for an extension. The extension
// must include the leading dot; matching is case insensitive.
func (p *DocumentParser) Register(ext string, loader Loader) {
	p.loaders[strings.ToLower(ext)] = loader
}

// Parse implements Parser. Unknown extensions fail with
// core.ErrUnsupportedFormat; loader failures wrap core.ErrParseFailure.
func (p *DocumentParser) Parse(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	loader, ok := p.loaders[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, ext)
	}

	sections, err := loader(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", core.ErrParseFailure, path, err)
	}

	var b strings.Builder
	for i, sec := range sections {
		if i > 0 {
			b.WriteString(sectionSeparator)
		}
		if sec.Label != "" {
			b.WriteString("\n--- " + sec.Label + " ---\n")
		}
		b.WriteString(sec.Text)
	}
	return b.String(), nil
}
