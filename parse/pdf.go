package parse

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// loadPDF extracts one section per page with a "Page N" label.
func loadPDF(path string) ([]Section, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sections := make([]Section, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		sections = append(sections, Section{Label: fmt.Sprintf("Page %d", i), Text: text})
	}
	return sections, nil
}
