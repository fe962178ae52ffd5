package parse

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// loadPlainText reads the whole file as a single section. Used for .txt and
// .md; markdown markup is left intact, it chunks and embeds fine as-is.
func loadPlainText(path string) ([]Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return []Section{{Text: string(data)}}, nil
}

// loadCSV renders each data row as "header: value" lines, one section per
// row, so tabular cells stay attached to their column names after chunking.
func loadCSV(path string) ([]Section, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	sections := make([]Section, 0, len(records)-1)
	for _, row := range records[1:] {
		var b strings.Builder
		for i, field := range row {
			name := fmt.Sprintf("column %d", i+1)
			if i < len(header) {
				name = header[i]
			}
			b.WriteString(name + ": " + field + "\n")
		}
		sections = append(sections, Section{Text: b.String()})
	}
	if len(sections) == 0 {
		// Header-only file: keep the header itself so the document is not empty.
		sections = append(sections, Section{Text: strings.Join(header, ", ")})
	}
	return sections, nil
}
