package parse

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Word and PowerPoint files are ZIP containers of XML parts. The loaders
// below pull the visible text runs (<w:t> for documents, <a:t> for slides)
// out of the relevant parts without modelling the full OOXML schema.

// loadDocx extracts the main document part as a single section, one line per
// paragraph.
func loadDocx(path string) ([]Section, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != "word/document.xml" {
			continue
		}
		text, err := extractRuns(f, "t", "p")
		if err != nil {
			return nil, err
		}
		return []Section{{Text: text}}, nil
	}
	return nil, fmt.Errorf("no document part found")
}

// loadPptx extracts one section per slide, labelled "Slide N" in slide order.
func loadPptx(path string) ([]Section, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	type slide struct {
		num  int
		file *zip.File
	}
	var slides []slide
	for _, f := range r.File {
		num, ok := slideNumber(f.Name)
		if !ok {
			continue
		}
		slides = append(slides, slide{num: num, file: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	sections := make([]Section, 0, len(slides))
	for _, s := range slides {
		text, err := extractRuns(s.file, "t", "p")
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", s.num, err)
		}
		sections = append(sections, Section{Label: fmt.Sprintf("Slide %d", s.num), Text: text})
	}
	return sections, nil
}

// slideNumber parses "ppt/slides/slideN.xml" part names.
func slideNumber(name string) (int, bool) {
	if !strings.HasPrefix(name, "ppt/slides/slide") || !strings.HasSuffix(name, ".xml") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "ppt/slides/slide"), ".xml"))
	if err != nil {
		return 0, false
	}
	return n, true
}

// extractRuns streams one XML part collecting character data inside textElem
// elements and emitting a newline at each closing paraElem.
func extractRuns(f *zip.File, textElem, paraElem string) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var (
		b      strings.Builder
		inText bool
	)
	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == textElem {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case textElem:
				inText = false
			case paraElem:
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
