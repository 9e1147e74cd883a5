package vocab

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for import files with an unknown extension.
var ErrUnsupportedFormat = errors.New("vocab: unsupported import format")

// Format is an import file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFromPath picks the import format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// ImportResult holds the words parsed from an import file.
type ImportResult struct {
	Words   []Word
	Skipped []string // one reason per rejected row
}

// ParseFile reads and parses an import file, choosing the format by extension.
func ParseFile(path string) (*ImportResult, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()
	return Parse(f, format)
}

// Parse reads words in the given format.
//
// JSON input must be an array of objects with non-empty "id", "en" and "zh"
// fields and is rejected as a whole if any element is invalid. CSV and XLSX
// input must have a header row naming the columns; rows missing a required
// value are skipped and reported. Duplicate IDs keep their first occurrence.
func Parse(r io.Reader, format Format) (*ImportResult, error) {
	switch format {
	case FormatJSON:
		return parseJSON(r)
	case FormatCSV:
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true
		reader.TrimLeadingSpace = true
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("read CSV: %w", err)
		}
		return wordsFromRows(rows)
	case FormatXLSX:
		return parseXLSX(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

var importSchemaDef = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":       map[string]any{"type": "string", "pattern": `\S`},
			"en":       map[string]any{"type": "string", "pattern": `\S`},
			"zh":       map[string]any{"type": "string", "pattern": `\S`},
			"phonetic": map[string]any{"type": "string"},
			"type":     map[string]any{"type": "string"},
			"example":  map[string]any{"type": "string"},
		},
		"required": []any{"id", "en", "zh"},
	},
}

var (
	importSchemaOnce sync.Once
	importSchema     *jsonschema.Schema
	importSchemaErr  error
)

func compiledImportSchema() (*jsonschema.Schema, error) {
	importSchemaOnce.Do(func() {
		const url = "schema://vocab-import.json"
		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, importSchemaDef); err != nil {
			importSchemaErr = fmt.Errorf("add import schema: %w", err)
			return
		}
		importSchema, importSchemaErr = c.Compile(url)
	})
	return importSchema, importSchemaErr
}

func parseJSON(r io.Reader) (*ImportResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read JSON: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := compiledImportSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid word list: %w", err)
	}

	var words []Word
	if err := json.Unmarshal(raw, &words); err != nil {
		return nil, fmt.Errorf("decode words: %w", err)
	}

	res := &ImportResult{}
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		w = trimWord(w)
		if seen[w.ID] {
			res.Skipped = append(res.Skipped, fmt.Sprintf("duplicate id %q", w.ID))
			continue
		}
		seen[w.ID] = true
		res.Words = append(res.Words, w)
	}
	return res, nil
}

func parseXLSX(r io.Reader) (*ImportResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read XLSX: %w", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("open XLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &ImportResult{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows from %q: %w", sheets[0], err)
	}
	return wordsFromRows(rows)
}

// column names accepted in the header row, mapped to Word fields.
var headerAliases = map[string]string{
	"id":          "id",
	"en":          "en",
	"word":        "en",
	"zh":          "zh",
	"meaning":     "zh",
	"translation": "zh",
	"phonetic":    "phonetic",
	"type":        "type",
	"pos":         "type",
	"example":     "example",
}

func wordsFromRows(rows [][]string) (*ImportResult, error) {
	res := &ImportResult{}
	if len(rows) == 0 {
		return res, nil
	}

	cols := make(map[string]int)
	for i, h := range rows[0] {
		if field, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			if _, dup := cols[field]; !dup {
				cols[field] = i
			}
		}
	}
	for _, required := range []string{"id", "en", "zh"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("header row is missing the %q column", required)
		}
	}

	cell := func(row []string, field string) string {
		i, ok := cols[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	seen := make(map[string]bool)
	for n, row := range rows[1:] {
		rowNum := n + 2
		w := Word{
			ID:           cell(row, "id"),
			Text:         cell(row, "en"),
			Meaning:      cell(row, "zh"),
			Phonetic:     cell(row, "phonetic"),
			PartOfSpeech: cell(row, "type"),
			Example:      cell(row, "example"),
		}
		if w.ID == "" && w.Text == "" && w.Meaning == "" {
			continue
		}
		switch {
		case w.ID == "":
			res.Skipped = append(res.Skipped, fmt.Sprintf("row %d: missing id", rowNum))
		case w.Text == "":
			res.Skipped = append(res.Skipped, fmt.Sprintf("row %d: missing en", rowNum))
		case w.Meaning == "":
			res.Skipped = append(res.Skipped, fmt.Sprintf("row %d: missing zh", rowNum))
		case seen[w.ID]:
			res.Skipped = append(res.Skipped, fmt.Sprintf("row %d: duplicate id %q", rowNum, w.ID))
		default:
			seen[w.ID] = true
			res.Words = append(res.Words, w)
		}
	}
	return res, nil
}

func trimWord(w Word) Word {
	w.ID = strings.TrimSpace(w.ID)
	w.Text = strings.TrimSpace(w.Text)
	w.Meaning = strings.TrimSpace(w.Meaning)
	w.Phonetic = strings.TrimSpace(w.Phonetic)
	w.PartOfSpeech = strings.TrimSpace(w.PartOfSpeech)
	w.Example = strings.TrimSpace(w.Example)
	return w
}
