package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/errs"
)

// ParseOptions controls how delimited text is read.
type ParseOptions struct {
	// Delimiter separates fields. Zero means comma.
	Delimiter rune
}

// Parse reads delimited text with a header row into a Dataset. Input with a
// UTF-8 or UTF-16 byte order mark is decoded accordingly. Anything that is not
// well-formed tabular text fails with errs.ErrDataFormat.
func Parse(r io.Reader, opts ParseOptions) (*Dataset, error) {
	const op = "parse"

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.E(errs.ErrDataFormat, op, err)
	}
	// UTF-16 is validated by its decoder, everything else must be UTF-8
	if !hasUTF16BOM(raw) && !utf8.Valid(raw) {
		return nil, errs.Errorf(errs.ErrDataFormat, op, "input is not valid UTF-8")
	}

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return nil, errs.E(errs.ErrDataFormat, op, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errs.Errorf(errs.ErrDataFormat, op, "input is empty")
	}
	if !isText(data) {
		return nil, errs.Errorf(errs.ErrDataFormat, op, "input is not text")
	}

	reader := csv.NewReader(bytes.NewReader(data))
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, errs.Errorf(errs.ErrDataFormat, op, "line %d: %v", parseErr.Line, parseErr.Err)
		}
		return nil, errs.E(errs.ErrDataFormat, op, err)
	}

	if len(records) == 0 {
		return nil, errs.Errorf(errs.ErrDataFormat, op, "no header row")
	}
	header, body := records[0], records[1:]

	names, err := parseHeader(header)
	if err != nil {
		return nil, errs.E(errs.ErrDataFormat, op, err)
	}

	for i, record := range body {
		for j, cell := range record {
			if strings.TrimSpace(cell) == "" {
				// header is line 1
				return nil, errs.Errorf(errs.ErrDataFormat, op, "line %d column %q: empty value", i+2, names[j])
			}
		}
	}

	schema := make(Schema, len(names))
	for j, name := range names {
		schema[j] = Column{Name: name, Kind: inferKind(body, j)}
	}

	rows := make([][]Value, len(body))
	for i, record := range body {
		row := make([]Value, len(record))
		for j, cell := range record {
			text := strings.TrimSpace(cell)
			row[j] = Value{Text: text}
			if schema[j].Kind == Numeric {
				row[j].Num, _ = parseNumber(text)
			}
		}
		rows[i] = row
	}

	return &Dataset{schema: schema, rows: rows}, nil
}

func hasUTF16BOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xFF, 0xFE}) || bytes.HasPrefix(data, []byte{0xFE, 0xFF})
}

// isText rejects control characters other than tab, carriage return and
// newline. Encoding errors are caught before decoding.
func isText(data []byte) bool {
	for _, r := range string(data) {
		if r < 0x20 && r != '\t' && r != '\r' && r != '\n' {
			return false
		}
	}
	return true
}

func parseHeader(header []string) ([]string, error) {
	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, raw := range header {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, fmt.Errorf("header column %d has no name", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		seen[name] = true
		names[i] = name
	}
	return names, nil
}

// inferKind treats a column as numeric when every cell is a finite number.
// A column with no rows is numeric.
func inferKind(records [][]string, col int) Kind {
	for _, record := range records {
		if _, ok := parseNumber(strings.TrimSpace(record[col])); !ok {
			return Categorical
		}
	}
	return Numeric
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
