// Package csv turns the raw delivery CSV into an in-memory dataframe without
// applying any value coercion: every column is loaded as a string series so
// that the cleaning stages decide, per column, what the bytes mean. Type
// detection at load time is deliberately disabled; the raw table must survive
// untouched next to the repaired columns.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Options configures the CSV parser behavior. All fields are optional;
// sensible defaults are applied when a field is zero.
type Options struct {
	// HasHeader indicates whether the first row contains column headers.
	HasHeader bool

	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each field value.
	TrimSpace bool

	// ExpectedFields, when > 0, enforces a fixed field count per record.
	// A row with a different width makes the whole load fail: the input is
	// one known dataset and a malformed file has no partial-load recovery.
	ExpectedFields int

	// HeaderMap maps source header names to canonical keys. Only applies
	// when HasHeader is true.
	HeaderMap map[string]string
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// Parse consumes CSV records from r and returns a dataframe whose columns are
// all string-typed, preserving the source column order. Any read error is
// fatal; the pipeline's repair policy applies to cell values, never to the
// shape of the file.
func (p *Parser) Parse(r io.Reader) (dataframe.DataFrame, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	if p.opt.ExpectedFields > 0 {
		cr.FieldsPerRecord = p.opt.ExpectedFields
	}

	var headers []string
	line := 1
	if p.opt.HasHeader {
		h, err := cr.Read()
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("read csv header: %w", err)
		}
		headers = normalizeHeaders(h, p.opt)
		line = 2
	}

	columns := make([][]string, len(headers))
	for ; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("read csv row %d: %w", line, err)
		}
		if headers == nil {
			headers = make([]string, len(row))
			for i := range headers {
				headers[i] = fmt.Sprintf("col_%d", i)
			}
			columns = make([][]string, len(headers))
		}
		if len(row) != len(headers) {
			return dataframe.DataFrame{}, fmt.Errorf(
				"csv row %d: expected %d fields, got %d", line, len(headers), len(row))
		}
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			columns[i] = append(columns[i], val)
		}
	}

	if len(headers) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("csv input is empty")
	}

	cols := make([]series.Series, len(headers))
	for i, name := range headers {
		vals := columns[i]
		if vals == nil {
			vals = []string{}
		}
		cols[i] = series.New(vals, series.String, name)
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("build dataframe: %w", df.Err)
	}
	return df, nil
}

// normalizeHeaders produces canonical header keys: trim, strip a UTF-8 BOM
// from the first cell, fold stray diacritics, then apply HeaderMap. Case and
// punctuation are preserved because the dataset contract addresses columns by
// their exact raw names (including "Time_taken (min)").
func normalizeHeaders(h []string, opt Options) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		c = foldHeader(c)
		if opt.HeaderMap != nil {
			if m, ok := opt.HeaderMap[c]; ok {
				res[i] = m
				continue
			}
		}
		res[i] = c
	}
	return res
}

// foldHeader strips accents from header text (NFD → remove Mn → NFC) so that
// re-exported files with mangled encodings still match the contract.
func foldHeader(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
