// Package loader materializes external inputs: the tabular statement file
// (CSV or XLSX) and the YAML session files for allocations, policy choices
// and manual mapping overrides.
package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/ifrs-tools/restate/internal/model"
	"github.com/ifrs-tools/restate/internal/normalize"
)

// MaxFileSizeMB caps statement file size. Source files are uncontrolled
// uploads; anything bigger than this is not a line-item statement.
const MaxFileSizeMB = 20

const maxFileBytes = MaxFileSizeMB * 1024 * 1024

// ReadStatement reads a statement file into a Statement. The first column
// is the line description; every remaining column is one reporting period
// whose header becomes the period key. At least one period column is
// required.
func ReadStatement(path string) (model.Statement, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.Statement{}, fmt.Errorf("stat statement: %w", err)
	}
	if info.Size() > maxFileBytes {
		return model.Statement{}, fmt.Errorf("statement file too large: %d bytes (max %d MB)", info.Size(), MaxFileSizeMB)
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		return model.Statement{}, fmt.Errorf("unsupported file type %q (use CSV or XLSX)", filepath.Ext(path))
	}
	if err != nil {
		return model.Statement{}, err
	}

	st, err := buildStatement(rows)
	if err != nil {
		return model.Statement{}, fmt.Errorf("%s: %w", path, err)
	}
	st.File = path
	return st, nil
}

// readCSV reads a CSV file, tolerating ragged rows. ERP exports are often
// not UTF-8; invalid byte sequences trigger a windows-1252 decode pass.
func readCSV(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if !utf8.Valid(data) {
		decoded, decErr := charmap.Windows1252.NewDecoder().Bytes(data)
		if decErr == nil {
			data = decoded
		}
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rows, nil
}

func readXLSX(path string) (rows [][]string, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close xlsx: %w", closeErr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}
	rows, err = f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	return rows, nil
}

// periodColumn ties a period header to the column it came from. Blank
// header cells are spacer columns; skipping them must not shift which
// column a period's amounts are read from.
type periodColumn struct {
	index int
	name  string
}

// buildStatement turns raw table rows into a Statement. Bad amount cells
// degrade to zero through the normalizer; a missing header or a table with
// no period columns fails fast.
func buildStatement(rows [][]string) (model.Statement, error) {
	if len(rows) == 0 {
		return model.Statement{}, fmt.Errorf("empty table")
	}

	header := rows[0]
	if len(header) < 2 {
		return model.Statement{}, fmt.Errorf("need a description column plus at least one period column, got %d columns", len(header))
	}
	var columns []periodColumn
	for i, cell := range header[1:] {
		p := strings.TrimSpace(cell)
		if p == "" {
			continue
		}
		columns = append(columns, periodColumn{index: i + 1, name: p})
	}
	if len(columns) == 0 {
		return model.Statement{}, fmt.Errorf("no period columns in header")
	}

	periods := make([]string, len(columns))
	for i, c := range columns {
		periods[i] = c.name
	}

	st := model.Statement{Periods: periods}
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		label := strings.TrimSpace(row[0])
		if label == "" {
			continue
		}
		amounts := make(map[string]decimal.Decimal, len(columns))
		for _, c := range columns {
			cell := ""
			if c.index < len(row) {
				cell = row[c.index]
			}
			amounts[c.name] = normalize.CleanAmount(cell)
		}
		st.Lines = append(st.Lines, model.SourceLine{Label: label, Amounts: amounts})
	}
	return st, nil
}
