// Package importer reads batch analysis jobs from CSV and Excel files.
// Spreadsheets exported from CRMs arrive with wildly different layouts,
// so the reader sniffs the delimiter, matches headers case-insensitively
// against a set of aliases, and falls back to positional columns when no
// header row is present.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/reusecanada/roofline/internal/model"
	"github.com/xuri/excelize/v2"
)

// Job is one property queued for analysis. Either Address or the
// coordinate pair must be set; HasCoords reports which.
type Job struct {
	Name      string
	Address   string
	Lat       float64
	Lng       float64
	HasCoords bool
	Shingle   model.ShingleType
}

// ImportResult collects the jobs plus any per-row errors and warnings,
// so one bad line never aborts a whole batch file.
type ImportResult struct {
	Jobs     []Job
	Errors   []string
	Warnings []string
}

// ColumnMapping holds the column index for each job field, -1 when the
// file does not carry that column.
type ColumnMapping struct {
	Name    int
	Address int
	Lat     int
	Lng     int
	Shingle int
}

// slot returns the mapping field owning the given role.
func (m *ColumnMapping) slot(role string) *int {
	switch role {
	case "name":
		return &m.Name
	case "address":
		return &m.Address
	case "lat":
		return &m.Lat
	case "lng":
		return &m.Lng
	case "shingle":
		return &m.Shingle
	}
	return nil
}

// headerAliases lists the accepted spellings for each column role, all
// lowercase. CRM exports disagree on nearly every one of these.
var headerAliases = map[string][]string{
	"name":    {"name", "label", "job", "job name", "property", "site name", "customer"},
	"address": {"address", "addr", "site", "location", "property address", "street address"},
	"lat":     {"lat", "latitude"},
	"lng":     {"lng", "lon", "long", "longitude"},
	"shingle": {"shingle", "shingle type", "type", "material", "product"},
}

// aliasToRole is the flattened lookup built from headerAliases.
var aliasToRole = func() map[string]string {
	idx := make(map[string]string)
	for role, names := range headerAliases {
		for _, n := range names {
			idx[n] = role
		}
	}
	return idx
}()

// DetectCSVDelimiter sniffs which of comma, semicolon, tab, or pipe
// separates the data. Candidates are ranked by how many rows parse to a
// consistent multi-column width; ties fall to the wider layout.
func DetectCSVDelimiter(data []byte) rune {
	best := ','
	bestRows, bestWidth := 0, 0
	for _, delim := range []rune{',', ';', '\t', '|'} {
		rows, err := readCSV(bytes.NewReader(data), delim)
		if err != nil || len(rows) == 0 {
			continue
		}
		width := len(rows[0])
		if width < 2 {
			continue
		}
		consistent := 0
		for _, row := range rows {
			if len(row) == width {
				consistent++
			}
		}
		if consistent > bestRows || (consistent == bestRows && width > bestWidth) {
			best, bestRows, bestWidth = delim, consistent, width
		}
	}
	return best
}

// DetectColumns matches a header row against the alias table. When no
// cell matches any alias the row is treated as data and the positional
// layout (Address, Lat, Lng, Shingle, Name) is returned with false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Name: -1, Address: -1, Lat: -1, Lng: -1, Shingle: -1}
	matched := false
	for i, cell := range row {
		role, ok := aliasToRole[strings.ToLower(strings.TrimSpace(cell))]
		if !ok {
			continue
		}
		matched = true
		if p := mapping.slot(role); p != nil && *p == -1 {
			*p = i
		}
	}
	if !matched {
		return ColumnMapping{Address: 0, Lat: 1, Lng: 2, Shingle: 3, Name: 4}, false
	}
	return mapping, true
}

// field returns the trimmed cell at idx, or "" when the row is short or
// the column is unmapped.
func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func numeric(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

// jobFromRow builds a Job from one data row. A usable row carries an
// address, a full coordinate pair, or both; a bad shingle value only
// warns and falls back to architectural.
func jobFromRow(row []string, m ColumnMapping, seq int) (Job, string, error) {
	job := Job{
		Name:    field(row, m.Name),
		Address: field(row, m.Address),
		Shingle: model.ShingleArchitectural,
	}
	if job.Name == "" {
		job.Name = fmt.Sprintf("Job %d", seq)
	}

	latRaw, lngRaw := field(row, m.Lat), field(row, m.Lng)
	switch {
	case latRaw == "" && lngRaw == "":
		// address-only row
	case latRaw == "" || lngRaw == "":
		return Job{}, "", fmt.Errorf("latitude and longitude must both be present")
	default:
		lat, err := strconv.ParseFloat(latRaw, 64)
		if err != nil {
			return Job{}, "", fmt.Errorf("invalid latitude %q", latRaw)
		}
		lng, err := strconv.ParseFloat(lngRaw, 64)
		if err != nil {
			return Job{}, "", fmt.Errorf("invalid longitude %q", lngRaw)
		}
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			return Job{}, "", fmt.Errorf("coordinates out of range (%s, %s)", latRaw, lngRaw)
		}
		job.Lat, job.Lng, job.HasCoords = lat, lng, true
	}

	if job.Address == "" && !job.HasCoords {
		return Job{}, "", fmt.Errorf("needs an address or a coordinate pair")
	}

	var warn string
	if raw := field(row, m.Shingle); raw != "" {
		st, err := model.ParseShingleType(raw)
		if err != nil {
			warn = fmt.Sprintf("Unknown shingle type %q, defaulting to architectural", raw)
		} else {
			job.Shingle = st
		}
	}
	return job, warn, nil
}

func readCSV(r io.Reader, delim rune) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr.ReadAll()
}

var delimiterNames = map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}

// ImportCSV reads batch jobs from a CSV file, sniffing the delimiter
// first. Non-comma delimiters are reported as a warning so the operator
// can spot a mis-exported file.
func ImportCSV(path string) ImportResult {
	var res ImportResult

	data, err := os.ReadFile(path)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return res
	}
	if len(bytes.TrimSpace(data)) == 0 {
		res.Errors = append(res.Errors, "File is empty")
		return res
	}

	delim := DetectCSVDelimiter(data)
	if name, ok := delimiterNames[delim]; ok {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Detected %s delimiter", name))
	}

	rows, err := readCSV(bytes.NewReader(data), delim)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return res
	}
	if len(rows) == 0 {
		res.Errors = append(res.Errors, "File is empty")
		return res
	}
	return collect(rows, "Line", res)
}

// ImportCSVFromReader reads batch jobs from a CSV stream with a known
// delimiter.
func ImportCSVFromReader(r io.Reader, delim rune) ImportResult {
	var res ImportResult

	rows, err := readCSV(r, delim)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return res
	}
	if len(rows) == 0 {
		res.Errors = append(res.Errors, "File is empty")
		return res
	}
	return collect(rows, "Line", res)
}

// ImportExcel reads batch jobs from the first sheet of an .xlsx file.
func ImportExcel(path string) ImportResult {
	var res ImportResult

	f, err := excelize.OpenFile(path)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return res
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		res.Errors = append(res.Errors, "Excel file has no sheets")
		return res
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return res
	}
	if len(rows) == 0 {
		res.Errors = append(res.Errors, "Sheet is empty")
		return res
	}
	return collect(rows, "Row", res)
}

// collect maps the header, then walks the data rows, accumulating jobs
// and per-row problems onto res.
func collect(rows [][]string, label string, res ImportResult) ImportResult {
	mapping, recognized := DetectColumns(rows[0])
	start := 0
	switch {
	case recognized:
		start = 1
		res.Warnings = append(res.Warnings, "Detected header row, skipping")
		if mapping.Address == -1 && (mapping.Lat == -1 || mapping.Lng == -1) {
			res.Errors = append(res.Errors,
				"Required columns not found in header: Address or Latitude/Longitude")
			return res
		}
	case len(rows[0]) >= 3 && !numeric(rows[0][1]):
		// Positional data carries a numeric coordinate in the second
		// column; anything else there marks an unrecognized label row.
		start = 1
		res.Warnings = append(res.Warnings, "Detected header row, skipping")
	}

	for i := start; i < len(rows); i++ {
		if blankRow(rows[i]) {
			continue
		}
		job, warn, err := jobFromRow(rows[i], mapping, len(res.Jobs)+1)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s %d: %v", label, i+1, err))
			continue
		}
		if warn != "" {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s %d: %s", label, i+1, warn))
		}
		res.Jobs = append(res.Jobs, job)
	}
	return res
}
