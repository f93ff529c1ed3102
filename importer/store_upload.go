package importer

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"storecheck/matching"
)

// RequiredColumns is the exact header set of the new-store upload
// template. Order is free, names are not.
var RequiredColumns = []string{
	"Store Name",
	"Region",
	"City",
	"Address",
	"Latitude",
	"Longitude",
	"Reference ID",
	"NIK",
	"NPWP",
}

// UploadError is a validation failure in an uploaded workbook. It is a
// caller contract violation, distinct from I/O errors.
type UploadError struct {
	Reason string
}

func (e *UploadError) Error() string {
	return e.Reason
}

// ParseNewStores reads an uploaded new-store workbook and returns one
// query record per data row. The workbook must contain a single sheet
// with the exact RequiredColumns header set starting at A1, and all rows
// must belong to one region. Fully blank rows are skipped.
func ParseNewStores(r io.Reader) ([]matching.QueryRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &UploadError{Reason: "workbook contains no sheets"}
	}
	if len(sheets) > 1 {
		return nil, &UploadError{Reason: fmt.Sprintf("workbook must contain a single sheet, found %d", len(sheets))}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, &UploadError{Reason: "workbook is empty, expected a header row"}
	}

	colIndex, err := validateHeader(rows[0])
	if err != nil {
		return nil, err
	}

	var records []matching.QueryRecord
	for _, row := range rows[1:] {
		rec := matching.QueryRecord{
			StoreName:   cellAt(row, colIndex["Store Name"]),
			Region:      cellAt(row, colIndex["Region"]),
			City:        cellAt(row, colIndex["City"]),
			Address:     cellAt(row, colIndex["Address"]),
			Latitude:    cellAt(row, colIndex["Latitude"]),
			Longitude:   cellAt(row, colIndex["Longitude"]),
			ReferenceID: cellAt(row, colIndex["Reference ID"]),
			NIK:         cellAt(row, colIndex["NIK"]),
			NPWP:        cellAt(row, colIndex["NPWP"]),
		}
		if isBlank(rec) {
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, &UploadError{Reason: "workbook contains no data rows"}
	}
	if err := validateSingleRegion(records); err != nil {
		return nil, err
	}

	return records, nil
}

// validateHeader checks the header row against RequiredColumns (exact
// names, any order, nothing extra or missing) and returns a column index.
func validateHeader(header []string) (map[string]int, error) {
	colIndex := make(map[string]int)
	var found []string
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := colIndex[name]; dup {
			return nil, &UploadError{Reason: fmt.Sprintf("duplicate column %q", name)}
		}
		colIndex[name] = i
		found = append(found, name)
	}

	want := append([]string(nil), RequiredColumns...)
	got := append([]string(nil), found...)
	sort.Strings(want)
	sort.Strings(got)
	if strings.Join(want, "\x00") != strings.Join(got, "\x00") {
		return nil, &UploadError{Reason: fmt.Sprintf(
			"header does not match the template: expected columns %s, found %s",
			strings.Join(RequiredColumns, ", "), strings.Join(found, ", "))}
	}

	return colIndex, nil
}

// validateSingleRegion enforces the one-region-per-file upload rule.
func validateSingleRegion(records []matching.QueryRecord) error {
	regions := make(map[string]string)
	for _, rec := range records {
		normalized := matching.Normalize(rec.Region, matching.FieldRegion)
		if normalized == "" {
			return &UploadError{Reason: "every row must have a region"}
		}
		regions[normalized] = strings.TrimSpace(rec.Region)
	}
	if len(regions) > 1 {
		var names []string
		for _, original := range regions {
			names = append(names, original)
		}
		sort.Strings(names)
		return &UploadError{Reason: "workbook must contain data for only one region, found: " + strings.Join(names, ", ")}
	}
	return nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(rec matching.QueryRecord) bool {
	return rec.StoreName == "" && rec.Region == "" && rec.City == "" &&
		rec.Address == "" && rec.Latitude == "" && rec.Longitude == "" &&
		rec.ReferenceID == "" && rec.NIK == "" && rec.NPWP == ""
}
