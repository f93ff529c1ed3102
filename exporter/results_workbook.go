package exporter

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"storecheck/importer"
	"storecheck/matching"
)

const (
	resultsSheet   = "Possible Duplicates"
	rationaleSheet = "Match Rationale"
	templateSheet  = "New Stores"
)

// resultColumns is the fixed part of the results layout; sell-through
// month columns are appended after it.
var resultColumns = []string{
	"Input Store Name",
	"Input Address",
	"Matched Customer ID",
	"Matched Store Name",
	"Region",
	"City",
	"Matched Address",
	"Latitude",
	"Longitude",
	"Ref ID SKT",
	"Ref ID G2G",
	"Ref ID TPH",
	"NIK",
	"NPWP",
	"Similarity Score",
}

// BuildTemplate builds the empty upload template workbook: one sheet with
// the required column headers in A1.
func BuildTemplate() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), templateSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename template sheet: %w", err)
	}

	style, err := headerStyle(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := writeHeader(f, templateSheet, importer.RequiredColumns, style); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// BuildResultsWorkbook builds the duplicate-check results workbook: one
// sheet with the match table (including per-month sell-through columns
// keyed by customer ID) and one with the full rationale per match.
func BuildResultsWorkbook(results []matching.MatchResult, sellThrough map[string]map[string]float64, months []string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), resultsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename results sheet: %w", err)
	}
	if _, err := f.NewSheet(rationaleSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create rationale sheet: %w", err)
	}

	style, err := headerStyle(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	headers := append(append([]string(nil), resultColumns...), monthHeaders(months)...)
	if err := writeHeader(f, resultsSheet, headers, style); err != nil {
		f.Close()
		return nil, err
	}

	for i, res := range results {
		row := i + 2
		values := []interface{}{
			res.QueryName,
			res.QueryAddress,
			res.Store.CustID,
			res.Store.StoreName,
			res.Store.Region,
			res.Store.City,
			res.Store.Address,
			res.Store.Latitude,
			res.Store.Longitude,
			res.Store.RefIDSKT,
			res.Store.RefIDG2G,
			res.Store.RefIDTPH,
			res.Store.NIK,
			res.Store.NPWP,
			res.Score,
		}
		for _, month := range months {
			values = append(values, sellThrough[res.Store.CustID][month])
		}

		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to compute cell name: %w", err)
			}
			if err := f.SetCellValue(resultsSheet, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if err := writeHeader(f, rationaleSheet, []string{"Matched Customer ID", "Matched Store Name", "Similarity Score", "Rationale"}, style); err != nil {
		f.Close()
		return nil, err
	}
	for i, res := range results {
		row := i + 2
		values := []interface{}{
			res.Store.CustID,
			res.Store.StoreName,
			res.Score,
			strings.Join(res.Rationale, "\n"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to compute cell name: %w", err)
			}
			if err := f.SetCellValue(rationaleSheet, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	return f, nil
}

func monthHeaders(months []string) []string {
	headers := make([]string, len(months))
	for i, m := range months {
		headers[i] = "ST Value " + m
	}
	return headers
}

func headerStyle(f *excelize.File) (int, error) {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create header style: %w", err)
	}
	return style, nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header %q: %w", header, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("failed to style header %q: %w", header, err)
		}
	}
	for i := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to compute column name: %w", err)
		}
		if err := f.SetColWidth(sheet, col, col, 18); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	return nil
}
