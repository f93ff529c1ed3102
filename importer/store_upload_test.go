package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes a single-sheet workbook with the given header and
// rows and returns it as a reader.
func buildWorkbook(t *testing.T, header []string, rows [][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseNewStores(t *testing.T) {
	header := []string{"Store Name", "Region", "City", "Address", "Latitude", "Longitude", "Reference ID", "NIK", "NPWP"}
	rows := [][]string{
		{"Toko Abadi", "Jawa Barat", "Bandung", "Jl. Mawar No. 5", "-6.91", "107.60", "REF-1", "1234567890123456", ""},
		{"Warung Makmur", "Jawa Barat", "", "Jalan Melati 7", "", "", "", "", ""},
		{"", "", "", "", "", "", "", "", ""}, // fully blank, skipped
	}

	records, err := ParseNewStores(buildWorkbook(t, header, rows))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Toko Abadi", records[0].StoreName)
	assert.Equal(t, "Jl. Mawar No. 5", records[0].Address)
	assert.Equal(t, "-6.91", records[0].Latitude)
	assert.Equal(t, "REF-1", records[0].ReferenceID)
	assert.Equal(t, "Warung Makmur", records[1].StoreName)
	assert.Empty(t, records[1].City)
}

func TestParseNewStores_HeaderOrderFree(t *testing.T) {
	header := []string{"NPWP", "NIK", "Reference ID", "Longitude", "Latitude", "Address", "City", "Region", "Store Name"}
	rows := [][]string{
		{"npwp-1", "nik-1", "ref-1", "107.6", "-6.9", "Mawar 5", "Bandung", "Jawa Barat", "Toko Abadi"},
	}

	records, err := ParseNewStores(buildWorkbook(t, header, rows))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Toko Abadi", records[0].StoreName)
	assert.Equal(t, "npwp-1", records[0].NPWP)
}

func TestParseNewStores_HeaderMismatch(t *testing.T) {
	tests := []struct {
		name   string
		header []string
	}{
		{"missing column", []string{"Store Name", "Region", "City", "Address", "Latitude", "Longitude", "Reference ID", "NIK"}},
		{"renamed column", []string{"Store Name", "Region", "City", "Address", "Lat", "Longitude", "Reference ID", "NIK", "NPWP"}},
		{"extra column", []string{"Store Name", "Region", "City", "Address", "Latitude", "Longitude", "Reference ID", "NIK", "NPWP", "Notes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := make([]string, len(tt.header))
			for i := range row {
				row[i] = "x"
			}
			_, err := ParseNewStores(buildWorkbook(t, tt.header, [][]string{row}))
			var uploadErr *UploadError
			require.ErrorAs(t, err, &uploadErr)
		})
	}
}

func TestParseNewStores_MultipleRegionsRejected(t *testing.T) {
	header := []string{"Store Name", "Region", "City", "Address", "Latitude", "Longitude", "Reference ID", "NIK", "NPWP"}
	rows := [][]string{
		{"A", "Jawa Barat", "", "Mawar 5", "", "", "", "", ""},
		{"B", "Bali", "", "Melati 7", "", "", "", "", ""},
	}

	_, err := ParseNewStores(buildWorkbook(t, header, rows))
	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Contains(t, uploadErr.Reason, "one region")
}

func TestParseNewStores_RegionCaseVariantsAreOneRegion(t *testing.T) {
	header := []string{"Store Name", "Region", "City", "Address", "Latitude", "Longitude", "Reference ID", "NIK", "NPWP"}
	rows := [][]string{
		{"A", "Jawa Barat", "", "Mawar 5", "", "", "", "", ""},
		{"B", "JAWA BARAT", "", "Melati 7", "", "", "", "", ""},
	}

	records, err := ParseNewStores(buildWorkbook(t, header, rows))
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestParseNewStores_NoDataRows(t *testing.T) {
	header := []string{"Store Name", "Region", "City", "Address", "Latitude", "Longitude", "Reference ID", "NIK", "NPWP"}

	_, err := ParseNewStores(buildWorkbook(t, header, nil))
	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)
}

func TestParseNewStores_MissingRegionRejected(t *testing.T) {
	header := []string{"Store Name", "Region", "City", "Address", "Latitude", "Longitude", "Reference ID", "NIK", "NPWP"}
	rows := [][]string{
		{"A", "", "", "Mawar 5", "", "", "", "", ""},
	}

	_, err := ParseNewStores(buildWorkbook(t, header, rows))
	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Contains(t, uploadErr.Reason, "region")
}
