package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleHTML = `<html><body>
<h1>e-Puskesmas</h1>
<table>
  <tr><td>Laporan Harian - Kunjungan</td></tr>
  <tr><th>Periode</th><th>05-03-2024</th></tr>
  <tr><td>Budi</td><td>Umum</td></tr>
</table>
<table><tr><td>second table is ignored</td></tr></table>
</body></html>`

func TestIngestHTML(t *testing.T) {
	tbl, err := Ingest("laporan.xls", []byte(sampleHTML))
	require.NoError(t, err)

	require.Len(t, tbl, 3)
	assert.Equal(t, "Laporan Harian - Kunjungan", tbl.RawTitle())
	assert.Equal(t, []string{"Periode", "05-03-2024"}, []string(tbl[1]))
	assert.Equal(t, []string{"Budi", "Umum"}, []string(tbl[2]))
}

func TestIngestHTMLNoTable(t *testing.T) {
	tbl, err := Ingest("laporan.xls", []byte("<html><body><p>kosong</p></body></html>"))
	assert.Error(t, err)
	assert.True(t, tbl.Empty())
}

func TestIngestWorkbook(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Laporan Harian - Kunjungan"},
		{"Periode", "05-03-2024"},
		{"Budi", "Umum"},
	})

	tbl, err := Ingest("laporan.xlsx", data)
	require.NoError(t, err)

	// First row is data, not column names.
	require.GreaterOrEqual(t, len(tbl), 3)
	assert.Equal(t, "Laporan Harian - Kunjungan", tbl.RawTitle())
	assert.Equal(t, "Periode 05-03-2024", tbl.RowText(1))
}

func TestIngestWorkbookGarbage(t *testing.T) {
	tbl, err := Ingest("laporan.xlsx", []byte("this is not a zip archive"))
	assert.Error(t, err)
	assert.True(t, tbl.Empty())
}

func TestRenderXLSXRoundTrip(t *testing.T) {
	src := Table{
		{"Laporan Harian - Kunjungan"},
		{"Periode", "05-03-2024"},
		{"Budi", "Umum"},
	}

	data, err := src.RenderXLSX()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	got, err := Ingest("render.xlsx", data)
	require.NoError(t, err)
	assert.Equal(t, "Laporan Harian - Kunjungan", got.RawTitle())
	assert.Equal(t, "Periode 05-03-2024", got.RowText(1))
}

func buildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}
