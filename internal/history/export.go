package history

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{
	"Waktu_Upload", "Nama_File", "Jenis_Laporan",
	"ID_Database_Server", "Status", "Username", "Tanggal_Laporan",
}

// ExportXLSX renders a record slice as an in-memory spreadsheet document
// for operator download, one header row followed by one row per record.
func ExportXLSX(records []Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for i, r := range records {
		row := []string{
			r.WaktuUpload, r.NamaFile, r.JenisLaporan,
			r.IDDatabaseServer, r.Status, r.Username, r.TanggalLaporan,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing record %d: %w", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
