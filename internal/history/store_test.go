package history

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "upload_history.json"))
}

func sampleRecord(ts string) Record {
	return Record{
		WaktuUpload:      ts,
		NamaFile:         "laporan.xlsx",
		JenisLaporan:     "Laporan Harian - Kunjungan",
		IDDatabaseServer: "S1",
		Status:           StatusSuccess,
		Username:         "operator01",
		TanggalLaporan:   "2024-01-12",
	}
}

func TestLoadAllMissingFile(t *testing.T) {
	s := newTestStore(t)
	assert.Empty(t, s.LoadAll())
}

func TestLoadAllCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload_history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s := NewStore(path)
	assert.Empty(t, s.LoadAll())
}

func TestAppendRoundTrip(t *testing.T) {
	s := newTestStore(t)

	rec := sampleRecord("2024-01-12 10:30:00")
	require.NoError(t, s.Append(rec))

	records := s.LoadAll()
	require.Len(t, records, 1)
	assert.Equal(t, rec, records[0])
}

func TestAppendPreservesOrder(t *testing.T) {
	s := newTestStore(t)

	const n = 5
	for i := 0; i < n; i++ {
		rec := sampleRecord(fmt.Sprintf("2024-01-12 10:30:%02d", i))
		rec.IDDatabaseServer = fmt.Sprintf("S%d", i)
		require.NoError(t, s.Append(rec))
	}

	records := s.LoadAll()
	require.Len(t, records, n)
	for i, r := range records {
		assert.Equal(t, fmt.Sprintf("S%d", i), r.IDDatabaseServer)
	}
}

func TestAppendPermitsDuplicates(t *testing.T) {
	s := newTestStore(t)

	rec := sampleRecord("2024-01-12 10:30:00")
	require.NoError(t, s.Append(rec))
	require.NoError(t, s.Append(rec))

	assert.Len(t, s.LoadAll(), 2)
}

func TestLoadAllIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append(sampleRecord("2024-01-12 10:30:00")))

	assert.Equal(t, s.LoadAll(), s.LoadAll())
}

func TestToday(t *testing.T) {
	s := newTestStore(t)
	s.now = func() time.Time {
		return time.Date(2024, 1, 12, 15, 0, 0, 0, time.Local)
	}

	timestamps := []string{
		"2024-01-11 23:59:59", // yesterday
		"2024-01-12 00:00:01", // today
		"2024-01-12 14:30:00", // today
		"2024-01-13 00:00:00", // tomorrow
	}
	for _, ts := range timestamps {
		require.NoError(t, s.Append(sampleRecord(ts)))
	}

	today := s.Today()
	require.Len(t, today, 2)
	assert.Equal(t, "2024-01-12 00:00:01", today[0].WaktuUpload)
	assert.Equal(t, "2024-01-12 14:30:00", today[1].WaktuUpload)
}

func TestFilter(t *testing.T) {
	s := newTestStore(t)

	a := sampleRecord("2024-01-12 10:00:00")
	b := sampleRecord("2024-01-12 11:00:00")
	b.Username = "operator02"
	c := sampleRecord("2024-01-13 09:00:00")
	for _, r := range []Record{a, b, c} {
		require.NoError(t, s.Append(r))
	}

	assert.Len(t, s.Filter("2024-01-12", "", ""), 2)
	assert.Len(t, s.Filter("2024-01-12", StatusSuccess, "operator02"), 1)
	assert.Len(t, s.Filter("", "", "operator01"), 2)
	assert.Len(t, s.Filter("2024-01-14", "", ""), 0)
	assert.Len(t, s.Filter("", "GAGAL", ""), 0)
}

func TestExportXLSX(t *testing.T) {
	records := []Record{
		sampleRecord("2024-01-12 10:00:00"),
		sampleRecord("2024-01-12 11:00:00"),
	}

	data, err := ExportXLSX(records)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Waktu_Upload", rows[0][0])
	assert.Equal(t, "2024-01-12 10:00:00", rows[1][0])
	assert.Equal(t, "S1", rows[2][3])
}
