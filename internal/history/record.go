// Package history keeps the durable, append-only log of upload outcomes.
// The log is a single JSON file: read in full, rewritten in full on every
// append. That is safe only because the batch orchestrator is the sole
// writer and strictly sequential.
package history

// StatusSuccess tags a confirmed successful upload. The design only
// models the explicit success tag; anything else is failure-by-absence.
const StatusSuccess = "SUKSES"

// Timestamp formats used in stored records. Today() matches records by
// string prefix against DateFormat, so TimestampFormat must keep the
// date part identical to DateFormat.
const (
	TimestampFormat = "2006-01-02 15:04:05"
	DateFormat      = "2006-01-02"
)

// Record describes one successful upload. Records are created only on a
// confirmed remote acceptance and never mutated or deleted afterwards.
// JSON keys match the log format the portal operators already have on disk.
type Record struct {
	WaktuUpload      string `json:"Waktu_Upload"`
	NamaFile         string `json:"Nama_File"`
	JenisLaporan     string `json:"Jenis_Laporan"`
	IDDatabaseServer string `json:"ID_Database_Server"`
	Status           string `json:"Status"`
	Username         string `json:"Username"`
	TanggalLaporan   string `json:"Tanggal_Laporan"`
}
