package report

import (
	"fmt"
	"time"
)

// Fixed labels carried in every generated destination filename.
const (
	institutionLabel = "Puskesmas Sedau"
	applicationLabel = "ePuskesmas"

	// Extension of the rendered spreadsheet document.
	SpreadsheetExt = ".xlsx"
)

// NewUploadFilename builds the destination filename for a report title
// from the current local time.
func NewUploadFilename(title string) string {
	return UploadFilenameAt(title, time.Now())
}

// UploadFilenameAt builds a destination filename for the given timestamp.
// Millisecond precision keeps consecutive uploads of the same title unique
// in practice; two calls within the same millisecond would collide, an
// accepted risk given the multi-second pacing between uploads.
func UploadFilenameAt(title string, ts time.Time) string {
	stamp := ts.Format("2006-01-02 15:04:05.000")
	return fmt.Sprintf("%s_%s_%s_%s%s", institutionLabel, applicationLabel, title, stamp, SpreadsheetExt)
}
