// Package report handles the tabular reports exported from e-Puskesmas:
// reading the two container formats, locating the report title and date,
// and rendering a clean spreadsheet copy for submission.
package report

import "strings"

// Title prefixes used by e-Puskesmas exports.
const (
	TitlePrefix       = "Laporan Harian - "
	ExaminationPrefix = "Pemeriksaan "
	ServicePrefix     = "Pelayanan "
)

// Table is an ordered sequence of rows of cell values. There is no fixed
// schema: row 0 conventionally holds the report title, and one of rows 1-5
// conventionally holds the report date somewhere in its text.
//
// A table with no rows carries no report; callers must check Empty
// before use.
type Table [][]string

// Empty reports whether the table has no rows.
func (t Table) Empty() bool { return len(t) == 0 }

// RawTitle returns the trimmed content of cell (0,0), or "" when absent.
func (t Table) RawTitle() string {
	if len(t) == 0 || len(t[0]) == 0 {
		return ""
	}
	return strings.TrimSpace(t[0][0])
}

// RowText returns row i's cells concatenated into one text blob,
// or "" when the row does not exist.
func (t Table) RowText(i int) string {
	if i < 0 || i >= len(t) {
		return ""
	}
	return strings.Join(t[i], " ")
}

// CleanTitle strips the daily-report prefix from a raw title.
func CleanTitle(raw string) string {
	return strings.TrimSpace(strings.Replace(raw, TitlePrefix, "", 1))
}

// ShortTitle strips the examination/service prefixes from a clean title.
// Used only for the generated destination filename.
func ShortTitle(title string) string {
	title = strings.Replace(title, ExaminationPrefix, "", 1)
	return strings.Replace(title, ServicePrefix, "", 1)
}
