package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUploadFilenameAt(t *testing.T) {
	ts := time.Date(2024, 3, 5, 9, 30, 15, 123_000_000, time.Local)

	name := UploadFilenameAt("Kunjungan", ts)

	assert.Equal(t, "Puskesmas Sedau_ePuskesmas_Kunjungan_2024-03-05 09:30:15.123.xlsx", name)
	assert.True(t, strings.HasSuffix(name, SpreadsheetExt))
	assert.Contains(t, name, "Puskesmas Sedau")
	assert.Contains(t, name, "ePuskesmas")
	assert.Contains(t, name, "Kunjungan")
}

func TestUploadFilenameUniquePerMillisecond(t *testing.T) {
	ts := time.Date(2024, 3, 5, 9, 30, 15, 0, time.Local)

	a := UploadFilenameAt("Kunjungan", ts)
	b := UploadFilenameAt("Kunjungan", ts.Add(time.Millisecond))

	assert.NotEqual(t, a, b)
}

func TestNewUploadFilename(t *testing.T) {
	name := NewUploadFilename("Gigi")
	assert.True(t, strings.HasPrefix(name, "Puskesmas Sedau_ePuskesmas_Gigi_"))
	assert.True(t, strings.HasSuffix(name, ".xlsx"))
}
