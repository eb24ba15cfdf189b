package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	numericDateRe = regexp.MustCompile(`(\d{2})-(\d{2})-(\d{4})`)
	indoDateRe    = regexp.MustCompile(`(\d{1,2})\s+(\w+)\s+(\d{4})`)
)

// bulanMap translates Indonesian month names to month numbers.
var bulanMap = map[string]string{
	"Januari":   "01",
	"Februari":  "02",
	"Maret":     "03",
	"April":     "04",
	"Mei":       "05",
	"Juni":      "06",
	"Juli":      "07",
	"Agustus":   "08",
	"September": "09",
	"Oktober":   "10",
	"November":  "11",
	"Desember":  "12",
}

// ExtractDate parses a free-text row into a normalized YYYY-MM-DD date.
// It tries the numeric DD-MM-YYYY notation first, then the Indonesian
// "D MonthName YYYY" notation. Month names are matched case-insensitively;
// an unrecognized month name falls back to "01", matching the portal
// operators' existing exports. Returns false when neither notation matches.
func ExtractDate(text string) (string, bool) {
	if m := numericDateRe.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1]), true
	}

	if m := indoDateRe.FindStringSubmatch(text); m != nil {
		day, err := strconv.Atoi(m[1])
		if err != nil {
			return "", false
		}
		month, ok := bulanMap[capitalize(m[2])]
		if !ok {
			month = "01"
		}
		return fmt.Sprintf("%s-%s-%02d", m[3], month, day), true
	}

	return "", false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
