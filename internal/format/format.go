package format

import (
	"fmt"
	"strings"
	"time"
)

var monthNames = map[string][12]string{
	"tr": {"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran", "Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık"},
}

// FmtDate formats t in a locale-friendly long form.
// Example: FmtDate(t, "tr") => "1 Haziran 2025"
func FmtDate(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch strings.ToLower(lang) {
	case "tr":
		return fmt.Sprintf("%d %s %d", t.Day(), monthNames["tr"][t.Month()-1], t.Year())
	default:
		return t.Format("January 2, 2006")
	}
}

// ISODate is the machine-readable form used in <time datetime>.
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
