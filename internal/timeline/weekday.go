package timeline

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var weekdays = map[string]int{
	"lunes": 1, "lun": 1, "lu": 1, "monday": 1, "mon": 1,
	"martes": 2, "mar": 2, "ma": 2, "tuesday": 2, "tue": 2, "tues": 2,
	"miercoles": 3, "mie": 3, "mi": 3, "wednesday": 3, "wed": 3,
	"jueves": 4, "jue": 4, "ju": 4, "thursday": 4, "thu": 4, "thur": 4, "thurs": 4,
	"viernes": 5, "vie": 5, "vi": 5, "friday": 5, "fri": 5,
	"sabado": 6, "sab": 6, "sa": 6, "saturday": 6, "sat": 6,
	"domingo": 7, "dom": 7, "do": 7, "sunday": 7, "sun": 7,
}

// normalizeLabel strips diacritics, a trailing dot and surrounding space, then lowercases.
func normalizeLabel(label string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, label)
	if err != nil {
		stripped = label
	}
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(stripped)), ".")
}

// MapWeekday maps a localized weekday label to 1 (Monday) .. 7 (Sunday).
func MapWeekday(label string) (int, bool) {
	day, ok := weekdays[normalizeLabel(label)]
	return day, ok
}
