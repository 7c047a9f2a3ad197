package clock

import "time"

var shortWeekdays = map[string][7]string{
	"es": {"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
	"en": {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
}

// DefaultLocale is used when a locale has no weekday table.
const DefaultLocale = "es"

// SupportedLocale reports whether locale has weekday labels.
func SupportedLocale(locale string) bool {
	_, ok := shortWeekdays[locale]
	return ok
}

// ShortWeekday returns the abbreviated weekday name for locale.
func ShortWeekday(locale string, wd time.Weekday) string {
	labels, ok := shortWeekdays[locale]
	if !ok {
		labels = shortWeekdays[DefaultLocale]
	}
	return labels[wd]
}
