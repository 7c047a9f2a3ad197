package clock

import (
	"time"

	"github.com/shopspring/decimal"
)

// Hour values are rounded half away from zero everywhere: entry durations to
// EntryPlaces, displayed rollups to RollupPlaces, percentages to integers.
const (
	EntryPlaces  int32 = 2
	RollupPlaces int32 = 1
)

var millisPerHour = decimal.NewFromInt(int64(time.Hour / time.Millisecond))

// HoursBetween returns (to - from) in hours rounded to EntryPlaces, using
// millisecond wall-clock subtraction.
func HoursBetween(from, to time.Time) float64 {
	millis := decimal.NewFromInt(to.Sub(from).Milliseconds())
	return millis.Div(millisPerHour).Round(EntryPlaces).InexactFloat64()
}

// Round rounds v to places decimal places.
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// SumHours adds hour values without accumulating binary float error.
func SumHours(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.InexactFloat64()
}

// Percent returns part/whole*100 rounded to the nearest integer, or 0 when
// whole is zero.
func Percent(part, whole float64) int {
	if whole == 0 {
		return 0
	}
	ratio := decimal.NewFromFloat(part).Div(decimal.NewFromFloat(whole))
	return int(ratio.Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}
