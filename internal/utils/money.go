package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoundToMinorUnits rounds a decimal amount to whole minor currency units
// (half away from zero). All amounts are persisted as integers.
func RoundToMinorUnits(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// MonthWindow returns the half-open [first day of t's month, first day of the
// next month) range in t's location.
func MonthWindow(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 1, 0)
}

// MonthRange returns the same half-open window for an explicit (month, year)
// pair, in UTC. time.Date normalizes overflow, so December rolls into January
// and leap Februaries come out with the right length.
func MonthRange(month int, year int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(month int, year int) int {
	from, to := MonthRange(month, year)
	return int(to.Sub(from).Hours() / 24)
}
