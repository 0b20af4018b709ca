package candidate

import (
	"strconv"
	"strings"
	"time"
)

// GapFromGraduationYear is the number of calendar years between the year of
// passing and now. ok is false when the year is not a number.
func GapFromGraduationYear(year Text, now time.Time) (gap int, ok bool) {
	y, err := strconv.Atoi(strings.TrimSpace(string(year)))
	if err != nil {
		return 0, false
	}
	return now.Year() - y, true
}

// YearGap uses the post-graduation year when present, the graduation year
// otherwise.
func (r *Record) YearGap(now time.Time) (int, bool) {
	if gap, ok := GapFromGraduationYear(r.PGYearOfPassing, now); ok {
		return gap, true
	}
	return GapFromGraduationYear(r.YearOfPassing, now)
}
