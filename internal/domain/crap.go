package domain

import (
	"math"
	"strconv"
)

// CRAP returns the change risk anti-patterns score of a unit with the given
// cyclomatic complexity and line coverage percentage.
func CRAP(ccn int, coverage float64) string {
	if coverage == 0 {
		return strconv.Itoa(ccn*ccn + ccn)
	}

	if coverage >= 95 {
		return strconv.Itoa(ccn)
	}

	c := float64(ccn)

	return strconv.FormatFloat(c*c*math.Pow(1-coverage/100, 3)+c, 'f', 2, 64)
}
