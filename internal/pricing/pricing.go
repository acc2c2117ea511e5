// Package pricing converts scraped price strings to numbers at the
// consumption boundary. Stored prices stay opaque strings; only callers that
// chart or compare need a float, and they must handle the miss explicitly.
package pricing

import (
	"regexp"
	"strconv"
	"strings"
)

var numberRegexp = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Parse extracts the first numeric value from a raw price string such as
// "$1,299.00" or "19.99". It returns false for sentinels, promotional text,
// or anything else without a number.
func Parse(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	match := numberRegexp.FindString(cleaned)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
