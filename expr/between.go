package expr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var intervalRe = regexp.MustCompile(`^\s*([\[(])\s*([0-9._eE+-]+)\s*,\s*([0-9._eE+-]+)\s*([\])])\s*$`)

// parseInterval interprets a mathematical interval spec such as "[2,10)"
// (2 <= v < 10) or "(1,3]" (1 < v <= 3).
func parseInterval(spec string) (lo, hi float64, leftInclusive, rightInclusive bool, err error) {
	m := intervalRe.FindStringSubmatch(spec)
	if m == nil {
		return 0, 0, false, false, fmt.Errorf("unrecognized interval spec %q", spec)
	}
	lo, err = strconv.ParseFloat(strings.ReplaceAll(m[2], "_", ""), 64)
	if err != nil {
		return 0, 0, false, false, fmt.Errorf("bad lower bound in %q: %w", spec, err)
	}
	hi, err = strconv.ParseFloat(strings.ReplaceAll(m[3], "_", ""), 64)
	if err != nil {
		return 0, 0, false, false, fmt.Errorf("bad upper bound in %q: %w", spec, err)
	}
	return lo, hi, m[1] == "[", m[4] == "]", nil
}
