package circuit

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// piExprRegex matches expressions like: pi, 2pi, 2*pi, pi/2, 3pi/4, 3*pi/4, -pi, -pi/2, -3*pi/4
var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// degreeSuffixes mark a value entered in degrees, e.g. "90deg" or "45°".
var degreeSuffixes = []string{"deg", "°"}

// ParseParamExpr parses a single angle expression into radians.
//
// Supported formats:
//   - Plain numbers (radians): "1.5707", "3.14", "-0.5"
//   - Pi constant: "pi"
//   - Pi fractions: "pi/2", "pi/4", "pi/3"
//   - Coefficients: "2pi", "2*pi", "3pi/4", "3*pi/4"
//   - Negative: "-pi", "-pi/2", "-3*pi/4"
//   - Degrees: "90deg", "-45°"
func ParseParamExpr(s string) (float64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}

	for _, suffix := range degreeSuffixes {
		if deg, ok := strings.CutSuffix(s, suffix); ok {
			val, err := strconv.ParseFloat(strings.TrimSpace(deg), 64)
			if err != nil {
				return 0, false
			}
			return DegreesToRadians(val), true
		}
	}

	if val, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, false
		}
		return val, true
	}

	matches := piExprRegex.FindStringSubmatch(s)
	if matches == nil {
		return 0, false
	}
	negative := matches[1] == "-"
	coeffStr := matches[2]
	denomStr := matches[3]

	coeff := 1.0
	if coeffStr != "" {
		var err error
		coeff, err = strconv.ParseFloat(coeffStr, 64)
		if err != nil {
			return 0, false
		}
	}

	result := coeff * math.Pi

	if denomStr != "" {
		denom, err := strconv.ParseFloat(denomStr, 64)
		if err != nil || denom == 0 {
			return 0, false
		}
		result /= denom
	}

	if negative {
		result = -result
	}
	return result, true
}

// DegreesToRadians converts an angle in degrees.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadiansToDegrees converts an angle in radians.
func RadiansToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// piDenominators are the fractions of pi FormatParam writes symbolically.
// Multiples up to a full turn are recognized for each.
var piDenominators = []int{1, 2, 3, 4, 6, 8}

// FormatParam formats an angle in radians so that ParseParamExpr reads it
// back, using pi notation for multiples of pi/d with d in piDenominators.
func FormatParam(val float64) string {
	if val == 0 {
		return "0"
	}
	sign := ""
	if val < 0 {
		sign = "-"
	}
	turns := math.Abs(val) / math.Pi
	for _, d := range piDenominators {
		n := int(math.Round(turns * float64(d)))
		if n < 1 || n > 2*d || math.Abs(math.Abs(val)-float64(n)*math.Pi/float64(d)) >= 1e-10 {
			continue
		}
		return sign + piFraction(n, d)
	}
	return fmt.Sprintf("%g", val)
}

// piFraction writes n*pi/d in lowest terms.
func piFraction(n, d int) string {
	s := "pi"
	if n != 1 {
		s = strconv.Itoa(n) + "*pi"
	}
	if d != 1 {
		s += "/" + strconv.Itoa(d)
	}
	return s
}
