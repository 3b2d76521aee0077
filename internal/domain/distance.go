package domain

import (
	"fmt"
	"math"
)

const earthRadiusKM = 6371.0

// DistanceKM returns the great-circle distance between two coordinates
// (degrees) using the haversine formula, rounded to two decimals.
func DistanceKM(srcLat, srcLong, dstLat, dstLong float64) float64 {
	srcLatR := toRadians(srcLat)
	dstLatR := toRadians(dstLat)
	dLat := dstLatR - srcLatR
	dLong := toRadians(dstLong) - toRadians(srcLong)

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(srcLatR)*math.Cos(dstLatR)*math.Pow(math.Sin(dLong/2), 2)
	c := 2 * math.Asin(math.Sqrt(a))

	return math.Round(c*earthRadiusKM*100) / 100
}

// FormatDistance renders a distance the way route details expose it.
func FormatDistance(km float64) string {
	return fmt.Sprintf("%s km", trimFloat(km))
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s += "0"
	}
	return s
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
