package usecase

import (
	"math"
	"strings"
)

var luxuryBrands = map[string]bool{
	"Gucci":         true,
	"Prada":         true,
	"Louis Vuitton": true,
	"Chanel":        true,
	"Hermes":        true,
	"Dior":          true,
	"Balenciaga":    true,
}

var premiumBrands = map[string]bool{
	"Nike":           true,
	"Adidas":         true,
	"Levi":           true,
	"Tommy Hilfiger": true,
	"Ralph Lauren":   true,
	"Zara":           true,
	"H&M":            true,
	"Uniqlo":         true,
}

// EstimatePoints derives a listing's point value from its attributes:
// a brand-tier base, scaled by condition and age depreciation, plus a
// category bonus and a capped share of the original retail price. The
// result is clamped to a 50-point floor and rounded to the nearest 5.
func EstimatePoints(brand, condition string, ageMonths int, category string, originalPrice int64) int64 {
	var base float64

	switch {
	case brand == "":
		base = 50
	case luxuryBrands[brand]:
		base = 1000
	case premiumBrands[brand]:
		base = 300
	default:
		base = 100
	}

	if condition != "" {
		cond := strings.ToLower(condition)
		switch {
		case strings.Contains(cond, "new with tags"):
			base *= 1.2
		case strings.Contains(cond, "like new"):
			base *= 1.05
		case strings.Contains(cond, "new"):
			base *= 1.1
		case strings.Contains(cond, "good"):
			base *= 0.95
		case strings.Contains(cond, "fair"):
			base *= 0.8
		case strings.Contains(cond, "worn"), strings.Contains(cond, "poor"):
			base *= 0.6
		default:
			base *= 0.7
		}
	}

	// 2% depreciation per month, capped at 80% off.
	if ageMonths > 0 {
		base *= math.Max(0.2, 1-0.02*float64(ageMonths))
	}

	if category != "" {
		switch strings.ToLower(category) {
		case "jacket", "coat", "blazer":
			base += 150
		case "dress", "sweater", "hoodie":
			base += 100
		case "shoes", "pants", "jeans":
			base += 80
		case "t-shirt", "top", "skirt", "shorts":
			base += 50
		default:
			base += 20
		}
	}

	// Retail price contributes 10%, never more than 2000 points.
	if originalPrice > 0 {
		base += math.Min(2000, float64(originalPrice)*0.1)
	}

	points := int64(math.Round(base/5) * 5)
	if points < 50 {
		return 50
	}
	return points
}
