package estimator

import "math"

// Style is the construction style of a door or window.
type Style string

const (
	StyleFlush    Style = "flush"
	StylePaneled  Style = "paneled"
	StyleFrench   Style = "french"
	StyleSliding  Style = "sliding"
	StyleFolding  Style = "folding"
	StyleCustom   Style = "custom"
	StyleFixed    Style = "fixed"
	StyleCasement Style = "casement"
	StyleBay      Style = "bay"
	StyleSkylight Style = "skylight"
	StyleOpening  Style = "opening"
)

// Finish is the surface treatment applied to an item.
type Finish string

const (
	FinishNatural    Finish = "natural"
	FinishStained    Finish = "stained"
	FinishPainted    Finish = "painted"
	FinishGlossy     Finish = "glossy"
	FinishDistressed Finish = "distressed"
	FinishMatte      Finish = "matte"
	FinishOiled      Finish = "oiled"
)

var styleMultipliers = map[Style]float64{
	StyleFlush:    1.0,
	StylePaneled:  1.3,
	StyleFrench:   1.5,
	StyleSliding:  1.4,
	StyleFolding:  1.6,
	StyleCustom:   2.0,
	StyleFixed:    0.8,
	StyleCasement: 1.0,
	StyleBay:      1.7,
	StyleSkylight: 1.6,
	StyleOpening:  1.2,
}

var finishMultipliers = map[Finish]float64{
	FinishNatural:    1.0,
	FinishStained:    1.1,
	FinishPainted:    1.2,
	FinishGlossy:     1.3,
	FinishDistressed: 1.4,
	FinishMatte:      1.1,
	FinishOiled:      1.15,
}

var typeSurcharges = map[ItemType]float64{
	ItemDoor:   1.2,
	ItemWindow: 1.0,
	ItemCustom: 1.5,
}

const (
	neutralMultiplier = 1.0
	laborRate         = 0.4
	commercialFactor  = 1.25

	upperDiscountThreshold = 500000
	lowerDiscountThreshold = 200000
	upperDiscountFactor    = 0.95
	lowerDiscountFactor    = 0.97
	upperDiscountRate      = 0.05
	lowerDiscountRate      = 0.03
)

// StyleMultiplier returns the factor for s. Empty and unknown styles are neutral.
func StyleMultiplier(s string) float64 {
	if m, ok := styleMultipliers[Style(s)]; ok {
		return m
	}
	return neutralMultiplier
}

// FinishMultiplier returns the factor for f. Empty and unknown finishes are neutral.
func FinishMultiplier(f string) float64 {
	if m, ok := finishMultipliers[Finish(f)]; ok {
		return m
	}
	return neutralMultiplier
}

// TypeSurcharge returns the craftsmanship factor for an item type.
func TypeSurcharge(t ItemType) float64 {
	if m, ok := typeSurcharges[t]; ok {
		return m
	}
	return neutralMultiplier
}

// ProjectMultiplier is 1.25 for commercial projects and neutral for anything else.
func ProjectMultiplier(projectType string) float64 {
	if projectType == "commercial" {
		return commercialFactor
	}
	return neutralMultiplier
}

// StyleOptions lists known styles in a stable order.
func StyleOptions() []Style {
	return []Style{
		StyleFlush, StylePaneled, StyleFrench, StyleSliding, StyleFolding, StyleCustom,
		StyleFixed, StyleCasement, StyleBay, StyleSkylight, StyleOpening,
	}
}

// FinishOptions lists known finishes in a stable order.
func FinishOptions() []Finish {
	return []Finish{
		FinishNatural, FinishStained, FinishPainted, FinishGlossy,
		FinishDistressed, FinishMatte, FinishOiled,
	}
}

// bulkDiscount applies the tiered discount to an already adjusted total and reports
// the rate taken off. Tiers are strict greater-than and mutually exclusive, highest first.
func bulkDiscount(total float64) (float64, float64) {
	switch {
	case total > upperDiscountThreshold:
		return roundHalfUp(total * upperDiscountFactor), upperDiscountRate
	case total > lowerDiscountThreshold:
		return roundHalfUp(total * lowerDiscountFactor), lowerDiscountRate
	default:
		return total, 0
	}
}

// roundHalfUp rounds .5 towards positive infinity, so -2.5 becomes -2.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
