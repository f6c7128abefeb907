package estimator

import "strings"

// QuizAnswers are the answers collected by the multi-step quick estimate quiz.
type QuizAnswers struct {
	ProjectType string  `json:"projectType"`
	AreaSize    float64 `json:"areaSize"`

	Doors      int     `json:"doors"`
	Windows    int     `json:"windows"`
	DoorType   string  `json:"doorType,omitempty"`
	WindowType string  `json:"windowType,omitempty"`
	DoorSize   float64 `json:"doorSize,omitempty"`
	WindowSize float64 `json:"windowSize,omitempty"`

	Materials []string `json:"materials"`

	DesignStyle        string `json:"designStyle,omitempty"`
	ClimateZone        string `json:"climateZone,omitempty"`
	Sustainability     int    `json:"sustainability,omitempty"`
	TermiteProtection  bool   `json:"termiteProtection,omitempty"`
	MoistureProtection bool   `json:"moistureProtection,omitempty"`
	Finish             string `json:"finish,omitempty"`
	Budget             string `json:"budget,omitempty"`
	Priority           string `json:"priority,omitempty"`

	// Free-text answers, scanned for complexity keywords.
	Requirements   string `json:"requirements,omitempty"`
	Timeline       string `json:"timeline,omitempty"`
	SiteConditions string `json:"siteConditions,omitempty"`
}

// The quiz keeps its own rate sheet. It is maintained separately from the
// detailed catalog and only lists what the quiz offers.
var quizMaterialPrices = map[string]float64{
	"burmaTeak":         3500,
	"ghanaTeak":         2800,
	"brazilianTeak":     3200,
	"indianSal":         1600,
	"centuryPlySainik":  2200,
	"marinePlywood":     2600,
	"laminatedPlywood":  1800,
	"waterproofPlywood": 2400,
}

var (
	quizDoorTypes = map[string]float64{
		"standard":      1.0,
		"main-entrance": 1.5,
		"sliding":       1.3,
		"french":        1.4,
	}
	quizWindowTypes = map[string]float64{
		"casement": 1.0,
		"sliding":  1.1,
		"bay":      1.6,
		"fixed":    0.8,
	}
	quizDesignStyles = map[string]float64{
		"modern":       1.0,
		"traditional":  1.15,
		"contemporary": 1.1,
		"rustic":       1.05,
		"colonial":     1.2,
		"minimalist":   0.95,
	}
	quizClimateZones = map[string]float64{
		"temperate": 1.0,
		"coastal":   1.1,
		"humid":     1.08,
		"arid":      1.03,
	}
	quizFinishes = map[string]float64{
		"natural":   1.0,
		"polished":  1.1,
		"painted":   1.08,
		"lacquered": 1.15,
	}
	quizBudgets = map[string]float64{
		"economy":  0.9,
		"standard": 1.0,
		"premium":  1.2,
		"luxury":   1.4,
	}
	quizPriorities = map[string]float64{
		"cost":     0.95,
		"balanced": 1.0,
		"quality":  1.1,
		"speed":    1.15,
	}
)

type complexityTrigger struct {
	keywords []string
	step     float64
}

var complexityTriggers = []complexityTrigger{
	{keywords: []string{"custom"}, step: 0.15},
	{keywords: []string{"urgent", "immediate"}, step: 0.10},
	{keywords: []string{"difficult", "complex"}, step: 0.20},
}

const (
	quizDoorBase        = 20
	quizWindowBase      = 10
	quizAreaRate        = 100
	quizStandardDoor    = 21
	quizStandardWindow  = 12
	quizFlatAreaRate    = 500
	quizFlatDoorPrice   = 8000
	quizFlatWindowPrice = 5000

	quizProtectionStep     = 0.05
	quizSustainabilityStep = 0.01
	quizSustainabilityMax  = 10
)

// QuickQuizEstimate is the single-number estimate shown at the end of the quiz.
// It shares nothing with DetailedItemEstimate and will not match it for an
// equivalent project.
func QuickQuizEstimate(a QuizAnswers) float64 {
	var sum float64
	var known int
	for _, m := range a.Materials {
		if price, ok := quizMaterialPrices[m]; ok {
			sum += price
			known++
		}
	}

	if known == 0 {
		flat := a.AreaSize*quizFlatAreaRate + float64(a.Doors)*quizFlatDoorPrice + float64(a.Windows)*quizFlatWindowPrice
		return roundHalfUp(flat)
	}

	avg := sum / float64(known)
	doorCost := float64(a.Doors) * avg * quizDoorBase * sizeRatio(a.DoorSize, quizStandardDoor) * lookupOr(quizDoorTypes, a.DoorType)
	windowCost := float64(a.Windows) * avg * quizWindowBase * sizeRatio(a.WindowSize, quizStandardWindow) * lookupOr(quizWindowTypes, a.WindowType)
	areaCost := a.AreaSize * quizAreaRate

	estimate := doorCost + windowCost + areaCost
	estimate *= quizProjectMultiplier(a.ProjectType)
	estimate *= lookupOr(quizDesignStyles, a.DesignStyle)
	estimate *= environmentFactor(a)
	estimate *= lookupOr(quizFinishes, a.Finish)
	estimate *= lookupOr(quizBudgets, a.Budget)
	estimate *= lookupOr(quizPriorities, a.Priority)
	estimate *= ComplexityMultiplier(a.Requirements, a.Timeline, a.SiteConditions)

	return roundHalfUp(estimate)
}

// ComplexityMultiplier starts at 1 and adds a fixed step for every trigger group
// found in any of the texts, case-insensitively. Each group counts once.
func ComplexityMultiplier(texts ...string) float64 {
	joined := strings.ToLower(strings.Join(texts, " "))
	multiplier := 1.0
	for _, trigger := range complexityTriggers {
		for _, kw := range trigger.keywords {
			if strings.Contains(joined, kw) {
				multiplier += trigger.step
				break
			}
		}
	}
	return multiplier
}

// quizProjectMultiplier treats everything that is not residential as commercial,
// unlike ProjectMultiplier.
func quizProjectMultiplier(projectType string) float64 {
	if projectType == "residential" {
		return 1.0
	}
	return commercialFactor
}

func environmentFactor(a QuizAnswers) float64 {
	adjust := 1.0
	if a.TermiteProtection {
		adjust += quizProtectionStep
	}
	if a.MoistureProtection {
		adjust += quizProtectionStep
	}
	level := min(max(a.Sustainability, 0), quizSustainabilityMax)
	adjust += float64(level) * quizSustainabilityStep

	return lookupOr(quizClimateZones, a.ClimateZone) * adjust
}

func sizeRatio(size, standard float64) float64 {
	if size <= 0 {
		return 1.0
	}
	return size / standard
}

func lookupOr(table map[string]float64, key string) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	return neutralMultiplier
}
