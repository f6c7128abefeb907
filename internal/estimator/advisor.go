package estimator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	minSuggestedSavings = 1000
	maxSuggestions      = 3
)

// SuggestAlternatives proposes the closest cheaper material of the same category
// for each item whose estimated saving exceeds minSuggestedSavings. The saving is a
// raw rate delta times width, height and quantity; multipliers are ignored.
// At most three suggestions are returned, in item order.
func (c *Catalog) SuggestAlternatives(items []EstimatorItem) []string {
	suggestions := make([]string, 0, maxSuggestions)

	for _, item := range items {
		current, ok := c.Lookup(item.Material)
		if !ok {
			continue
		}

		alt, ok := c.closestCheaper(current)
		if !ok {
			continue
		}

		d := item.Dimensions
		savings := roundHalfUp((current.PricePerUnitArea - alt.PricePerUnitArea) * d.Width * d.Height * float64(item.Quantity))
		if savings <= minSuggestedSavings {
			continue
		}

		suggestions = append(suggestions, fmt.Sprintf(
			"Save ₹%s by using %s instead of %s for %s",
			groupRupees(int64(savings)),
			c.DisplayName(alt.Key),
			c.DisplayName(item.Material),
			item.Name,
		))
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// groupRupees formats n with Indian digit grouping: the last three digits, then
// pairs (1,00,000 for one lakh).
func groupRupees(n int64) string {
	if n > -100000 && n < 100000 {
		return humanize.Comma(n)
	}

	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	if len(head)%2 == 1 {
		groups = append(groups, head[:1])
		head = head[1:]
	}
	for ; len(head) > 0; head = head[2:] {
		groups = append(groups, head[:2])
	}
	return sign + strings.Join(groups, ",") + "," + tail
}

// closestCheaper returns the most expensive material of the same category that is
// still strictly cheaper than current.
func (c *Catalog) closestCheaper(current MaterialRate) (MaterialRate, bool) {
	var candidates []MaterialRate
	for _, r := range c.rates {
		if r.Category == current.Category && r.PricePerUnitArea < current.PricePerUnitArea {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return MaterialRate{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].PricePerUnitArea > candidates[j].PricePerUnitArea
	})
	return candidates[0], true
}

// SuggestAlternatives runs the advisor against the default catalog.
func SuggestAlternatives(items []EstimatorItem) []string {
	return defaultCatalog.SuggestAlternatives(items)
}
