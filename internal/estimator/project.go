package estimator

const (
	BucketDoors   = "doors"
	BucketWindows = "windows"
	BucketCustom  = "custom"
)

// ProjectEstimate is a full projection of a set of items. It is recomputed wholesale
// whenever items, project type or area change.
type ProjectEstimate struct {
	ProjectType string          `json:"projectType"`
	AreaSize    float64         `json:"areaSize"`
	Items       []EstimatorItem `json:"items"`
	// TotalCost is the final figure after the project multiplier and bulk discount.
	TotalCost       float64            `json:"totalCost"`
	Subtotal        float64            `json:"subtotal"`
	AdjustedTotal   float64            `json:"adjustedTotal"`
	DiscountRate    float64            `json:"discountRate"`
	Breakdown       map[string]float64 `json:"breakdown"`
	MaterialSummary map[string]float64 `json:"materialSummary"`
}

// ProjectEstimate prices every item, groups totals per category and applies the
// project multiplier followed by the bulk discount. items is not modified.
func (c *Catalog) ProjectEstimate(projectType string, areaSize float64, items []EstimatorItem) ProjectEstimate {
	priced := make([]EstimatorItem, len(items))
	for i, item := range items {
		item.UnitPrice = c.UnitPrice(item)
		item.TotalPrice = c.ItemPrice(item)
		priced[i] = item
	}

	breakdown := map[string]float64{
		BucketDoors:   0,
		BucketWindows: 0,
		BucketCustom:  0,
	}
	summary := make(map[string]float64)

	var subtotal float64
	for _, item := range priced {
		breakdown[bucketFor(item.Type)] += item.TotalPrice
		summary[c.DisplayName(item.Material)] += ItemMeasure(item) * float64(item.Quantity)
		subtotal += item.TotalPrice
	}

	adjusted := roundHalfUp(subtotal * ProjectMultiplier(projectType))
	total, rate := bulkDiscount(adjusted)

	return ProjectEstimate{
		ProjectType:     projectType,
		AreaSize:        areaSize,
		Items:           priced,
		TotalCost:       total,
		Subtotal:        subtotal,
		AdjustedTotal:   adjusted,
		DiscountRate:    rate,
		Breakdown:       breakdown,
		MaterialSummary: summary,
	}
}

// ComputeProjectEstimate aggregates items against the default catalog.
func ComputeProjectEstimate(projectType string, areaSize float64, items []EstimatorItem) ProjectEstimate {
	return defaultCatalog.ProjectEstimate(projectType, areaSize, items)
}

// DetailedItemEstimate is the item builder estimate. It is kept apart from
// QuickQuizEstimate; the two formulas are not expected to agree.
func DetailedItemEstimate(projectType string, areaSize float64, items []EstimatorItem) ProjectEstimate {
	return ComputeProjectEstimate(projectType, areaSize, items)
}

func bucketFor(t ItemType) string {
	if t == ItemCustom {
		return BucketCustom
	}
	return string(t) + "s"
}
