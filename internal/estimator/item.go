package estimator

// ItemType is the kind of line item a customer builds.
type ItemType string

const (
	ItemDoor   ItemType = "door"
	ItemWindow ItemType = "window"
	ItemCustom ItemType = "custom"
)

// Unit is the length unit dimensions are given in. Rates are per square foot.
type Unit string

const (
	UnitFeet Unit = "ft"
	UnitInch Unit = "inch"
)

// Dimensions of an item. Depth is only used for custom items; zero means absent.
type Dimensions struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	Depth  float64 `json:"depth,omitempty" yaml:"depth,omitempty"`
	Unit   Unit    `json:"unit" yaml:"unit"`
}

// EstimatorItem is one line of a detailed estimate. UnitPrice and TotalPrice are
// derived and overwritten every time an estimate is computed.
type EstimatorItem struct {
	ID          string     `json:"id"`
	Type        ItemType   `json:"type"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Dimensions  Dimensions `json:"dimensions"`
	Material    string     `json:"material"`
	Style       string     `json:"style,omitempty"`
	Finish      string     `json:"finish,omitempty"`
	Quantity    int        `json:"quantity"`
	UnitPrice   float64    `json:"unitPrice"`
	TotalPrice  float64    `json:"totalPrice"`
}

// ItemMeasure returns the priced quantity of a single unit of item: square feet for
// doors and windows, cubic feet for custom items that carry a depth.
func ItemMeasure(item EstimatorItem) float64 {
	d := item.Dimensions
	measure := d.Width * d.Height
	if d.Unit == UnitInch {
		measure /= 144
	}

	if item.Type == ItemCustom && d.Depth != 0 {
		depth := d.Depth
		if d.Unit == UnitInch {
			depth /= 12
		}
		measure *= depth
	}
	return measure
}

// ItemPrice prices item at its quantity, rounded to whole currency units.
// An unknown material prices at 0; there is no error path.
func (c *Catalog) ItemPrice(item EstimatorItem) float64 {
	rate, ok := c.Lookup(item.Material)
	if !ok {
		return 0
	}

	price := ItemMeasure(item) * rate.PricePerUnitArea
	price *= StyleMultiplier(item.Style)
	price *= FinishMultiplier(item.Finish)
	price *= TypeSurcharge(item.Type)
	price += price * laborRate

	return roundHalfUp(price * float64(item.Quantity))
}

// UnitPrice prices a single unit of item regardless of its quantity.
func (c *Catalog) UnitPrice(item EstimatorItem) float64 {
	item.Quantity = 1
	return roundHalfUp(c.ItemPrice(item))
}

// ComputeItemPrice prices item against the default catalog.
func ComputeItemPrice(item EstimatorItem) float64 {
	return defaultCatalog.ItemPrice(item)
}
