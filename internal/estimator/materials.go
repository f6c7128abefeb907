package estimator

// Category groups materials that can substitute for one another.
type Category string

const (
	CategoryWood       Category = "wood"
	CategoryPlywood    Category = "plywood"
	CategoryEngineered Category = "engineered"
)

// MaterialRate is the price per square foot of a timber or plywood product.
type MaterialRate struct {
	Key              string   `json:"key"`
	PricePerUnitArea float64  `json:"pricePerUnitArea"`
	Category         Category `json:"category"`
}

var defaultRates = []MaterialRate{
	{Key: "burmaTeak", PricePerUnitArea: 3500, Category: CategoryWood},
	{Key: "ghanaTeak", PricePerUnitArea: 2800, Category: CategoryWood},
	{Key: "brazilianTeak", PricePerUnitArea: 3200, Category: CategoryWood},
	{Key: "indianSal", PricePerUnitArea: 1600, Category: CategoryWood},
	{Key: "oakWood", PricePerUnitArea: 2900, Category: CategoryWood},
	{Key: "mapleWood", PricePerUnitArea: 3100, Category: CategoryWood},
	{Key: "cherryWood", PricePerUnitArea: 3400, Category: CategoryWood},
	{Key: "mahoganyWood", PricePerUnitArea: 3800, Category: CategoryWood},
	{Key: "pineWood", PricePerUnitArea: 1200, Category: CategoryWood},
	{Key: "cedarWood", PricePerUnitArea: 2600, Category: CategoryWood},
	{Key: "bambooWood", PricePerUnitArea: 1800, Category: CategoryWood},
	{Key: "centuryPlySainik", PricePerUnitArea: 2200, Category: CategoryPlywood},
	{Key: "marinePlywood", PricePerUnitArea: 2600, Category: CategoryPlywood},
	{Key: "laminatedPlywood", PricePerUnitArea: 1800, Category: CategoryPlywood},
	{Key: "waterproofPlywood", PricePerUnitArea: 2400, Category: CategoryPlywood},
}

var defaultDisplayNames = map[string]string{
	"burmaTeak":         "Burma Teak",
	"ghanaTeak":         "Ghana Teak",
	"brazilianTeak":     "Brazilian Teak",
	"indianSal":         "Indian Sal",
	"oakWood":           "Oak Wood",
	"mapleWood":         "Maple Wood",
	"cherryWood":        "Cherry Wood",
	"mahoganyWood":      "Mahogany Wood",
	"pineWood":          "Pine Wood",
	"cedarWood":         "Cedar Wood",
	"bambooWood":        "Bamboo Wood",
	"centuryPlySainik":  "Century Ply Sainik",
	"marinePlywood":     "Marine Plywood",
	"laminatedPlywood":  "Laminated Plywood",
	"waterproofPlywood": "Waterproof Plywood",
}

// Catalog is a read-only material table. It is built once and shared by reference;
// there is no mutation API.
type Catalog struct {
	rates []MaterialRate
	byKey map[string]MaterialRate
	names map[string]string
}

// NewCatalog copies rates and display names into a new immutable Catalog.
// When two rates share a key the first one wins, matching a linear search.
func NewCatalog(rates []MaterialRate, displayNames map[string]string) *Catalog {
	c := &Catalog{
		rates: make([]MaterialRate, len(rates)),
		byKey: make(map[string]MaterialRate, len(rates)),
		names: make(map[string]string, len(displayNames)),
	}
	copy(c.rates, rates)
	for _, r := range rates {
		if _, ok := c.byKey[r.Key]; !ok {
			c.byKey[r.Key] = r
		}
	}
	for k, v := range displayNames {
		c.names[k] = v
	}
	return c
}

var defaultCatalog = NewCatalog(defaultRates, defaultDisplayNames)

// DefaultCatalog returns the shop's standard material table.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// Lookup returns the rate for a material key.
func (c *Catalog) Lookup(key string) (MaterialRate, bool) {
	r, ok := c.byKey[key]
	return r, ok
}

// Rates returns a copy of the table in declaration order.
func (c *Catalog) Rates() []MaterialRate {
	out := make([]MaterialRate, len(c.rates))
	copy(out, c.rates)
	return out
}

// DisplayName returns the human readable material name, or key itself when unmapped.
func (c *Catalog) DisplayName(key string) string {
	if name, ok := c.names[key]; ok {
		return name
	}
	return key
}

// GetMaterialDisplayName resolves key against the default catalog.
func GetMaterialDisplayName(key string) string {
	return defaultCatalog.DisplayName(key)
}
