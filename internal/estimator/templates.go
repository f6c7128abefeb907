package estimator

import (
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var templatesYAML []byte

// ItemTemplate pre-fills a new EstimatorItem. The first suggested material and the
// first style are the defaults.
type ItemTemplate struct {
	ID                 string     `yaml:"id" json:"id"`
	Name               string     `yaml:"name" json:"name"`
	Type               ItemType   `yaml:"type" json:"type"`
	Description        string     `yaml:"description" json:"description"`
	DefaultDimensions  Dimensions `yaml:"defaultDimensions" json:"defaultDimensions"`
	SuggestedMaterials []string   `yaml:"suggestedMaterials" json:"suggestedMaterials"`
	Styles             []string   `yaml:"styles,omitempty" json:"styles,omitempty"`
	PriceMultiplier    float64    `yaml:"priceMultiplier" json:"priceMultiplier"`
}

const fallbackMaterial = "ghanaTeak"

var builtinTemplates = mustParseTemplates(templatesYAML)

// ParseTemplates decodes a YAML list of item templates.
func ParseTemplates(data []byte) ([]ItemTemplate, error) {
	var templates []ItemTemplate
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("decode item templates: %w", err)
	}
	for i, t := range templates {
		if t.ID == "" {
			return nil, fmt.Errorf("item template %d: id is required", i)
		}
		switch t.Type {
		case ItemDoor, ItemWindow, ItemCustom:
		default:
			return nil, fmt.Errorf("item template %q: unknown type %q", t.ID, t.Type)
		}
	}
	return templates, nil
}

func mustParseTemplates(data []byte) []ItemTemplate {
	templates, err := ParseTemplates(data)
	if err != nil {
		panic(err)
	}
	return templates
}

// Templates returns every built-in template: doors, then windows, then custom.
func Templates() []ItemTemplate {
	out := make([]ItemTemplate, len(builtinTemplates))
	copy(out, builtinTemplates)
	return out
}

// TemplatesByType returns the templates of one item type. Unknown types yield none.
func TemplatesByType(t ItemType) []ItemTemplate {
	var out []ItemTemplate
	for _, tpl := range builtinTemplates {
		if tpl.Type == t {
			out = append(out, tpl)
		}
	}
	return out
}

// Template looks up a built-in template by id.
func Template(id string) (ItemTemplate, bool) {
	for _, tpl := range builtinTemplates {
		if tpl.ID == id {
			return tpl, true
		}
	}
	return ItemTemplate{}, false
}

// NewItemFromTemplate builds a single, unpriced item from tpl.
func NewItemFromTemplate(tpl ItemTemplate) EstimatorItem {
	item := EstimatorItem{
		ID:          uuid.NewString(),
		Type:        tpl.Type,
		Name:        tpl.Name,
		Description: tpl.Description,
		Dimensions:  tpl.DefaultDimensions,
		Material:    fallbackMaterial,
		Finish:      string(FinishNatural),
		Quantity:    1,
	}
	if len(tpl.SuggestedMaterials) > 0 {
		item.Material = tpl.SuggestedMaterials[0]
	}
	if len(tpl.Styles) > 0 {
		item.Style = tpl.Styles[0]
	}
	return item
}

// QuickStartItems suggests a starter list of doors and windows sized to the floor
// area of a home, in square feet.
func QuickStartItems(areaSize float64) []EstimatorItem {
	doors, windows := 7, 8
	doorIDs := []string{"bedroom-door", "main-door", "bathroom-door", "balcony-door"}
	switch {
	case areaSize <= 600:
		doors, windows = 3, 4
		doorIDs = doorIDs[:3]
	case areaSize <= 1000:
		doors, windows = 5, 6
	}

	var items []EstimatorItem
	for _, id := range doorIDs {
		tpl, ok := Template(id)
		if !ok {
			continue
		}
		item := NewItemFromTemplate(tpl)
		if id == "bedroom-door" {
			item.Quantity = max(1, doors-3)
		}
		items = append(items, item)
	}

	for i, id := range []string{"bedroom-window", "living-room-window"} {
		tpl, ok := Template(id)
		if !ok {
			continue
		}
		item := NewItemFromTemplate(tpl)
		item.Quantity = 2
		if i == 0 {
			item.Quantity = max(2, windows-2)
		}
		items = append(items, item)
	}
	return items
}
