package intake

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Option is one selectable value and its display label.
type Option struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Catalog holds the closed option lists offered by the intake form.
type Catalog struct {
	Industries          []Option `yaml:"industries" json:"industries"`
	EntityTypes         []Option `yaml:"entity_types" json:"entity_types"`
	Countries           []Option `yaml:"countries" json:"countries"`
	AccountingPlatforms []Option `yaml:"accounting_platforms" json:"accounting_platforms"`
	TransactionVolumes  []Option `yaml:"transaction_volumes" json:"transaction_volumes"`
	Services            []Option `yaml:"services" json:"services"`
}

// LoadCatalog parses a catalog document. Every list must be non-empty.
func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	lists := map[string][]Option{
		"industries":           c.Industries,
		"entity_types":         c.EntityTypes,
		"countries":            c.Countries,
		"accounting_platforms": c.AccountingPlatforms,
		"transaction_volumes":  c.TransactionVolumes,
		"services":             c.Services,
	}
	for name, opts := range lists {
		if len(opts) == 0 {
			return nil, fmt.Errorf("parse catalog: %s is empty", name)
		}
	}
	return &c, nil
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(catalogYAML)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) options(f Field) []Option {
	switch f {
	case FieldIndustry:
		return c.Industries
	case FieldEntityType:
		return c.EntityTypes
	case FieldCountry:
		return c.Countries
	case FieldAccountingPlatform:
		return c.AccountingPlatforms
	case FieldTransactionVolume:
		return c.TransactionVolumes
	}
	return nil
}

// Allows reports whether value may be stored in f. Free-text fields and
// empty values are always allowed.
func (c *Catalog) Allows(f Field, value string) bool {
	opts := c.options(f)
	if opts == nil || value == "" {
		return true
	}
	return contains(opts, value)
}

// AllowsService reports whether code is a known service code.
func (c *Catalog) AllowsService(code string) bool {
	return contains(c.Services, code)
}

func contains(opts []Option, value string) bool {
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}
