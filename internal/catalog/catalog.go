// Package catalog holds the static planner configuration: projection horizons,
// savings tiers and the investment categories on offer.
//
// A Catalog is compiled once from TOML and never modified afterwards.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/mmynk/finplanner/internal/models"
)

//go:embed default.toml
var defaultTOML []byte

// Tier is a savings bucket bound to a range of projected totals.
type Tier struct {
	Name models.SavingsTier

	// Range is the human-readable range label (e.g., "₹15,000 - ₹50,000").
	Range string

	// MaxTotal is the inclusive upper bound. Invalid for the last, unbounded tier.
	MaxTotal decimal.NullDecimal

	Products []string
}

// Contains reports whether total falls at or below the tier's upper bound.
func (t Tier) Contains(total decimal.Decimal) bool {
	return !t.MaxTotal.Valid || total.LessThanOrEqual(t.MaxTotal.Decimal)
}

// Catalog is the compiled, read-only planner configuration.
type Catalog struct {
	currency   string
	horizons   []int
	fraction   decimal.Decimal
	tiers      []Tier
	categories []models.InvestmentCategory
}

// file mirrors the TOML layout.
type file struct {
	Currency             string         `toml:"currency"`
	Horizons             []int          `toml:"horizons"`
	ContributionFraction string         `toml:"contribution_fraction"`
	Tiers                []tierFile     `toml:"tiers"`
	Categories           []categoryFile `toml:"categories"`
}

type tierFile struct {
	Name     string   `toml:"name"`
	Range    string   `toml:"range"`
	MaxTotal string   `toml:"max_total"`
	Products []string `toml:"products"`
}

type categoryFile struct {
	Key         string   `toml:"key"`
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Link        string   `toml:"link"`
	Ads         []string `toml:"ads"`
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := Parse(defaultTOML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default is invalid: %v", err))
	}
	return c
})

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog()
}

// Load reads a catalog from a TOML file. An empty path returns the default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse compiles and validates a TOML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return compile(f)
}

func compile(f file) (*Catalog, error) {
	c := &Catalog{currency: f.Currency}

	if len(f.Horizons) == 0 {
		return nil, fmt.Errorf("catalog: at least one horizon is required")
	}
	seen := make(map[int]bool, len(f.Horizons))
	for _, h := range f.Horizons {
		if h <= 0 {
			return nil, fmt.Errorf("catalog: horizon must be positive, got %d", h)
		}
		if seen[h] {
			return nil, fmt.Errorf("catalog: duplicate horizon %d", h)
		}
		seen[h] = true
	}
	c.horizons = slices.Clone(f.Horizons)

	fraction, err := decimal.NewFromString(f.ContributionFraction)
	if err != nil {
		return nil, fmt.Errorf("catalog: contribution_fraction: %w", err)
	}
	if !fraction.IsPositive() || fraction.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("catalog: contribution_fraction must be in (0, 1], got %s", fraction)
	}
	c.fraction = fraction

	if len(f.Tiers) == 0 {
		return nil, fmt.Errorf("catalog: at least one tier is required")
	}
	for i, tf := range f.Tiers {
		if tf.Name == "" {
			return nil, fmt.Errorf("catalog: tier %d has no name", i)
		}
		if len(tf.Products) == 0 {
			return nil, fmt.Errorf("catalog: tier %q has no products", tf.Name)
		}
		tier := Tier{
			Name:     models.SavingsTier(tf.Name),
			Range:    tf.Range,
			Products: slices.Clone(tf.Products),
		}
		last := i == len(f.Tiers)-1
		switch {
		case tf.MaxTotal == "" && !last:
			return nil, fmt.Errorf("catalog: tier %q needs max_total (only the last tier is unbounded)", tf.Name)
		case tf.MaxTotal != "" && last:
			return nil, fmt.Errorf("catalog: last tier %q must not set max_total", tf.Name)
		case tf.MaxTotal != "":
			bound, err := decimal.NewFromString(tf.MaxTotal)
			if err != nil {
				return nil, fmt.Errorf("catalog: tier %q max_total: %w", tf.Name, err)
			}
			if i > 0 && !bound.GreaterThan(c.tiers[i-1].MaxTotal.Decimal) {
				return nil, fmt.Errorf("catalog: tier %q max_total must exceed the previous tier's", tf.Name)
			}
			tier.MaxTotal = decimal.NullDecimal{Decimal: bound, Valid: true}
		}
		c.tiers = append(c.tiers, tier)
	}

	keys := make(map[string]bool, len(f.Categories))
	for i, cf := range f.Categories {
		if cf.Key == "" {
			return nil, fmt.Errorf("catalog: category %d has no key", i)
		}
		if keys[cf.Key] {
			return nil, fmt.Errorf("catalog: duplicate category %q", cf.Key)
		}
		keys[cf.Key] = true
		c.categories = append(c.categories, models.InvestmentCategory{
			Key:         cf.Key,
			Title:       cf.Title,
			Description: cf.Description,
			Link:        cf.Link,
			Ads:         slices.Clone(cf.Ads),
		})
	}

	return c, nil
}

// Currency returns the display currency symbol. May be empty.
func (c *Catalog) Currency() string { return c.currency }

// Horizons returns the projection horizons in months, in declared order.
func (c *Catalog) Horizons() []int { return slices.Clone(c.horizons) }

// ContributionFraction is the share of the remaining balance suggested
// for each investment category.
func (c *Catalog) ContributionFraction() decimal.Decimal { return c.fraction }

// Tiers returns the savings tiers in ascending order. Product slices are
// shared with the catalog and must not be modified.
func (c *Catalog) Tiers() []Tier { return slices.Clone(c.tiers) }

// Tier looks up a tier by name.
func (c *Catalog) Tier(name models.SavingsTier) (Tier, bool) {
	for _, t := range c.tiers {
		if t.Name == name {
			return t, true
		}
	}
	return Tier{}, false
}

// Categories returns copies of the investment categories in declared order.
func (c *Catalog) Categories() []models.InvestmentCategory {
	out := make([]models.InvestmentCategory, len(c.categories))
	for i, cat := range c.categories {
		out[i] = cloneCategory(cat)
	}
	return out
}

// Category looks up an investment category by key.
func (c *Catalog) Category(key string) (models.InvestmentCategory, bool) {
	for _, cat := range c.categories {
		if cat.Key == key {
			return cloneCategory(cat), true
		}
	}
	return models.InvestmentCategory{}, false
}

func cloneCategory(cat models.InvestmentCategory) models.InvestmentCategory {
	cat.Ads = slices.Clone(cat.Ads)
	return cat
}
