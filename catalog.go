package reel

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrDuplicateID is returned when a catalog contains two categories or two
// stories with the same id.
var ErrDuplicateID = errors.New("duplicate id")

// FormFactor tags an image with the device class it is designed for.
type FormFactor string

const (
	FormFactorAny     FormFactor = "any"
	FormFactorMobile  FormFactor = "mobile"
	FormFactorDesktop FormFactor = "desktop"
)

// Image is a reference to a story image.
type Image struct {
	URL        string     `yaml:"url" json:"url"`
	FormFactor FormFactor `yaml:"form_factor" json:"form_factor"`
}

// Story is a single partner item. Stories are immutable once loaded.
type Story struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Images      []Image  `yaml:"images,omitempty" json:"images,omitempty"`
	CategoryID  string   `yaml:"category_id,omitempty" json:"category_id,omitempty"`
	Logo        string   `yaml:"logo,omitempty" json:"logo,omitempty"`
	Countries   []string `yaml:"countries,omitempty" json:"countries,omitempty"`
}

// Category groups stories under an icon. Selecting a category opens an
// overview entry distinct from its children.
type Category struct {
	ID         string  `yaml:"id" json:"id"`
	Name       string  `yaml:"name" json:"name"`
	Icon       string  `yaml:"icon,omitempty" json:"icon,omitempty"`
	Background string  `yaml:"background,omitempty" json:"background,omitempty"`
	Stories    []Story `yaml:"stories,omitempty" json:"stories,omitempty"`
}

// Catalog is a source snapshot: an ordered list of categories.
type Catalog struct {
	Categories []Category `yaml:"categories" json:"categories"`
}

// LoadCatalog reads a YAML or JSON catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes YAML or JSON catalog data. Stories without a category
// id inherit the id of the category they are listed under.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	if err := cat.normalize(); err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return &cat, nil
}

func (c *Catalog) normalize() error {
	categories := make(map[string]struct{}, len(c.Categories))
	stories := make(map[string]struct{})
	for i := range c.Categories {
		cat := &c.Categories[i]
		if strings.TrimSpace(cat.ID) == "" {
			return fmt.Errorf("category %d id is required", i)
		}
		if _, ok := categories[cat.ID]; ok {
			return fmt.Errorf("%w: category %q", ErrDuplicateID, cat.ID)
		}
		categories[cat.ID] = struct{}{}

		for j := range cat.Stories {
			st := &cat.Stories[j]
			if strings.TrimSpace(st.ID) == "" {
				return fmt.Errorf("category %q story %d id is required", cat.ID, j)
			}
			if _, ok := stories[st.ID]; ok {
				return fmt.Errorf("%w: story %q", ErrDuplicateID, st.ID)
			}
			stories[st.ID] = struct{}{}
			if st.CategoryID == "" {
				st.CategoryID = cat.ID
			}
			for k := range st.Images {
				if st.Images[k].FormFactor == "" {
					st.Images[k].FormFactor = FormFactorAny
				}
			}
		}
	}
	return nil
}

// FilterCountry returns a new snapshot holding only the stories available in
// the given country. Stories with no country list are available everywhere.
// Categories are kept even when all their stories are filtered out. An empty
// code returns a copy of the full catalog.
func (c *Catalog) FilterCountry(code string) *Catalog {
	out := &Catalog{Categories: make([]Category, 0, len(c.Categories))}
	for _, cat := range c.Categories {
		filtered := cat
		filtered.Stories = nil
		for _, st := range cat.Stories {
			if code == "" || len(st.Countries) == 0 || slices.ContainsFunc(st.Countries, func(s string) bool {
				return strings.EqualFold(s, code)
			}) {
				filtered.Stories = append(filtered.Stories, st)
			}
		}
		out.Categories = append(out.Categories, filtered)
	}
	return out
}
