// Package catalog loads the embedded navigation, content and question catalog.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/parcours/internal/model"
)

//go:embed catalog.yaml
var embedded []byte

// GeneralBank names the question bank used when no mode matches.
const GeneralBank = "general"

// Catalog is the static, read-only data set of the application.
type Catalog struct {
	Navigation []model.NavigationItem `yaml:"navigation"`
	Library    []model.Content        `yaml:"content"`
	Questions  map[string][]string    `yaml:"questions"`

	byID map[string]model.Content
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(embedded)
}

// Parse decodes a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if len(c.Navigation) == 0 {
		return nil, fmt.Errorf("catalog has no navigation items")
	}
	seen := make(map[string]struct{}, len(c.Navigation))
	for _, item := range c.Navigation {
		if item.ID == "" {
			return nil, fmt.Errorf("navigation item without id")
		}
		if _, ok := seen[item.ID]; ok {
			return nil, fmt.Errorf("duplicate navigation item %q", item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	c.byID = make(map[string]model.Content, len(c.Library))
	for _, entry := range c.Library {
		entry.Body = strings.TrimSpace(entry.Body)
		c.byID[entry.ID] = entry
	}
	if c.Questions == nil {
		c.Questions = map[string][]string{}
	}
	return &c, nil
}

// Items returns a copy of the navigation items in catalog order.
func (c *Catalog) Items() []model.NavigationItem {
	return append([]model.NavigationItem(nil), c.Navigation...)
}

// Item looks up a navigation item by id.
func (c *Catalog) Item(id string) (model.NavigationItem, bool) {
	for _, item := range c.Navigation {
		if item.ID == id {
			return item, true
		}
	}
	return model.NavigationItem{}, false
}

// Content returns the entry for id, or a generic placeholder titled with
// fallbackTitle when the id is unknown.
func (c *Catalog) Content(id, fallbackTitle string) model.Content {
	if entry, ok := c.byID[id]; ok && entry.Body != "" {
		return entry
	}
	if fallbackTitle == "" {
		fallbackTitle = "Contenu"
	}
	return model.Content{
		ID:    id,
		Title: fallbackTitle,
		Body:  "Ce contenu vous guide dans votre parcours d'apprentissage.\nContinuez pour découvrir la suite de votre parcours personnalisé.",
	}
}

// Bank returns the question bank for mode, or the general bank.
func (c *Catalog) Bank(mode string) []string {
	if qs, ok := c.Questions[strings.ToLower(mode)]; ok && len(qs) > 0 {
		return append([]string(nil), qs...)
	}
	return append([]string(nil), c.Questions[GeneralBank]...)
}
