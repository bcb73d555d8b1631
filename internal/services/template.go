package services

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/simucrowd/simucrowd-backend/internal/platform/logger"
	"github.com/simucrowd/simucrowd-backend/internal/types"
)

//go:embed templates.yaml
var templateCatalogYAML []byte

type QuickFilter struct {
	ID    string   `yaml:"id" json:"id"`
	Label string   `yaml:"label" json:"label"`
	Icon  string   `yaml:"icon" json:"icon"`
	Tags  []string `yaml:"tags" json:"tags"`
}

type TemplateGroup struct {
	Name  string                     `yaml:"name" json:"name"`
	Icon  string                     `yaml:"icon" json:"icon"`
	Items []types.TemplateDefinition `yaml:"items" json:"items"`
}

type TemplateCategory struct {
	ID       string          `yaml:"id" json:"id"`
	Title    string          `yaml:"title" json:"title"`
	Subtitle string          `yaml:"subtitle" json:"subtitle"`
	Groups   []TemplateGroup `yaml:"groups" json:"groups"`
}

type templateCatalog struct {
	QuickFilters []QuickFilter      `yaml:"quick_filters"`
	Categories   []TemplateCategory `yaml:"categories"`
}

// TemplateService serves the methodology catalog. The catalog is compiled
// in from YAML and read-only at runtime, so lookups need no locking.
type TemplateService interface {
	Catalog() []TemplateCategory
	QuickFilters() []QuickFilter
	Get(id string) (types.TemplateDefinition, error)
}

type templateService struct {
	log     *logger.Logger
	catalog templateCatalog
	byID    map[string]types.TemplateDefinition
}

func NewTemplateService(log *logger.Logger) (TemplateService, error) {
	var catalog templateCatalog
	if err := yaml.Unmarshal(templateCatalogYAML, &catalog); err != nil {
		return nil, fmt.Errorf("parse template catalog: %w", err)
	}

	byID := make(map[string]types.TemplateDefinition)
	for _, cat := range catalog.Categories {
		for _, group := range cat.Groups {
			for _, item := range group.Items {
				if _, dup := byID[item.ID]; dup {
					return nil, fmt.Errorf("duplicate template id %q in catalog", item.ID)
				}
				byID[item.ID] = item
			}
		}
	}
	if len(byID) == 0 {
		return nil, fmt.Errorf("template catalog is empty")
	}

	serviceLog := log.With("service", "TemplateService")
	serviceLog.Info("Loaded template catalog", "templates", len(byID), "categories", len(catalog.Categories))

	return &templateService{
		log:     serviceLog,
		catalog: catalog,
		byID:    byID,
	}, nil
}

func (ts *templateService) Catalog() []TemplateCategory {
	return ts.catalog.Categories
}

func (ts *templateService) QuickFilters() []QuickFilter {
	return ts.catalog.QuickFilters
}

func (ts *templateService) Get(id string) (types.TemplateDefinition, error) {
	tpl, ok := ts.byID[id]
	if !ok {
		return types.TemplateDefinition{}, fmt.Errorf("unknown template %q", id)
	}
	return tpl, nil
}
