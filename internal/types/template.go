package types

// TemplateDefinition describes one methodology from the template catalog.
// Templates live in the YAML catalog, not the database; a session stores
// only the template id.
type TemplateDefinition struct {
  ID           string           `yaml:"id" json:"id"`
  Title        string           `yaml:"title" json:"title"`
  Description  string           `yaml:"description" json:"description"`
  Modes        []ExperimentMode `yaml:"modes" json:"modes"`
  Icon         string           `yaml:"icon" json:"icon"`
  Placeholder  string           `yaml:"placeholder" json:"placeholder"`
  Inputs       []string         `yaml:"inputs" json:"inputs,omitempty"`
  Outputs      []string         `yaml:"outputs" json:"outputs,omitempty"`
  Tags         []string         `yaml:"tags" json:"tags,omitempty"`
  IsPopular    bool             `yaml:"is_popular" json:"is_popular,omitempty"`
  TimeEstimate string           `yaml:"time_estimate" json:"time_estimate,omitempty"`
}

// SupportsMode reports whether the template offers the given experiment mode.
func (t TemplateDefinition) SupportsMode(mode ExperimentMode) bool {
  for _, m := range t.Modes {
    if m == mode {
      return true
    }
  }
  return false
}
