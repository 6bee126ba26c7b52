package domain

// Rule categories as named in rules.yml and license front matter.
const (
	CategoryPermissions = "permissions"
	CategoryConditions  = "conditions"
	CategoryLimitations = "limitations"
)

// Well-known data file keys.
const (
	RulesDataKey  = "rules.yml"
	FieldsDataKey = "fields.yml"
)

// Categories returns the rule categories in display order.
func Categories() []string {
	return []string{CategoryPermissions, CategoryConditions, CategoryLimitations}
}

// RuleDetail is a rule tag resolved against rules.yml.
type RuleDetail struct {
	Tag         string `json:"tag" yaml:"tag"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
}

// ParsedRules holds the resolved rules of one license, per category.
type ParsedRules struct {
	Permissions []RuleDetail `json:"permissions,omitempty"`
	Conditions  []RuleDetail `json:"conditions,omitempty"`
	Limitations []RuleDetail `json:"limitations,omitempty"`
}

// RulesData is the content of _data/rules.yml.
type RulesData struct {
	Permissions []RuleDetail `json:"permissions" yaml:"permissions"`
	Conditions  []RuleDetail `json:"conditions" yaml:"conditions"`
	Limitations []RuleDetail `json:"limitations" yaml:"limitations"`
}

// Category returns the rule list for a category name, or nil if unknown.
func (r *RulesData) Category(name string) []RuleDetail {
	if r == nil {
		return nil
	}
	switch name {
	case CategoryPermissions:
		return r.Permissions
	case CategoryConditions:
		return r.Conditions
	case CategoryLimitations:
		return r.Limitations
	default:
		return nil
	}
}

// HasTag reports whether any category defines the tag.
func (r *RulesData) HasTag(tag string) bool {
	for _, category := range Categories() {
		for _, rule := range r.Category(category) {
			if rule.Tag == tag {
				return true
			}
		}
	}
	return false
}

// Field describes a placeholder field from _data/fields.yml.
type Field struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}
