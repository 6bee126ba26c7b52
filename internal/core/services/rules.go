package services

import (
	"encoding/json"
	"sort"

	"github.com/custodia-labs/getlicense/internal/core/domain"
)

const (
	ruleNotDescribed  = "Description not found in rules.yml."
	rulesDataMissing  = "Rules data (rules.yml) not available for full description."
	fieldNotDescribed = "No description available"
)

// BuildRules resolves the rule tags of a license against rules.yml.
// Unknown tags keep the tag as their label. With rules data available the
// details of each category are sorted by label.
func BuildRules(meta domain.LicenseMetadata, rules *domain.RulesData) *domain.ParsedRules {
	return &domain.ParsedRules{
		Permissions: buildCategory(meta.Permissions, domain.CategoryPermissions, rules),
		Conditions:  buildCategory(meta.Conditions, domain.CategoryConditions, rules),
		Limitations: buildCategory(meta.Limitations, domain.CategoryLimitations, rules),
	}
}

func buildCategory(tags []string, category string, rules *domain.RulesData) []domain.RuleDetail {
	if len(tags) == 0 {
		return nil
	}
	details := make([]domain.RuleDetail, 0, len(tags))

	if rules == nil {
		for _, tag := range tags {
			details = append(details, domain.RuleDetail{Tag: tag, Label: tag, Description: rulesDataMissing})
		}
		return details
	}

	known := make(map[string]domain.RuleDetail)
	for _, rule := range rules.Category(category) {
		known[rule.Tag] = rule
	}
	for _, tag := range tags {
		if rule, ok := known[tag]; ok {
			details = append(details, rule)
			continue
		}
		details = append(details, domain.RuleDetail{Tag: tag, Label: tag, Description: ruleNotDescribed})
	}
	sort.SliceStable(details, func(i, j int) bool {
		return details[i].Label < details[j].Label
	})
	return details
}

// DecodeRules reads rules.yml from the data namespace.
// It returns nil when the file is absent or has an unexpected shape.
func DecodeRules(data map[string]domain.Record) *domain.RulesData {
	rec, ok := data[domain.RulesDataKey]
	if !ok || rec.Data == nil {
		return nil
	}
	var rules domain.RulesData
	if err := decodeData(rec.Data, &rules); err != nil {
		return nil
	}
	return &rules
}

// DecodeFields reads fields.yml from the data namespace.
func DecodeFields(data map[string]domain.Record) []domain.Field {
	rec, ok := data[domain.FieldsDataKey]
	if !ok || rec.Data == nil {
		return nil
	}
	var fields []domain.Field
	if err := decodeData(rec.Data, &fields); err != nil {
		return nil
	}
	return fields
}

// decodeData converts a generic data value into a typed struct.
func decodeData(value, out any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, out)
}
