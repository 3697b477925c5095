package params

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// StringList is a list of filter values that also unmarshals from a bare
// scalar, so callers may supply either "CCLW" or ["CCLW"].
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("string or list of strings expected: %w", err)
	}
	*l = StringList(many)
	return nil
}

func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}
		*l = StringList{single}
		return nil
	}
	var many []string
	if err := node.Decode(&many); err != nil {
		return fmt.Errorf("string or list of strings expected: %w", err)
	}
	*l = StringList(many)
	return nil
}

// KeywordFilters restricts results to the given facet values. Values within
// one field are OR'd, fields are AND'd against each other.
type KeywordFilters struct {
	Geographies StringList `json:"geographies,omitempty" yaml:"geographies,omitempty"`
	Categories  StringList `json:"categories,omitempty" yaml:"categories,omitempty"`
	Languages   StringList `json:"languages,omitempty" yaml:"languages,omitempty"`
	Sources     StringList `json:"sources,omitempty" yaml:"sources,omitempty"`
}

// FieldValues is one keyword filter field resolved to its engine field name.
type FieldValues struct {
	Field  string
	Values []string
}

// fieldValues returns the populated filter fields in a fixed order so that
// compiled queries are deterministic.
func (f KeywordFilters) fieldValues() []FieldValues {
	var out []FieldValues
	for _, fv := range []FieldValues{
		{Field: fieldGeography, Values: f.Geographies},
		{Field: fieldCategory, Values: f.Categories},
		{Field: fieldLanguage, Values: f.Languages},
		{Field: fieldSource, Values: f.Sources},
	} {
		if len(fv.Values) > 0 {
			out = append(out, fv)
		}
	}
	return out
}

// YearRange bounds the family publication year. Either side may be nil.
type YearRange struct {
	Start *int `json:"start" yaml:"start"`
	End   *int `json:"end" yaml:"end"`
}
