package relevance

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var keywordsYAML []byte

// keywordRules is the parsed form of the keyword rule file.
type keywordRules struct {
	Highly   []string `yaml:"highly"`
	Probably []string `yaml:"probably"`
}

// KeywordHeuristic tiers tests by substring match against keyword lists.
// The zero-config constructor uses the embedded default rules.
type KeywordHeuristic struct {
	rules keywordRules
}

// NewKeywordHeuristic loads the embedded default keyword rules.
func NewKeywordHeuristic() (*KeywordHeuristic, error) {
	return NewKeywordHeuristicFromYAML(keywordsYAML)
}

// NewKeywordHeuristicFromYAML builds a heuristic from a custom rule file.
func NewKeywordHeuristicFromYAML(data []byte) (*KeywordHeuristic, error) {
	var rules keywordRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse keyword rules: %w", err)
	}
	if len(rules.Highly) == 0 && len(rules.Probably) == 0 {
		return nil, fmt.Errorf("keyword rules are empty")
	}
	return &KeywordHeuristic{rules: rules}, nil
}

func (h *KeywordHeuristic) Name() string { return "keyword" }

// TestPriorities assigns each test to the first tier whose keyword list
// matches its lowercased identifier. Input order is preserved within tiers.
func (h *KeywordHeuristic) TestPriorities(tests []string) (*TestPrioritizations, error) {
	var highly, probably, unranked []string
	for _, test := range tests {
		lower := strings.ToLower(test)
		switch {
		case containsAny(lower, h.rules.Highly):
			highly = append(highly, test)
		case containsAny(lower, h.rules.Probably):
			probably = append(probably, test)
		default:
			unranked = append(unranked, test)
		}
	}
	return New(highly, probably, unranked)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
