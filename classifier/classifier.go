// Package classifier assigns one of the fixed news categories to article
// text by keyword matching.
package classifier

import (
	"strings"

	"github.com/urandom/newsroom/content"
)

// Classifier maps article text to a category. Implementations must be safe
// for concurrent use and must always return a category.
type Classifier interface {
	Classify(text string) content.Category
}

// Rule assigns Category to text containing any of the Keywords.
type Rule struct {
	Category content.Category
	Keywords []string
}

// DefaultRules are evaluated in order, the first matching rule wins.
var DefaultRules = []Rule{
	{content.CategoryUnrest, []string{"terrorism", "protest", "riot"}},
	{content.CategoryDisaster, []string{"disaster", "earthquake"}},
	{content.CategoryPositive, []string{"happy", "uplifting"}},
}

// Keywords is an ordered, first match wins, substring classifier.
type Keywords struct {
	rules    []Rule
	fallback content.Category
}

// New creates a keyword classifier with the given rules, or with
// DefaultRules if none are given. Text matching no rule is classified as
// content.CategoryOthers.
func New(rules ...Rule) Keywords {
	if len(rules) == 0 {
		rules = DefaultRules
	}

	normalized := make([]Rule, len(rules))
	for i, r := range rules {
		normalized[i] = Rule{Category: r.Category, Keywords: make([]string, 0, len(r.Keywords))}
		for _, k := range r.Keywords {
			if k = Normalize(k); k != "" {
				normalized[i].Keywords = append(normalized[i].Keywords, k)
			}
		}
	}

	return Keywords{rules: normalized, fallback: content.CategoryOthers}
}

func (k Keywords) Classify(text string) content.Category {
	text = Normalize(text)

	for _, r := range k.rules {
		for _, keyword := range r.Keywords {
			if strings.Contains(text, keyword) {
				return r.Category
			}
		}
	}

	return k.fallback
}

// Rules returns the normalized rules, in evaluation order.
func (k Keywords) Rules() []Rule {
	rules := make([]Rule, len(k.rules))
	copy(rules, k.rules)

	return rules
}
