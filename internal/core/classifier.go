package core

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FallbackCategory is returned when no rule matches.
const FallbackCategory = "Other"

type (
	// CategoryRule maps a category to the keywords that select it.
	CategoryRule struct {
		Name     string   `yaml:"name"`
		Keywords []string `yaml:"keywords"`
	}

	// Classifier infers a category from a free-text name. Rules are checked
	// in order and the first rule with a keyword contained in the name wins.
	Classifier struct {
		rules    []CategoryRule
		fallback string
	}

	rulesFile struct {
		Fallback   string         `yaml:"fallback"`
		Categories []CategoryRule `yaml:"categories"`
	}
)

// DefaultRules returns the built-in keyword sets in priority order.
// "uber" sits in both Travel and Bills; Travel is checked first.
func DefaultRules() []CategoryRule {
	return []CategoryRule{
		{Name: "Food", Keywords: []string{"pizza", "burger", "snack", "food", "restaurant"}},
		{Name: "Travel", Keywords: []string{"bus", "taxi", "uber", "train", "fuel"}},
		{Name: "Shopping", Keywords: []string{"shirt", "jeans", "shoe", "cloth", "shopping"}},
		{Name: "Bills", Keywords: []string{"bills", "electricity", "uber", "wifi", "mobile"}},
	}
}

var defaultClassifier = mustClassifier(DefaultRules(), FallbackCategory)

// Classify runs the built-in rules.
func Classify(name string) string {
	return defaultClassifier.Classify(name)
}

// NewClassifier validates rules and lower-cases their keywords.
func NewClassifier(rules []CategoryRule, fallback string) (*Classifier, error) {
	if strings.TrimSpace(fallback) == "" {
		fallback = FallbackCategory
	}
	out := make([]CategoryRule, 0, len(rules))
	for i, r := range rules {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: rule %d has no name", ErrInvalidInput, i)
		}
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				kws = append(kws, kw)
			}
		}
		if len(kws) == 0 {
			return nil, fmt.Errorf("%w: rule %q has no keywords", ErrInvalidInput, name)
		}
		out = append(out, CategoryRule{Name: name, Keywords: kws})
	}
	return &Classifier{rules: out, fallback: strings.TrimSpace(fallback)}, nil
}

func mustClassifier(rules []CategoryRule, fallback string) *Classifier {
	c, err := NewClassifier(rules, fallback)
	if err != nil {
		panic(err)
	}
	return c
}

// LoadClassifier reads a YAML rules file. An empty path yields the built-in rules.
//
//	fallback: Other
//	categories:
//	  - name: Food
//	    keywords: [pizza, burger]
func LoadClassifier(path string) (*Classifier, error) {
	if path == "" {
		return mustClassifier(DefaultRules(), FallbackCategory), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category rules %s: %w", path, err)
	}
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parse category rules %s: %v", ErrInvalidInput, path, err)
	}
	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("%w: category rules %s define no categories", ErrInvalidInput, path)
	}
	return NewClassifier(f.Categories, f.Fallback)
}

func (c *Classifier) Classify(name string) string {
	lower := strings.ToLower(name)
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Name
			}
		}
	}
	return c.fallback
}

// Rules returns a copy of the rules in priority order.
func (c *Classifier) Rules() []CategoryRule {
	out := make([]CategoryRule, len(c.rules))
	for i, r := range c.rules {
		out[i] = CategoryRule{Name: r.Name, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}
