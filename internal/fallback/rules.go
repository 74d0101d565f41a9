// Package fallback produces canned answers locally when no language-model
// provider is usable. Matching is a pure function of the question text.
package fallback

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

// Rule maps a set of keywords to a canned answer.
type Rule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Answer   string   `yaml:"answer"`
}

// RuleSet is evaluated in order; the first rule with a matching keyword wins.
type RuleSet struct {
	Rules   []Rule `yaml:"rules"`
	Default string `yaml:"default"`
}

func (rs RuleSet) Validate() error {
	if strings.TrimSpace(rs.Default) == "" {
		return errors.New("fallback: default answer is required")
	}
	for i, r := range rs.Rules {
		if len(r.Keywords) == 0 {
			return fmt.Errorf("fallback: rule %d (%s) has no keywords", i, r.Name)
		}
		for _, k := range r.Keywords {
			if _, err := compileKeyword(k); err != nil {
				return fmt.Errorf("fallback: rule %d (%s): %w", i, r.Name, err)
			}
		}
		if strings.TrimSpace(r.Answer) == "" {
			return fmt.Errorf("fallback: rule %d (%s) has no answer", i, r.Name)
		}
	}
	return nil
}

// Matcher is immutable after construction.
type Matcher struct {
	rules []compiledRule
	def   string
}

// A keyword is one token or a phrase of consecutive tokens.
type compiledRule struct {
	keywords [][]string
	answer   string
}

// compileKeyword splits k the same way questions are split. Keywords holding
// characters the tokenizer drops, such as "c++" or "e-mail", could never match
// and are rejected.
func compileKeyword(k string) ([]string, error) {
	tokens := Tokenize(k)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("keyword %q is blank", k)
	}
	if strings.Join(tokens, " ") != strings.Join(strings.Fields(strings.ToLower(k)), " ") {
		return nil, fmt.Errorf("keyword %q contains characters other than letters, digits and spaces", k)
	}
	return tokens, nil
}

func NewMatcher(rs RuleSet) (*Matcher, error) {
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	m := &Matcher{def: strings.TrimSpace(rs.Default)}
	for _, r := range rs.Rules {
		kw := make([][]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			tokens, _ := compileKeyword(k)
			kw = append(kw, tokens)
		}
		m.rules = append(m.rules, compiledRule{keywords: kw, answer: strings.TrimSpace(r.Answer)})
	}
	return m, nil
}

// Load reads a rule table from path, or the embedded table when path is empty.
func Load(path string) (*Matcher, error) {
	raw := defaultRules
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("fallback: read %s: %w", path, err)
		}
		raw = b
	}
	var rs RuleSet
	if err := yaml.Unmarshal(raw, &rs); err != nil {
		return nil, fmt.Errorf("fallback: parse: %w", err)
	}
	return NewMatcher(rs)
}

// Match returns the answer of the first rule with a keyword present in the
// question, or the default answer. Phrase keywords must appear as consecutive
// tokens.
func (m *Matcher) Match(question string) string {
	tokens := Tokenize(question)
	for _, r := range m.rules {
		for _, k := range r.keywords {
			if containsRun(tokens, k) {
				return r.answer
			}
		}
	}
	return m.def
}

func containsRun(tokens, run []string) bool {
	for i := 0; i+len(run) <= len(tokens); i++ {
		if slices.Equal(tokens[i:i+len(run)], run) {
			return true
		}
	}
	return false
}

// Tokenize lower-cases s and splits it on anything that is not a letter or
// digit.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
