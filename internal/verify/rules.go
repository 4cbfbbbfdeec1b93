package verify

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// RuleClass labels what a matched pattern says about a statement
type RuleClass string

const (
	ClassNegation    RuleClass = "negation"    // Plain negation ("not", "never")
	ClassProhibition RuleClass = "prohibition" // Prohibitive phrasing ("must not", "prohibited")
)

// Rule is one ordered pattern -> classification entry
type Rule struct {
	Pattern string    `yaml:"pattern"`
	Class   RuleClass `yaml:"class"`

	re *regexp.Regexp
}

// RuleTable is the versioned polarity vocabulary. It is data, not logic:
// the decision procedure never changes when markers are added or removed.
type RuleTable struct {
	Version  string `yaml:"version"`
	Polarity []Rule `yaml:"polarity"`
	Numeric  string `yaml:"numeric"` // Pattern matching bare number tokens

	numericRe *regexp.Regexp
}

// DefaultRuleTable returns the built-in negation/prohibition vocabulary
func DefaultRuleTable() *RuleTable {
	t := &RuleTable{
		Version: "1",
		Polarity: []Rule{
			{Pattern: `\bmust not\b`, Class: ClassProhibition},
			{Pattern: `\bdo not\b`, Class: ClassProhibition},
			{Pattern: `\bshould not\b`, Class: ClassProhibition},
			{Pattern: `\bmay not\b`, Class: ClassProhibition},
			{Pattern: `\bprohibited\b`, Class: ClassProhibition},
			{Pattern: `\bforbidden\b`, Class: ClassProhibition},
			{Pattern: `\bcannot\b`, Class: ClassProhibition},
			{Pattern: `\bnever\b`, Class: ClassNegation},
			{Pattern: `\bnot\b`, Class: ClassNegation},
			{Pattern: `\bno\b`, Class: ClassNegation},
		},
		Numeric: `\b\d+\b`,
	}
	if err := t.Compile(); err != nil {
		// The built-in table is static; a compile failure is a programming
		// error, not a runtime condition.
		panic(err)
	}
	return t
}

// LoadRuleTable reads a rule table from a YAML file and compiles it
func LoadRuleTable(path string) (*RuleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule table: %w", err)
	}

	var t RuleTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse rule table: %w", err)
	}
	if len(t.Polarity) == 0 {
		return nil, fmt.Errorf("rule table %s has no polarity rules", path)
	}
	if t.Numeric == "" {
		t.Numeric = `\b\d+\b`
	}

	if err := t.Compile(); err != nil {
		return nil, fmt.Errorf("compile rule table: %w", err)
	}
	return &t, nil
}

// Compile compiles every pattern in the table
func (t *RuleTable) Compile() error {
	for i := range t.Polarity {
		re, err := regexp.Compile(`(?i)` + t.Polarity[i].Pattern)
		if err != nil {
			return fmt.Errorf("pattern %q: %w", t.Polarity[i].Pattern, err)
		}
		t.Polarity[i].re = re
	}

	re, err := regexp.Compile(t.Numeric)
	if err != nil {
		return fmt.Errorf("numeric pattern %q: %w", t.Numeric, err)
	}
	t.numericRe = re
	return nil
}

// IsNegative classifies a statement as negative/prohibitive if any
// polarity rule matches, in table order
func (t *RuleTable) IsNegative(text string) bool {
	for i := range t.Polarity {
		if t.Polarity[i].re.MatchString(text) {
			return true
		}
	}
	return false
}

// Numbers returns the bare number tokens of a statement, in order
func (t *RuleTable) Numbers(text string) []string {
	return t.numericRe.FindAllString(text, -1)
}
