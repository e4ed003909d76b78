// Package envfile turns a template .env.example into the project's
// final .env. Comments and blank lines pass through verbatim; key/value
// lines are rewritten from collected answers, freshly generated secrets
// or computed flags, driven entirely by a data-defined policy.
package envfile

import (
	"strings"

	"github.com/sprout-cli/sprout/pkg/schema"
)

// commentMarker prefixes lines that pass through untouched
const commentMarker = "#"

// LineKind distinguishes passthrough from rewritable lines
type LineKind int

const (
	// Passthrough lines are copied byte for byte
	Passthrough LineKind = iota
	// KeyValue lines are rewritten through the policy
	KeyValue
)

// Line is one parsed template line
type Line struct {
	Kind     LineKind
	Text     string // original text, without trailing newline
	Key      string // set for KeyValue lines
	RawValue string // template's value, set for KeyValue lines
}

// ParseLine classifies a single template line. Blank lines, comments
// and lines without '=' are passthrough; everything else splits once on
// the first '='.
func ParseLine(text string) Line {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.HasPrefix(trimmed, commentMarker) {
		return Line{Kind: Passthrough, Text: text}
	}

	key, value, found := strings.Cut(text, "=")
	if !found || strings.TrimSpace(key) == "" {
		return Line{Kind: Passthrough, Text: text}
	}

	return Line{
		Kind:     KeyValue,
		Text:     text,
		Key:      strings.TrimSpace(key),
		RawValue: value,
	}
}

// RuleKind describes how a key's output value is produced
type RuleKind int

const (
	// FromAnswer substitutes a collected answer
	FromAnswer RuleKind = iota
	// GeneratedSecret emits a fresh random token
	GeneratedSecret
	// ComputedFlag derives a boolean value from the answers
	ComputedFlag
)

// Rule is the policy entry for one env key
type Rule struct {
	Kind      RuleKind
	AnswerKey string                   // FromAnswer only
	Compute   func(schema.Answers) bool // ComputedFlag only
}

// Policy maps env keys to rules. Keys without an entry default to
// FromAnswer with the key's own name, falling back to an empty value.
type Policy struct {
	rules map[string]Rule
}

// NewPolicy builds an empty policy
func NewPolicy() *Policy {
	return &Policy{rules: make(map[string]Rule)}
}

// Answer maps an env key to a collected answer key
func (p *Policy) Answer(envKey, answerKey string) *Policy {
	p.rules[envKey] = Rule{Kind: FromAnswer, AnswerKey: answerKey}
	return p
}

// Secret marks an env key as secret-valued
func (p *Policy) Secret(envKey string) *Policy {
	p.rules[envKey] = Rule{Kind: GeneratedSecret}
	return p
}

// Flag maps an env key to a predicate over the answers
func (p *Policy) Flag(envKey string, compute func(schema.Answers) bool) *Policy {
	p.rules[envKey] = Rule{Kind: ComputedFlag, Compute: compute}
	return p
}

// Rule returns the effective rule for an env key
func (p *Policy) Rule(envKey string) Rule {
	if rule, ok := p.rules[envKey]; ok {
		return rule
	}
	return Rule{Kind: FromAnswer, AnswerKey: envKey}
}

// IsSecret reports whether the key is policy-mapped to a generated secret
func (p *Policy) IsSecret(envKey string) bool {
	return p.Rule(envKey).Kind == GeneratedSecret
}
