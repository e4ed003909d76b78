// Package schema defines the ordered, conditional question set and the
// answer mapping the rest of the pipeline consumes. Prompt rendering is
// not part of this package; any Collector implementation may produce
// the answers, and Sanitize enforces the visibility invariant on
// whatever it returns.
package schema

import (
	"github.com/sprout-cli/sprout/pkg/errors"
)

// Kind describes how a question is answered
type Kind int

const (
	// FreeText accepts an arbitrary string
	FreeText Kind = iota
	// SingleChoice accepts exactly one of the listed options
	SingleChoice
	// MultiChoice accepts any subset of the listed options
	MultiChoice
)

// Question is one entry in the ordered schema. Visibility is declared
// with DependsOn (keys of strictly earlier questions) plus a pure
// predicate over the answers collected so far; a nil predicate means
// always visible.
type Question struct {
	Key       string
	Kind      Kind
	Prompt    string
	Options   []string
	Default   interface{} // string for FreeText/SingleChoice, []string for MultiChoice
	DependsOn []string
	VisibleIf func(Answers) bool
}

// Schema is the ordered question sequence
type Schema struct {
	Questions []Question
}

// Answers maps question keys to collected values. Values are string or
// []string; keys of questions that were not visible are absent.
type Answers map[string]interface{}

// Collector turns a schema into answers. The interactive pterm
// implementation lives in pkg/prompt; tests use stubs.
type Collector interface {
	Collect(s *Schema) (Answers, error)
}

// String returns the string answer for key, or "" if absent
func (a Answers) String(key string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return ""
}

// Strings returns the string-slice answer for key, or nil if absent
func (a Answers) Strings(key string) []string {
	if v, ok := a[key].([]string); ok {
		return v
	}
	return nil
}

// Has reports whether key was answered
func (a Answers) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Contains reports whether the multi-choice answer for key includes value
func (a Answers) Contains(key, value string) bool {
	for _, v := range a.Strings(key) {
		if v == value {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants of the schema: unique keys,
// and every DependsOn entry referring to a strictly earlier question.
// A predicate without a DependsOn declaration is rejected so that the
// no-forward-reference property stays statically checkable.
func (s *Schema) Validate() error {
	seen := make(map[string]bool, len(s.Questions))
	for _, q := range s.Questions {
		if q.Key == "" {
			return errors.New(errors.ErrSchemaInvalid, "question with empty key")
		}
		if seen[q.Key] {
			return errors.Newf(errors.ErrSchemaInvalid, "duplicate question key %q", q.Key)
		}
		if q.VisibleIf != nil && len(q.DependsOn) == 0 {
			return errors.Newf(errors.ErrSchemaInvalid,
				"question %q has a visibility predicate but declares no dependencies", q.Key)
		}
		for _, dep := range q.DependsOn {
			if !seen[dep] {
				return errors.Newf(errors.ErrSchemaInvalid,
					"question %q depends on %q, which is not an earlier question", q.Key, dep)
			}
		}
		seen[q.Key] = true
	}
	return nil
}

// Visible evaluates a question's visibility against answers collected
// for earlier questions
func (q *Question) Visible(prior Answers) bool {
	if q.VisibleIf == nil {
		return true
	}
	return q.VisibleIf(prior)
}

// Defaults walks the schema in order and answers every visible question
// with its default value. Used when no interactive collection is
// possible.
func (s *Schema) Defaults() Answers {
	answers := make(Answers, len(s.Questions))
	for i := range s.Questions {
		q := &s.Questions[i]
		if !q.Visible(answers) {
			continue
		}
		if q.Default != nil {
			answers[q.Key] = q.Default
		}
	}
	return answers
}

// Sanitize removes answers for questions that were not visible given
// the remaining answers, walking in schema order. The pipeline must
// never observe a value behind an invisible question, even if a
// collector supplied a stale one.
func (s *Schema) Sanitize(in Answers) Answers {
	out := make(Answers, len(in))
	for i := range s.Questions {
		q := &s.Questions[i]
		if !q.Visible(out) {
			continue
		}
		if v, ok := in[q.Key]; ok {
			out[q.Key] = v
		}
	}
	return out
}
