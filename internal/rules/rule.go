package rules

import (
	"regexp"
)

// Scope describes how much text a rule's trigger can span.
type Scope uint8

const (
	// ScopeLine rules match within a single line.
	ScopeLine Scope = iota
	// ScopeBlock rules match across adjacent lines.
	ScopeBlock
)

func (s Scope) String() string {
	switch s {
	case ScopeLine:
		return "line"
	case ScopeBlock:
		return "block"
	}
	return "unknown"
}

// Rule is one structural rewrite: a trigger over source text plus a rewrite
// over the captured groups. rewrite возвращает ok=false, когда совпадение
// нужно оставить как есть (RE2 не умеет backreferences и негативные условия,
// поэтому часть проверок живёт в коде).
type Rule struct {
	ID      string
	Scope   Scope
	trigger *regexp.Regexp
	rewrite func(groups []string) (string, bool)
}

// Apply performs a global substitution of the rule over content and returns
// the new content plus the number of substitutions that changed text.
// Совпадения, которые rewrite отверг или переписал в тот же текст,
// не считаются исправлениями.
func (r *Rule) Apply(content string) (string, int) {
	count := 0
	out := r.trigger.ReplaceAllStringFunc(content, func(match string) string {
		groups := r.trigger.FindStringSubmatch(match)
		if groups == nil {
			return match
		}
		replaced, ok := r.rewrite(groups)
		if !ok || replaced == match {
			return match
		}
		count++
		return replaced
	})
	return out, count
}

// Set is an ordered, read-only library of rules: order determines precedence,
// first matching rule wins. Safe for concurrent use once built.
type Set struct {
	rules []*Rule
}

// NewSet builds a rule set preserving the given order.
func NewSet(rules ...*Rule) *Set {
	return &Set{rules: rules}
}

// Rules returns the rules in precedence order.
func (s *Set) Rules() []*Rule {
	return s.rules
}

// Apply runs every rule in order over content, feeding each rule the output
// of the previous one, and returns the final content with the total number
// of applied fixes.
func (s *Set) Apply(content string) (string, int) {
	total := 0
	for _, rule := range s.rules {
		var n int
		content, n = rule.Apply(content)
		total += n
	}
	return content, total
}

// Fingerprint identifies the rule library for cache invalidation.
func (s *Set) Fingerprint() string {
	fp := ""
	for _, rule := range s.rules {
		fp += rule.ID + ":" + rule.trigger.String() + ";"
	}
	return fp
}
