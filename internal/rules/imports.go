package rules

import (
	"regexp"
)

// ImportParams configures the import-reordering family.
type ImportParams struct {
	// TypeName is the type-only import that must precede the aggregate import.
	TypeName string
	// HelpersModule is the module the type-only import comes from.
	HelpersModule string
}

// DefaultImportParams returns the fixed parameters of the family.
func DefaultImportParams() ImportParams {
	return ImportParams{
		TypeName:      "Row",
		HelpersModule: "@/lib/supabase/helpers",
	}
}

// NewImportRule builds the single blind-scan rule repairing one known
// corruption pattern left by a prior automated edit:
//
//	import {
//	import type { Row } from '@/lib/supabase/helpers'
//
// The type-only import was inserted into the middle of an open aggregate
// import; the two lines are swapped back.
func NewImportRule(p ImportParams) *Rule {
	typeImport := "import type { " + p.TypeName + " } from '" + p.HelpersModule + "'"

	return &Rule{
		ID:      "import-type-before-open-brace",
		Scope:   ScopeBlock,
		trigger: regexp.MustCompile(`import \{[ \t]*\n` + regexp.QuoteMeta(typeImport)),
		rewrite: func(g []string) (string, bool) {
			return typeImport + "\nimport {", true
		},
	}
}
