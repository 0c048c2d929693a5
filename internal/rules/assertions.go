package rules

import (
	"regexp"
	"strings"
)

// AssertionParams configures the chained-assertion cleanup family.
// Значения по умолчанию соответствуют схеме Supabase-запросов, из-за которой
// семейство и появилось; через tsmend.toml можно подставить свои.
type AssertionParams struct {
	// RowType is the generic row helper name inside the assertion.
	RowType string
	// Methods is the allow-list of query-chain methods after which a stray
	// assertion may be removed. Anything else keeps its assertion.
	Methods []string
}

// DefaultAssertionParams returns the fixed rule parameters of the family.
func DefaultAssertionParams() AssertionParams {
	return AssertionParams{
		RowType: "Row",
		Methods: []string{
			"or", "order", "limit", "range",
			"gte", "lte", "gt", "lt",
			"not", "in", "contains", "filter",
		},
	}
}

// NewAssertionRules builds the blind-scan rules that delete type assertions
// stuck in the middle of a query chain.
//
// Все три ситуации выглядят так:
//
//	.eq('id', id) as { data: Row<'users'>[] | null; error: any }
//	  .single() as { data: Row<'users'> | null; error: any }
//
// Утверждение должно жить только на терминальном вызове, поэтому первое
// снимается, а цепочка пришивается обратно к закрывающей скобке.
func NewAssertionRules(p AssertionParams) []*Rule {
	row := regexp.QuoteMeta(p.RowType)
	// ) as { data: Row<'T'>[]? | null; error: any }
	assertion := `\) as \{ data: ` + row + `<'([^']+)'>(\[\])? \| null; error: any \}`

	allowed := make(map[string]bool, len(p.Methods))
	for _, m := range p.Methods {
		allowed[m] = true
	}

	beforeSingle := &Rule{
		ID:    "assertion-before-single",
		Scope: ScopeBlock,
		trigger: regexp.MustCompile(
			assertion + `[ \t]*\n([ \t]*)\.single\(\) as \{ data: ` + row + `<'([^']+)'> \| null; error: any \}`,
		),
		rewrite: func(g []string) (string, bool) {
			table, indent, singleTable := g[1], g[3], g[4]
			// Таблицы обязаны совпадать, иначе убирать утверждение опасно.
			if table != singleTable {
				return "", false
			}
			return ")\n" + indent + ".single() as { data: " + p.RowType +
				"<'" + table + "'> | null; error: any }", true
		},
	}

	beforeChain := &Rule{
		ID:    "assertion-before-chain",
		Scope: ScopeBlock,
		trigger: regexp.MustCompile(
			assertion + `[ \t]*\n([ \t]*)\.([A-Za-z_][A-Za-z0-9_]*)\(`,
		),
		rewrite: func(g []string) (string, bool) {
			indent, method := g[3], g[4]
			// Не из allow-list — утверждение легитимно завершает цепочку.
			if !allowed[method] {
				return "", false
			}
			return ")\n" + indent + "." + method + "(", true
		},
	}

	// Одиночный .single() после массивного утверждения. Хвост строки
	// захватывается целиком: если single несёт собственное утверждение,
	// блок уже разобрали (или отвергли) правила выше — не трогаем.
	bareSingle := &Rule{
		ID:    "assertion-before-bare-single",
		Scope: ScopeBlock,
		trigger: regexp.MustCompile(
			assertion + `[ \t]*\n([ \t]*)\.single\(\)([^\n]*)`,
		),
		rewrite: func(g []string) (string, bool) {
			isArray, indent, rest := g[2] != "", g[3], g[4]
			if strings.HasPrefix(rest, " as ") {
				return "", false
			}
			// Немассивное утверждение перед голым .single() уже терминальное.
			if !isArray {
				return "", false
			}
			return ")\n" + indent + ".single()" + rest, true
		},
	}

	return []*Rule{beforeSingle, beforeChain, bareSingle}
}
