package rules

import (
	"regexp"
	"strings"
)

// Branch names the classification branch of the unknown-type narrowing family.
type Branch uint8

const (
	// BranchNone means no branch claimed the line.
	BranchNone Branch = iota
	// BranchErrorBinding casts a conventional error binding to Error.
	BranchErrorBinding
	// BranchCallbackParam annotates a bare callback parameter with any.
	BranchCallbackParam
	// BranchAnyCast wraps property accesses in a permissive cast.
	BranchAnyCast
)

func (b Branch) String() string {
	switch b {
	case BranchErrorBinding:
		return "error-binding"
	case BranchCallbackParam:
		return "callback-param"
	case BranchAnyCast:
		return "any-cast"
	}
	return "none"
}

// NarrowParams configures the diagnostic-driven unknown-type narrowing family.
type NarrowParams struct {
	// ErrorNames are conventional catch-binding names treated as Error values.
	ErrorNames []string
	// CallbackMethods are higher-order methods whose callbacks get annotated.
	CallbackMethods []string
}

// DefaultNarrowParams returns the fixed parameters of the family.
func DefaultNarrowParams() NarrowParams {
	return NarrowParams{
		ErrorNames:      []string{"error", "err", "e"},
		CallbackMethods: []string{"map", "filter", "forEach"},
	}
}

// Classifier applies the unknown-type narrowing rules to a single line
// named by a TS18046 diagnostic. Ветки взаимоисключающие и упорядоченные:
// классификация выполняется один раз на (файл, строка), выигрывает первая.
// Порядок — наследие исходного фиксера, а не осознанный приоритет; менять
// его нельзя ради совместимости.
type Classifier struct {
	errorNames      map[string]bool
	callbackMarkers []string
}

// NewClassifier builds a classifier from params.
func NewClassifier(p NarrowParams) *Classifier {
	names := make(map[string]bool, len(p.ErrorNames))
	for _, n := range p.ErrorNames {
		names[n] = true
	}
	markers := make([]string, 0, len(p.CallbackMethods))
	for _, m := range p.CallbackMethods {
		markers = append(markers, "."+m+"(")
	}
	return &Classifier{errorNames: names, callbackMarkers: markers}
}

// Classify returns the branch that claims the line for the identifier.
// Выбор идёт по форме строки и имени, не по тому, изменит ли ветка текст:
// ошибочная переменная на строке с .map() всё равно уходит в первую ветку.
func (c *Classifier) Classify(line, ident string) Branch {
	switch {
	case c.errorNames[ident]:
		return BranchErrorBinding
	case c.hasCallbackMarker(line):
		return BranchCallbackParam
	case strings.Contains(line, ident+"."):
		return BranchAnyCast
	default:
		return BranchNone
	}
}

// Rewrite applies the first matching branch to the line and reports whether
// the line changed. Повторный запуск по уже исправленной строке ничего не
// делает — каждая ветка проверяет, что каста ещё нет.
func (c *Classifier) Rewrite(line, ident string) (string, bool) {
	if ident == "" {
		return line, false
	}
	switch c.Classify(line, ident) {
	case BranchErrorBinding:
		return c.rewriteErrorBinding(line, ident)
	case BranchCallbackParam:
		return c.rewriteCallbackParam(line, ident)
	case BranchAnyCast:
		return c.rewriteAnyCast(line, ident)
	default:
		return line, false
	}
}

func (c *Classifier) hasCallbackMarker(line string) bool {
	for _, marker := range c.callbackMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// rewriteErrorBinding: e.message -> (e as Error).message, либо любое
// обращение к свойству через (e as Error).
func (c *Classifier) rewriteErrorBinding(line, ident string) (string, bool) {
	errCast := "(" + ident + " as Error)"
	anyCast := "(" + ident + " as any)"
	msgAccess := ident + ".message"

	if strings.Contains(line, msgAccess) && !strings.Contains(line, errCast) {
		return strings.ReplaceAll(line, msgAccess, errCast+".message"), true
	}
	if strings.Contains(line, ident+".") &&
		!strings.Contains(line, errCast) && !strings.Contains(line, anyCast) {
		out := identDot(ident).ReplaceAllString(line, errCast+".")
		return out, out != line
	}
	return line, false
}

// rewriteCallbackParam: (x) => и x => становятся (x: any) =>.
func (c *Classifier) rewriteCallbackParam(line, ident string) (string, bool) {
	if strings.Contains(line, ident+": any") {
		return line, false
	}
	q := regexp.QuoteMeta(ident)
	annotated := "(" + ident + ": any) =>"

	out := regexp.MustCompile(`\(\s*`+q+`\s*\)\s*=>`).ReplaceAllString(line, annotated)
	out = regexp.MustCompile(`\b`+q+`\s*=>`).ReplaceAllString(out, annotated)
	return out, out != line
}

// rewriteAnyCast: x.foo -> (x as any).foo в каждой точке обращения.
func (c *Classifier) rewriteAnyCast(line, ident string) (string, bool) {
	if strings.Contains(line, "("+ident+" as any)") {
		return line, false
	}
	out := identDot(ident).ReplaceAllString(line, "("+ident+" as any).")
	return out, out != line
}

func identDot(ident string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(ident) + `\.`)
}
