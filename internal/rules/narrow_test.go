package rules

import (
	"testing"
)

func TestNarrowErrorBindingMessage(t *testing.T) {
	c := NewClassifier(DefaultNarrowParams())

	got, ok := c.Rewrite("catch (e) { console.log(e.message) }", "e")
	want := "catch (e) { console.log((e as Error).message) }"
	if !ok || got != want {
		t.Errorf("got %q (applied=%v), want %q", got, ok, want)
	}
}

func TestNarrowErrorBindingOtherProperty(t *testing.T) {
	c := NewClassifier(DefaultNarrowParams())

	got, ok := c.Rewrite("    console.error(err.stack)", "err")
	want := "    console.error((err as Error).stack)"
	if !ok || got != want {
		t.Errorf("got %q (applied=%v), want %q", got, ok, want)
	}
}

func TestNarrowErrorBindingIdempotent(t *testing.T) {
	c := NewClassifier(DefaultNarrowParams())

	line := "catch (e) { console.log((e as Error).message) }"
	got, ok := c.Rewrite(line, "e")
	if ok || got != line {
		t.Errorf("expected already-cast line untouched, got %q (applied=%v)", got, ok)
	}
}

func TestNarrowCallbackParamBare(t *testing.T) {
	c := NewClassifier(DefaultNarrowParams())

	got, ok := c.Rewrite("items.map(x => x.id)", "x")
	want := "items.map((x: any) => x.id)"
	if !ok || got != want {
		t.Errorf("got %q (applied=%v), want %q", got, ok, want)
	}
}

func TestNarrowCallbackParamParenthesized(t *testing.T) {
	c := NewClassifier(DefaultNarrowParams())

	got, ok := c.Rewrite("rows.filter((row) => row.active)", "row")
	want := "rows.filter((row: any) => row.active)"
	if !ok || got != want {
		t.Errorf("got %q (applied=%v), want %q", got, ok, want)
	}
}

func TestNarrowCallbackParamIdempotent(t *testing.T) {
	c := NewClassifier(DefaultNarrowParams())

	line := "items.map((x: any) => x.id)"
	got, ok := c.Rewrite(line, "x")
	if ok || got != line {
		t.Errorf("expected annotated line untouched, got %q (applied=%v)", got, ok)
	}
}

func TestNarrowAnyCast(t *testing.T) {
	c := NewClassifier(DefaultNarrowParams())

	got, ok := c.Rewrite("const id = payload.user.id", "payload")
	want := "const id = (payload as any).user.id"
	if !ok || got != want {
		t.Errorf("got %q (applied=%v), want %q", got, ok, want)
	}
}

func TestNarrowAnyCastIdempotent(t *testing.T) {
	c := NewClassifier(DefaultNarrowParams())

	line := "const id = (payload as any).user.id"
	got, ok := c.Rewrite(line, "payload")
	if ok || got != line {
		t.Errorf("expected cast line untouched, got %q (applied=%v)", got, ok)
	}
}

// Имя ошибочной переменной выигрывает у формы строки: даже на строке с .map()
// переменная 'e' уходит в первую ветку. Первая подходящая ветка — финальная.
func TestNarrowClassificationPrecedence(t *testing.T) {
	c := NewClassifier(DefaultNarrowParams())

	line := "items.map(cb).catch(e => console.log(e.message))"
	if branch := c.Classify(line, "e"); branch != BranchErrorBinding {
		t.Fatalf("expected error-binding branch, got %s", branch)
	}

	got, ok := c.Rewrite(line, "e")
	want := "items.map(cb).catch(e => console.log((e as Error).message))"
	if !ok || got != want {
		t.Errorf("got %q (applied=%v), want %q", got, ok, want)
	}

	// не-ошибочное имя на той же строке классифицируется как callback
	if branch := c.Classify("items.map(x => x.id)", "x"); branch != BranchCallbackParam {
		t.Errorf("expected callback branch for 'x', got %v", branch)
	}
}

func TestNarrowNoMatch(t *testing.T) {
	c := NewClassifier(DefaultNarrowParams())

	tests := []struct {
		name  string
		line  string
		ident string
	}{
		{"no property access", "const x = value", "value"},
		{"empty ident", "const x = value.y", ""},
		{"error name without access", "throw e", "e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Rewrite(tt.line, tt.ident)
			if ok || got != tt.line {
				t.Errorf("expected line untouched, got %q (applied=%v)", got, ok)
			}
		})
	}
}
