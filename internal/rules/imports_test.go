package rules

import (
	"testing"
)

func TestImportReorder(t *testing.T) {
	rule := NewImportRule(DefaultImportParams())

	input := "import {\n" +
		"import type { Row } from '@/lib/supabase/helpers'\n" +
		"  createClient,\n" +
		"} from '@supabase/supabase-js'\n"
	want := "import type { Row } from '@/lib/supabase/helpers'\n" +
		"import {\n" +
		"  createClient,\n" +
		"} from '@supabase/supabase-js'\n"

	got, n := rule.Apply(input)
	if got != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
	if n != 1 {
		t.Errorf("expected 1 fix, got %d", n)
	}
}

func TestImportReorderIdempotent(t *testing.T) {
	rule := NewImportRule(DefaultImportParams())

	input := "import {\nimport type { Row } from '@/lib/supabase/helpers'\n"
	once, _ := rule.Apply(input)
	twice, n := rule.Apply(once)

	if n != 0 {
		t.Errorf("expected fixed point after one pass, got %d more fixes", n)
	}
	if twice != once {
		t.Error("expected second pass to leave content unchanged")
	}
}

func TestImportReorderHealthyImportUntouched(t *testing.T) {
	rule := NewImportRule(DefaultImportParams())

	// нормальный порядок — не переставляем
	input := "import type { Row } from '@/lib/supabase/helpers'\n" +
		"import {\n" +
		"  createClient,\n" +
		"} from '@supabase/supabase-js'\n"

	got, n := rule.Apply(input)
	if got != input || n != 0 {
		t.Errorf("expected healthy import untouched, got %d fixes:\n%s", n, got)
	}
}

func TestImportReorderCustomModule(t *testing.T) {
	rule := NewImportRule(ImportParams{TypeName: "Tables", HelpersModule: "~/db/types"})

	input := "import {\nimport type { Tables } from '~/db/types'\n"
	want := "import type { Tables } from '~/db/types'\nimport {\n"

	got, n := rule.Apply(input)
	if got != want || n != 1 {
		t.Errorf("unexpected output (%d fixes):\n%s", n, got)
	}
}
