package engine

import (
	"strings"

	"tsmend/internal/diag"
	"tsmend/internal/rules"
	"tsmend/internal/source"
)

// Session owns the in-memory edit buffer of one file for the duration of a
// run. Буфер эксклюзивный: между файлами ничего не шарится, поэтому сессии
// безопасно обрабатывать параллельно.
type Session struct {
	Path     string
	original []byte
	current  []byte
	// Applied counts rule applications that actually changed text.
	Applied int
}

// NewSession starts an edit session over a loaded file.
func NewSession(f *source.File) *Session {
	return &Session{
		Path:     f.Path,
		original: f.Content,
		current:  f.Content,
	}
}

// Changed reports whether the buffer differs from the original content.
// Инвариант FileWriter: файл пишется на диск тогда и только тогда, когда
// Changed() истинно.
func (s *Session) Changed() bool {
	return string(s.current) != string(s.original)
}

// Content returns the current buffer.
func (s *Session) Content() []byte {
	return s.current
}

// ApplyBlind runs a blind-scan rule set over the whole buffer.
func (s *Session) ApplyBlind(set *rules.Set) {
	out, n := set.Apply(string(s.current))
	if n > 0 {
		s.current = []byte(out)
		s.Applied += n
	}
}

// ApplyRecords applies the unknown-type classifier to each diagnostic's line.
// Строка читается из живого буфера, а не из оригинала: ранние правки на той
// же строке видны поздним. Диагностики за пределами файла пропускаются.
func (s *Session) ApplyRecords(records []diag.Record, cls *rules.Classifier) {
	lines := strings.Split(string(s.current), "\n")
	dirty := false

	for _, rec := range records {
		if rec.Code != diag.CodeUnknownType || rec.Ident == "" {
			continue
		}
		if rec.Line == 0 || int(rec.Line) > len(lines) {
			continue
		}
		idx := int(rec.Line) - 1

		line := lines[idx]
		// CRLF: classifier works on the logical line, \r goes back untouched
		cr := strings.HasSuffix(line, "\r")
		if cr {
			line = strings.TrimSuffix(line, "\r")
		}

		fixed, ok := cls.Rewrite(line, rec.Ident)
		if !ok {
			continue
		}
		if cr {
			fixed += "\r"
		}
		lines[idx] = fixed
		s.Applied++
		dirty = true
	}

	if dirty {
		s.current = []byte(strings.Join(lines, "\n"))
	}
}
