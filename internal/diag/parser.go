package diag

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// DefaultDiagnosticsPath is where the narrow fixer expects compiler output
// when no explicit source is configured.
const DefaultDiagnosticsPath = "/tmp/ts18046_errors.txt"

// lineRe matches one tsc diagnostic per line:
//
//	lib/db/users.ts(42,7): error TS18046: 'e' is of type 'unknown'.
var lineRe = regexp.MustCompile(`^(.+?)\((\d+),(\d+)\): (\w+) (TS\d+): (.*)$`)

// identRe extracts the quoted identifier from "'X' is of type '...'" messages.
var identRe = regexp.MustCompile(`^'(.+?)' is of type '.+?'`)

// Parse reads raw compiler output and returns structured records.
// Строки, не похожие на диагностику (прогресс, пустые, обрезанные), молча
// пропускаются — это штатный мусор в выводе tsc, не ошибка.
func Parse(r io.Reader) ([]Record, error) {
	records := make([]Record, 0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		rec, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("read diagnostics: %w", err)
	}
	return records, nil
}

func parseLine(line string) (Record, bool) {
	m := lineRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if m == nil {
		return Record{}, false
	}

	lineNum, err := strconv.ParseUint(m[2], 10, 32)
	if err != nil {
		return Record{}, false
	}
	colNum, err := strconv.ParseUint(m[3], 10, 32)
	if err != nil {
		return Record{}, false
	}

	message := m[6]
	rec := Record{
		FilePath: m[1],
		Line:     uint32(lineNum),
		Col:      uint32(colNum),
		Severity: parseSeverity(m[4]),
		Code:     Code(m[5]),
		Message:  message,
		Ident:    extractIdent(message),
	}
	return rec, true
}

// extractIdent returns the identifier named by the message, or "".
func extractIdent(message string) string {
	if m := identRe.FindStringSubmatch(message); m != nil {
		return m[1]
	}
	return ""
}

// Provider is a source of diagnostic records. Implementations: FileProvider
// (fixed compiler-output file), ReaderProvider (stream), SliceProvider
// (in-memory, для тестов и встраивания).
type Provider interface {
	Records() ([]Record, error)
}

// FileProvider reads diagnostics from a compiler-output file on disk.
type FileProvider struct {
	Path string
}

// Records parses the file. A missing file yields no records and no error:
// "ничего не нашли" — нормальный исход для фиксера.
func (p FileProvider) Records() ([]Record, error) {
	path := p.Path
	if path == "" {
		path = DefaultDiagnosticsPath
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open diagnostics %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Parse(f)
}

// ReaderProvider parses diagnostics from an arbitrary stream (stdin, pipe).
type ReaderProvider struct {
	R io.Reader
}

func (p ReaderProvider) Records() ([]Record, error) {
	if p.R == nil {
		return nil, nil
	}
	return Parse(p.R)
}

// SliceProvider returns a fixed set of records.
type SliceProvider struct {
	Items []Record
}

func (p SliceProvider) Records() ([]Record, error) {
	return p.Items, nil
}
