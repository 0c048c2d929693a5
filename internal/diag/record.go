package diag

// Record is a single structured compiler diagnostic.
// Immutable after parsing; consumed once by the rewrite engine.
type Record struct {
	FilePath string
	Line     uint32 // 1-based
	Col      uint32 // 1-based
	Severity Severity
	Code     Code
	Message  string
	// Ident is the identifier extracted from the message when the message
	// shape is known (e.g. 'x' is of type 'unknown'), otherwise "".
	Ident string
}

// FileGroup holds the records of a single file in their original order.
type FileGroup struct {
	Path    string
	Records []Record
}

// GroupByFile группирует диагностики по файлам.
// Порядок файлов — по первому появлению, порядок записей внутри файла
// сохраняется: движок обязан применять правки детерминированно.
func GroupByFile(records []Record) []FileGroup {
	index := make(map[string]int)
	groups := make([]FileGroup, 0)
	for _, rec := range records {
		i, ok := index[rec.FilePath]
		if !ok {
			i = len(groups)
			index[rec.FilePath] = i
			groups = append(groups, FileGroup{Path: rec.FilePath})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}
	return groups
}
