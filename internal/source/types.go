package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	// FileHasBOM indicates the file starts with a UTF-8 BOM.
	// The BOM is kept in Content: the rewriter must write files back byte-identical
	// when nothing matched, so loading never alters bytes.
	FileHasBOM
	// FileHasCRLF indicates the file contains at least one \r\n line ending.
	FileHasCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}
