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
	// FileHadBOM marks a UTF-8 byte order mark stripped on load; write-back restores it.
	FileHadBOM
	// FileDecoded marks content transcoded to UTF-8 from a declared source encoding.
	FileDecoded
)

// File captures metadata and content for a single source file.
//
// Content is always UTF-8 and keeps the original line terminators
// (\n, \r\n or a lone \r) untouched: patches are computed against it byte for byte.
type File struct {
	ID         FileID
	Path       string
	Content    []byte
	LineStarts []uint32 // смещения начала каждой физической строки, LineStarts[0] == 0
	Hash       [32]byte
	Flags      FileFlags
	Encoding   string // объявленная кодировка (PEP 263), "utf-8" по умолчанию
	Newline    string // первый встреченный перевод строки, "\n" если его нет
}

// LineCol represents a position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 0-based, в байтах от начала строки
}
