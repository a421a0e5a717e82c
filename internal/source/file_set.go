package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files and provides byte offset resolution.
type FileSet struct {
	files []File
	index map[string]FileID // path -> id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add stores UTF-8 content, computes the line table and hash, and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	return fileSet.add(path, content, flags, DefaultEncoding)
}

func (fileSet *FileSet) add(path string, content []byte, flags FileFlags, encoding string) FileID {
	normalizedPath := normalizePath(path)
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %s too large: %w", normalizedPath, err))
	}
	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:         id,
		Path:       normalizedPath,
		Content:    content,
		LineStarts: buildLineStarts(content),
		Hash:       sha256.Sum256(content),
		Flags:      flags,
		Encoding:   encoding,
		Newline:    detectNewline(content),
	})
	// Всегда обновляем индекс на последнюю версию файла
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, strips the BOM, decodes the declared encoding and calls Add.
// Line terminators are kept as they are.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fileSet.AddRaw(path, raw)
}

// AddRaw registers undecoded bytes as read from disk.
func (fileSet *FileSet) AddRaw(path string, raw []byte) (FileID, error) {
	content, hadBOM := removeBOM(raw)
	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	enc := DetectEncoding(content, hadBOM)
	if enc != DefaultEncoding {
		decoded, err := Decode(content, enc)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}
		content = decoded
		flags |= FileDecoded
	}
	return fileSet.add(path, content, flags, enc), nil
}

// Derive registers a new version of f holding content. Encoding and flags
// carry over so the result writes back like the original.
func (fileSet *FileSet) Derive(f *File, content []byte) *File {
	id := fileSet.add(f.Path, content, f.Flags, f.Encoding)
	return fileSet.Get(id)
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &fileSet.files[span.File]
	return f.Position(span.Start), f.Position(span.End)
}

// Position converts a byte offset into a line/column pair.
func (f *File) Position(off uint32) LineCol {
	return toLineCol(f.LineStarts, off)
}

// LineCount returns the number of physical lines.
func (f *File) LineCount() int {
	n := len(f.LineStarts)
	// завершающий перевод строки не открывает новую строку
	if n > 1 && int(f.LineStarts[n-1]) == len(f.Content) {
		n--
	}
	if len(f.Content) == 0 {
		return 0
	}
	return n
}

// Offset converts a 1-based line and 0-based byte column into an offset.
func (f *File) Offset(line, col uint32) (uint32, bool) {
	if line == 0 || int(line) > len(f.LineStarts) {
		return 0, false
	}
	return f.LineStarts[line-1] + col, true
}

// GetLine возвращает строку с заданным номером (1-based) без перевода строки.
// Если строка не существует, возвращает пустую строку.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 || int(lineNum) > len(f.LineStarts) {
		return ""
	}
	start := f.LineStarts[lineNum-1]
	end := uint32(len(f.Content))
	if int(lineNum) < len(f.LineStarts) {
		end = f.LineStarts[lineNum]
	}
	if start >= end {
		return ""
	}
	return TrimNewline(string(f.Content[start:end]))
}
