package diagfmt

import (
	"sync"

	"fixit/internal/source"
)

// Lines looks up source lines for context printing. Files are loaded
// lazily from disk unless registered with Add first.
type Lines struct {
	mu    sync.Mutex
	fs    *source.FileSet
	files map[string]*source.File
}

func NewLines() *Lines {
	return &Lines{fs: source.NewFileSet(), files: make(map[string]*source.File)}
}

// Add registers content for path, e.g. text read from stdin.
func (l *Lines) Add(path string, content []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.files[path] = l.fs.Get(l.fs.AddVirtual(path, content))
}

// Line returns physical line n (1-based) of path without its terminator.
func (l *Lines) Line(path string, n uint32) (string, bool) {
	if l == nil {
		return "", false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	f, ok := l.files[path]
	if !ok {
		id, err := l.fs.Load(path)
		if err != nil {
			// не повторяем чтение
			l.files[path] = nil
			return "", false
		}
		f = l.fs.Get(id)
		l.files[path] = f
	}
	if f == nil || n == 0 || int(n) > len(f.LineStarts) {
		return "", false
	}
	return f.GetLine(n), true
}
