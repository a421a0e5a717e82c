package fix

import (
	"fmt"
	"os"
	"path/filepath"

	"fixit/internal/source"
)

// WriteBack stores v's content at orig's path in orig's encoding, BOM
// included, keeping the file mode. The write goes through a temp file in
// the same directory and a rename.
func WriteBack(orig, v *source.File) error {
	if orig.Flags&source.FileVirtual != 0 {
		return fmt.Errorf("%s: %w", orig.Path, ErrVirtual)
	}
	buf, err := source.EncodeFile(orig, v.Content)
	if err != nil {
		return fmt.Errorf("write %s: %w", orig.Path, err)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(orig.Path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(orig.Path), "."+filepath.Base(orig.Path)+".fixit-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", orig.Path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", orig.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", orig.Path, err)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("write %s: %w", orig.Path, err)
	}
	if err := os.Rename(tmp.Name(), orig.Path); err != nil {
		return fmt.Errorf("write %s: %w", orig.Path, err)
	}
	return nil
}
