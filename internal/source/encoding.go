package source

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultEncoding is assumed when neither a BOM nor a coding cookie is present.
const DefaultEncoding = "utf-8"

// ErrUnknownEncoding is returned when a coding cookie names an encoding we cannot transcode.
var ErrUnknownEncoding = errors.New("unknown source encoding")

// PEP 263: cookie must sit in a comment on one of the first two lines.
var codingCookie = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*([-\w.]+)`)

// DetectEncoding returns the declared encoding of raw Python source.
// The BOM, if any, must already be stripped; hadBOM forces utf-8.
func DetectEncoding(content []byte, hadBOM bool) string {
	if hadBOM {
		return DefaultEncoding
	}
	head := content
	if len(head) > 1024 {
		head = head[:1024]
	}
	lines := SplitLines(string(head))
	for i := 0; i < 2 && i < len(lines); i++ {
		line := []byte(TrimNewline(lines[i]))
		if m := codingCookie.FindSubmatch(line); m != nil {
			return normalizeEncodingName(string(m[1]))
		}
		// вторая строка проверяется только если первая пустая или комментарий
		trimmed := bytes.TrimLeft(line, " \t\f")
		if len(trimmed) > 0 && trimmed[0] != '#' {
			break
		}
	}
	return DefaultEncoding
}

func normalizeEncodingName(name string) string {
	enc := strings.ToLower(strings.ReplaceAll(name, "_", "-"))
	switch {
	case enc == "utf-8" || strings.HasPrefix(enc, "utf-8-"), enc == "utf8":
		return DefaultEncoding
	case enc == "latin-1", enc == "iso-8859-1", enc == "iso-latin-1",
		strings.HasPrefix(enc, "latin-1-"), strings.HasPrefix(enc, "iso-8859-1-"):
		return "iso-8859-1"
	}
	return enc
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
	}
	if enc == nil {
		return nil, fmt.Errorf("%w: %s (unsupported)", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// Decode transcodes content from the named encoding to UTF-8.
func Decode(content []byte, name string) ([]byte, error) {
	if name == "" || name == DefaultEncoding {
		return content, nil
	}
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	out, err := enc.NewDecoder().Bytes(content)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return out, nil
}

// Encode transcodes UTF-8 text back to the named encoding, restoring the BOM if asked.
func Encode(text []byte, name string, bom bool) ([]byte, error) {
	if name == "" || name == DefaultEncoding {
		if bom {
			return append(append([]byte{}, utf8BOM...), text...), nil
		}
		return text, nil
	}
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	out, err := enc.NewEncoder().Bytes(text)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	return out, nil
}

// EncodeFile renders f.Content-like text for writing back to f's path.
func EncodeFile(f *File, text []byte) ([]byte, error) {
	return Encode(text, f.Encoding, f.Flags&FileHadBOM != 0)
}
