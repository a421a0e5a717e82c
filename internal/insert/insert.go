// Package insert writes new lint-ignore / lint-fixme comments into source.
package insert

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"fixit/internal/diag"
	"fixit/internal/lexer"
	"fixit/internal/linemap"
	"fixit/internal/source"
	"fixit/internal/suppress"
)

// ErrFailedInsertions is returned by Result.Err when a request had no target.
var ErrFailedInsertions = errors.New("suppression insertion failed")

const (
	DefaultCodeWidth       = 88
	DefaultMinCommentWidth = 40
)

// Request asks for a suppression above the logical line containing Line.
type Request struct {
	Line    uint32
	Codes   []diag.Code
	Message string
}

type Options struct {
	Kind            suppress.Kind // KindLintFixme или KindLintIgnore
	CodeWidth       int
	MinCommentWidth int
	MaxLines        int // 0 = без ограничения
}

func (o Options) withDefaults() Options {
	if o.Kind != suppress.KindLintIgnore {
		o.Kind = suppress.KindLintFixme
	}
	if o.CodeWidth <= 0 {
		o.CodeWidth = DefaultCodeWidth
	}
	if o.MinCommentWidth <= 0 {
		o.MinCommentWidth = DefaultMinCommentWidth
	}
	return o
}

type Result struct {
	Text    string // UTF-8
	Content []byte // в кодировке файла
	Failed  []Request
}

// Err wraps ErrFailedInsertions when anything failed.
func (r Result) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	lines := make([]string, len(r.Failed))
	for i, f := range r.Failed {
		lines[i] = fmt.Sprint(f.Line)
	}
	return fmt.Errorf("%w: no target for line(s) %s", ErrFailedInsertions, strings.Join(lines, ", "))
}

// Insert renders every request and splices it before its logical target
// line. Requests whose line is not part of the file are returned in Failed.
// An error is returned only when the file cannot be tokenized or encoded.
func Insert(file *source.File, reqs []Request, opts Options) (Result, error) {
	opts = opts.withDefaults()
	toks, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		return Result{}, err
	}
	lines := linemap.Build(toks)

	type pending struct {
		req    Request
		target uint32
		order  int
	}
	var (
		queue  []pending
		failed []Request
	)
	for i, req := range reqs {
		target, ok := lines.Logical(req.Line)
		if !ok {
			failed = append(failed, req)
			continue
		}
		queue = append(queue, pending{req: req, target: target, order: i})
	}
	sort.SliceStable(queue, func(i, j int) bool {
		if queue[i].target != queue[j].target {
			return queue[i].target < queue[j].target
		}
		return queue[i].order < queue[j].order
	})

	indents := newIndentCache(file)
	physical := source.SplitLines(string(file.Content))
	var b strings.Builder
	b.Grow(len(file.Content) + len(reqs)*64)
	for i, line := range physical {
		phys := uint32(i + 1)
		for len(queue) > 0 && queue[0].target == phys {
			indent := indents.get(phys)
			for _, out := range Render(queue[0].req, indent, opts) {
				b.WriteString(indent)
				b.WriteString(out)
				b.WriteString(file.Newline)
			}
			queue = queue[1:]
		}
		b.WriteString(line)
	}
	for _, p := range queue {
		failed = append(failed, p.req)
	}

	text := b.String()
	content, err := source.EncodeFile(file, []byte(text))
	if err != nil {
		return Result{}, err
	}
	return Result{Text: text, Content: content, Failed: failed}, nil
}

// Render returns the comment lines for one request, without indentation
// or line terminators.
func Render(req Request, indent string, opts Options) []string {
	opts = opts.withDefaults()
	width := max(opts.CodeWidth-runewidth.StringWidth(indent), opts.MinCommentWidth)

	codes := make([]string, len(req.Codes))
	for i, c := range req.Codes {
		codes[i] = string(c)
	}
	header := fmt.Sprintf("# %s: %s", opts.Kind, strings.Join(codes, ", "))
	if req.Message == "" {
		return []string{header}
	}

	var out, protected []string
	add := func(lines []string, first, rest string) {
		for i, l := range lines {
			out = append(out, l)
			if i == 0 {
				protected = append(protected, first)
			} else {
				protected = append(protected, rest)
			}
		}
	}

	paragraphs := strings.Split(strings.ReplaceAll(req.Message, "\r\n", "\n"), "\n")
	add(wrapLine(paragraphs[0], width, header+": ", continuationPrefix), header+":", continuationBlank)
	for _, p := range paragraphs[1:] {
		if strings.TrimSpace(p) == "" {
			add([]string{continuationBlank}, continuationBlank, continuationBlank)
			continue
		}
		add(wrapLine(p, width, continuationPrefix, continuationPrefix), continuationBlank, continuationBlank)
	}
	return truncate(out, opts.MaxLines, width, protected)
}

// indentCache memoises the indentation of logical line starts.
type indentCache struct {
	file *source.File
	seen map[uint32]string
}

func newIndentCache(file *source.File) *indentCache {
	return &indentCache{file: file, seen: make(map[uint32]string)}
}

func (c *indentCache) get(line uint32) string {
	if s, ok := c.seen[line]; ok {
		return s
	}
	text := c.file.GetLine(line)
	s := text[:len(text)-len(strings.TrimLeft(text, " \t\f"))]
	c.seen[line] = s
	return s
}
