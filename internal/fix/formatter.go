package fix

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrFormatter wraps every formatter failure.
var ErrFormatter = errors.New("formatter failed")

// DefaultFormatterTimeout bounds one formatter run.
const DefaultFormatterTimeout = 30 * time.Second

// Formatter runs an external program with source on stdin and reads the
// formatted source from stdout, e.g. ["black", "-q", "-"].
type Formatter struct {
	Argv    []string
	Timeout time.Duration
}

func NewFormatter(argv []string) *Formatter {
	if len(argv) == 0 {
		return nil
	}
	return &Formatter{Argv: argv, Timeout: DefaultFormatterTimeout}
}

func (f *Formatter) String() string {
	return strings.Join(f.Argv, " ")
}

// Format returns the program's stdout. A non-zero exit, a timeout or an
// empty output for non-empty input is an error.
func (f *Formatter) Format(ctx context.Context, src []byte) ([]byte, error) {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultFormatterTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// #nosec G204 -- argv comes from the user's config
	cmd := exec.CommandContext(ctx, f.Argv[0], f.Argv[1:]...)
	cmd.Stdin = bytes.NewReader(src)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFormatter, f, ctx.Err())
		}
		if msg != "" {
			return nil, fmt.Errorf("%w: %s: %w: %s", ErrFormatter, f, err, msg)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrFormatter, f, err)
	}
	if stdout.Len() == 0 && len(src) > 0 {
		return nil, fmt.Errorf("%w: %s: empty output", ErrFormatter, f)
	}
	return stdout.Bytes(), nil
}
