package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLevelGating(t *testing.T) {
	require.False(t, LevelOff.ShouldEmit(ScopeDriver))
	require.False(t, LevelError.ShouldEmit(ScopeDriver))
	require.True(t, LevelPhase.ShouldEmit(ScopeFile))
	require.False(t, LevelPhase.ShouldEmit(ScopePass))
	require.True(t, LevelDetail.ShouldEmit(ScopePass))
	require.False(t, LevelDetail.ShouldEmit(ScopeRule))
	require.True(t, LevelDebug.ShouldEmit(ScopeRule))
	require.False(t, Level(42).ShouldEmit(ScopeDriver))

	lvl, err := ParseLevel("DETAIL")
	require.NoError(t, err)
	require.Equal(t, LevelDetail, lvl)
	_, err = ParseLevel("loud")
	require.ErrorContains(t, err, "off|error|phase|detail|debug")
}

func TestParseModeAndFormat(t *testing.T) {
	m, err := ParseMode("Both")
	require.NoError(t, err)
	require.Equal(t, ModeBoth, m)
	require.Equal(t, "both", m.String())
	_, err = ParseMode("disk")
	require.Error(t, err)

	for in, want := range map[string]Format{"": FormatAuto, "text": FormatText, "json": FormatNDJSON, "NDJSON": FormatNDJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err = ParseFormat("xml")
	require.Error(t, err)
}

func TestStartNestsSpansAndCarriesPath(t *testing.T) {
	ring := NewRingTracer(16, LevelDetail)
	ctx := WithTracer(context.Background(), ring)

	ctx, file := StartFile(ctx, "pkg/a.py", "lint")
	_, pass := Start(ctx, ScopePass, "tokenize")
	_, rule := Start(ctx, ScopeRule, "NoBareExcept")
	rule.End("")
	pass.End("")
	Point(ctx, ScopeFile, "cache-hit", "")
	file.WithExtra("diags", "2").End("")

	events := ring.Snapshot()
	require.Len(t, events, 5, "rule scope is below the detail level")
	require.Equal(t, "lint", events[0].Name)
	require.Equal(t, events[0].SpanID, events[1].ParentID)
	require.Equal(t, events[0].SpanID, events[3].ParentID)
	for _, ev := range events {
		require.Equal(t, "pkg/a.py", ev.Path, ev.Name)
	}
	require.Equal(t, KindSpanEnd, events[4].Kind)
	require.Equal(t, map[string]string{"diags": "2"}, events[4].Extra)
	require.Less(t, events[0].Seq, events[4].Seq)
}

func TestStartWithoutTracer(t *testing.T) {
	ctx, sp := Start(context.Background(), ScopeFile, "file")
	require.Zero(t, sp.ID())
	require.Zero(t, CurrentSpan(ctx).SpanID)
	require.Zero(t, sp.WithExtra("k", "v").End(""))
	Point(ctx, ScopeFile, "nothing", "")
}

func TestRingOverwritesOldest(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	for _, name := range []string{"a", "b", "c"} {
		Point(ctx, ScopeFile, name, "")
	}
	events := ring.Snapshot()
	require.Len(t, events, 2)
	require.Equal(t, "b", events[0].Name)
	require.Equal(t, "c", events[1].Name)

	var buf bytes.Buffer
	require.NoError(t, ring.Dump(&buf, FormatText))
	require.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestFormatText(t *testing.T) {
	origin := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ev := &Event{
		Time:   origin.Add(1500 * time.Microsecond),
		Kind:   KindSpanBegin,
		Scope:  ScopePass,
		Path:   "a.py",
		Name:   "visit",
		Detail: "4 rules",
		Extra:  map[string]string{"z": "1", "a": "2"},
	}
	got := string(FormatEvent(ev, FormatText, origin))
	require.Equal(t, "[    1.500ms]     → visit a.py (4 rules) {a=2, z=1}\n", got)
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeStream, Format: FormatNDJSON, Output: &buf})
	require.NoError(t, err)
	ctx, file := StartFile(WithTracer(context.Background(), tr), "a.py", "lint")
	Point(ctx, ScopeFile, "cache-hit", "")
	file.End("")
	require.NoError(t, tr.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	var ev map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &ev))
	require.Equal(t, "point", ev["kind"])
	require.Equal(t, "file", ev["scope"])
	require.Equal(t, "cache-hit", ev["name"])
	require.Equal(t, "a.py", ev["path"])
	require.NotZero(t, ev["parent_id"])
}

func TestBothModeKeepsRing(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	require.NoError(t, err)
	multi, ok := tr.(*MultiTracer)
	require.True(t, ok)
	ring, ok := multi.Ring()
	require.True(t, ok)

	Point(WithTracer(context.Background(), tr), ScopeDriver, "start", "")
	require.Len(t, ring.Snapshot(), 1)
	require.Contains(t, buf.String(), "• start")
}

func TestHeartbeat(t *testing.T) {
	require.Nil(t, StartHeartbeat(Nop, time.Millisecond))
	ring := NewRingTracer(8, LevelPhase)
	h := StartHeartbeat(ring, time.Millisecond)
	require.Eventually(t, func() bool { return len(ring.Snapshot()) > 0 }, time.Second, time.Millisecond)
	h.Stop()
	h.Stop()
	ev := ring.Snapshot()[0]
	require.Equal(t, KindHeartbeat, ev.Kind)
	require.Equal(t, "#1", ev.Detail)
}

func TestOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	require.NoError(t, err)
	require.False(t, tr.Enabled())
}
