package sink

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/wbrown/janus-pattern/pattern"
)

// LogSink renders every dispatched event as its own one-row markdown
// table (header plus row), preceded once by a banner, for interactive
// debugging of a live pattern. Grounded on the
// teacher's TableFormatter (markdown-rendered relations) and
// OutputFormatter/RelationRenderer's TTY-aware colorizing.
type LogSink struct {
	mu       sync.Mutex
	writer   io.Writer
	useColor bool
	rows     int
}

// NewLogSink builds a LogSink writing to w, auto-detecting color
// support the same way the teacher's OutputFormatter does (os.Stdout/
// os.Stderr are assumed color-capable, anything else is not).
func NewLogSink(w io.Writer) *LogSink {
	if w == nil {
		w = os.Stdout
	}
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = f == os.Stdout || f == os.Stderr
	}
	return &LogSink{writer: w, useColor: useColor}
}

func (s *LogSink) OnEvent(v pattern.Value, whole *pattern.TimeSpan, part pattern.TimeSpan, deadline, cps float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows++

	var b strings.Builder
	table := tablewriter.NewTable(&b,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header([]string{"deadline", "whole", "part", "value"})
	table.Append([]string{
		fmt.Sprintf("%.4f", deadline),
		spanString(whole),
		fmt.Sprintf("%s..%s", part.Begin.String(), part.End.String()),
		v.String(),
	})
	table.Render()

	fmt.Fprint(s.writer, s.colorizeHeader())
	fmt.Fprint(s.writer, b.String())
	return nil
}

func (s *LogSink) OnHush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.writer, s.colorize("-- hush --", color.FgYellow))
}

func spanString(ts *pattern.TimeSpan) string {
	if ts == nil {
		return "-"
	}
	return fmt.Sprintf("%s..%s", ts.Begin.String(), ts.End.String())
}

func (s *LogSink) colorize(text string, attr color.Attribute) string {
	if !s.useColor {
		return text
	}
	return color.New(attr).Sprint(text)
}

func (s *LogSink) colorizeHeader() string {
	if s.rows != 1 {
		return ""
	}
	return s.colorize("== pattern dispatch log ==\n", color.FgCyan)
}
