package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// OutputFormatter renders Events for a terminal, colorizing when the
// destination looks like one. Ported from the teacher's
// annotations.OutputFormatter.
type OutputFormatter struct {
	writer   io.Writer
	useColor bool
}

func NewOutputFormatter(w io.Writer) *OutputFormatter {
	if w == nil {
		w = os.Stdout
	}
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = f == os.Stdout || f == os.Stderr
	}
	return &OutputFormatter{writer: w, useColor: useColor}
}

// Handle implements Handler.
func (f *OutputFormatter) Handle(ev Event) {
	if out := f.Format(ev); out != "" {
		fmt.Fprintln(f.writer, out)
	}
}

func (f *OutputFormatter) Format(ev Event) string {
	switch ev.Name {
	case QueryError:
		return fmt.Sprintf("%s %v", f.colorize("query error:", color.FgRed), ev.Data["error"])
	case ParserError:
		return fmt.Sprintf("%s %v", f.colorize("parse error:", color.FgRed), ev.Data["error"])
	case SchedulerClockDrift:
		return fmt.Sprintf("%s now=%.4f window_end=%.4f streak=%v",
			f.colorize("clock drift:", color.FgYellow), ev.Data["now"], ev.Data["window_end"], ev.Data["streak"])
	case SchedulerTickDrop:
		return fmt.Sprintf("%s deadline=%.4f now=%.4f",
			f.colorize("dropped late event:", color.FgYellow), ev.Data["deadline"], ev.Data["now"])
	case SchedulerSinkError:
		return fmt.Sprintf("%s %v", f.colorize("sink error:", color.FgRed), ev.Data["error"])
	case SchedulerTickEnd:
		return fmt.Sprintf("%s phase=%.4f", f.colorize("tick", color.FgGreen), ev.Data["phase"])
	default:
		return fmt.Sprintf("%s %v", ev.Name, ev.Data)
	}
}

func (f *OutputFormatter) colorize(text string, attr color.Attribute) string {
	if !f.useColor {
		return text
	}
	return color.New(attr).Sprint(text)
}

// ConsoleHandler is a convenience Handler writing formatted events to
// stdout, mirroring the teacher's ConsoleHandler.
func ConsoleHandler() Handler {
	f := NewOutputFormatter(os.Stdout)
	return f.Handle
}
