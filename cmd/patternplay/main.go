package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wbrown/janus-pattern/diagnostics"
	"github.com/wbrown/janus-pattern/mininotation"
	"github.com/wbrown/janus-pattern/scheduler"
	"github.com/wbrown/janus-pattern/scheduler/eventlog"
	"github.com/wbrown/janus-pattern/sink"
)

func main() {
	var patternStr string
	var cps float64
	var duration time.Duration
	var verbose bool
	var help bool
	var logPath string

	flag.StringVar(&patternStr, "pattern", "bd sn bd [sn hh]", "mini-notation pattern to play")
	flag.Float64Var(&cps, "cps", 0.5, "cycles per second")
	flag.DurationVar(&duration, "for", 10*time.Second, "how long to run before stopping (0 = forever)")
	flag.BoolVar(&verbose, "verbose", false, "show scheduler diagnostics")
	flag.BoolVar(&help, "h", false, "show help")
	flag.StringVar(&logPath, "eventlog", "", "append dispatched events to this badger directory")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Parses a mini-notation pattern and plays it against a console sink.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -pattern 'bd*2 sn' -cps 0.5\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -pattern '<bd sn> hh(3,8)' -verbose\n", os.Args[0])
	}
	flag.Parse()

	if help {
		flag.Usage()
		os.Exit(0)
	}

	node, err := mininotation.Parse(patternStr)
	if err != nil {
		log.Fatalf("failed to parse pattern %q: %v", patternStr, err)
	}
	pat, err := mininotation.Lower(node)
	if err != nil {
		log.Fatalf("failed to lower pattern %q: %v", patternStr, err)
	}

	out := sink.NewLogSink(os.Stdout)

	opts := scheduler.Options{}
	if verbose {
		opts.Diagnostics = diagnostics.NewCollector(diagnostics.ConsoleHandler())
	}
	if logPath != "" {
		lg, err := eventlog.Open(logPath)
		if err != nil {
			log.Fatalf("failed to open event log %q: %v", logPath, err)
		}
		defer lg.Close()
		opts.EventLog = lg
	}

	sched := scheduler.New(scheduler.NewRealClock(), out, pat, cps, opts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	if duration > 0 {
		go func() {
			time.Sleep(duration)
			cancel()
		}()
	}

	fmt.Printf("playing %q at %.3f cps\n", patternStr, cps)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}

	<-ctx.Done()
	sched.Stop()
	fmt.Println("stopped")
}
