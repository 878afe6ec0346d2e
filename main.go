package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/kbase/singlegenome/config"
	"github.com/kbase/singlegenome/journal"
	"github.com/kbase/singlegenome/pipeline"
	"github.com/kbase/singlegenome/tools"
)

func main() {
	// Interrupting the program kills the external program currently running
	// and aborts the run.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// runs the program with the given arguments, returning its exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	console := pipeline.NewConsole(stdout, stderr)

	conf, err := config.Parse(args, stdout)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		console.Fatal(err)
		return 1
	}

	if conf.PrintOptions {
		text, err := conf.YAML()
		if err != nil {
			console.Fatal(err)
			return 1
		}
		fmt.Fprint(stdout, text)
		return 0
	}

	if err := conf.Validate(); err != nil {
		console.Fatal(err)
		return 1
	}

	// the journal is closed however the run ends
	var runJournal *journal.Journal
	if conf.Journal != "" {
		runJournal, err = journal.Open(conf.Journal)
		if err != nil {
			console.Fatal(err)
			return 1
		}
		defer runJournal.Close()
	}

	p := pipeline.New(conf, tools.NewExecRunner(stdout, stderr), stdout, stderr)
	p.Journal = runJournal
	if _, err := p.Run(ctx); err != nil {
		console.Fatal(err)
		return 1
	}
	return 0
}
