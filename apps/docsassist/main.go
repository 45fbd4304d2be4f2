package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/trezcool/codedaily/core"
	"github.com/trezcool/codedaily/core/doctools"
	"github.com/trezcool/codedaily/services/codesearch"
	"github.com/trezcool/codedaily/services/llm"
	logsvc "github.com/trezcool/codedaily/services/logger"
)

func main() {
	conf := core.NewConfig()

	// stdout belongs to the MCP stdio transport
	logger := logsvc.NewRollbarLogger(log.New(os.Stderr, "DOCS : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	provider, err := llm.NewProvider(ctx, conf.LLM)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up LLM provider: %v", err), err)
	}
	cli := commandLine{
		conf:       conf,
		logger:     logger,
		dispatcher: doctools.NewDispatcher(llm.NewCompleter(provider, conf.LLM), codesearch.NewClient(conf.CodeSearch), logger),
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}

	err = cli.run(ctx, os.Args[1:])
	stop()
	logger.Close()
	if err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
