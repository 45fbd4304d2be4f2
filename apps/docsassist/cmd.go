package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/trezcool/codedaily/core"
	"github.com/trezcool/codedaily/core/doctools"
)

// Transports
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf       *core.Config
	logger     core.Logger
	dispatcher *doctools.Dispatcher
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "docsassist",
		Short:         "Programming documentation assistant served as tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Usage()
			return errHelp
		},
	}
	root.SetIn(cli.stdin)
	root.SetOut(cli.stdout)
	root.SetErr(cli.stderr)
	root.AddCommand(
		cli.serveCmd(),
		cli.toolsCmd(),
		cli.callCmd(),
	)
	return root
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	root := cli.rootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (cli *commandLine) serveCmd() *cobra.Command {
	var transport, addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tools over MCP stdio (default) or HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch transport {
			case TransportStdio:
				return cli.serveStdio(cmd.Context())
			case TransportHTTP:
				return cli.serveHTTP(cmd.Context(), addr)
			default:
				return fmt.Errorf("unknown transport %q", transport)
			}
		},
	}
	cmd.Flags().StringVar(&transport, "transport", TransportStdio, "stdio | http")
	cmd.Flags().StringVar(&addr, "addr", cli.conf.DocsAssist.Address, "HTTP listen address")
	return cmd
}

// serveStdio blocks until stdin is closed or ctx is done. Stdout only carries protocol messages.
func (cli *commandLine) serveStdio(ctx context.Context) error {
	cli.logger.Info(fmt.Sprintf("%s %s serving on stdio", cli.conf.DocsAssist.Name, cli.conf.DocsAssist.Version))

	srv := newToolServer(cli.conf.DocsAssist, cli.dispatcher)
	if err := srv.Listen(ctx, cli.stdin, cli.stdout, log.New(cli.stderr, "MCP : ", log.LstdFlags)); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (cli *commandLine) serveHTTP(ctx context.Context, addr string) error {
	app := newHTTPServer(cli.dispatcher, !cli.conf.Server.DisableReqLogs)

	errs := make(chan error, 1)
	go func() {
		cli.logger.Info(fmt.Sprintf("%s %s listening on %s", cli.conf.DocsAssist.Name, cli.conf.DocsAssist.Version, addr))
		if err := app.Start(addr); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cli.conf.Server.ShutdownTimeout)
		defer cancel()
		if err := app.Shutdown(shutdownCtx); err != nil {
			cli.logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
			return app.Close()
		}
		return nil
	}
}

func (cli *commandLine) toolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool catalog as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(doctools.Catalog())
		},
	}
}

func (cli *commandLine) callCmd() *cobra.Command {
	var rawArgs string
	cmd := &cobra.Command{
		Use:   "call TOOL",
		Short: "Run one tool and print its text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolArgs := map[string]interface{}{}
			if rawArgs != "" {
				if err := json.Unmarshal([]byte(rawArgs), &toolArgs); err != nil {
					return fmt.Errorf("--args must be a JSON object: %v", err)
				}
			}
			res := cli.dispatcher.Dispatch(cmd.Context(), args[0], toolArgs)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), res.Text())
			return err
		},
	}
	cmd.Flags().StringVar(&rawArgs, "args", "", `Tool arguments as a JSON object, eg: '{"topic": "Go channels"}'`)
	return cmd
}
