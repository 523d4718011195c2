package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	ccmcp "github.com/oychao1988/content-creator/internal/mcp"
)

// mcpFlags holds the flag values for the mcp command.
type mcpFlags struct {
	instructions bool
	httpAddr     string
}

// NewMCPCommand creates the "mcp" cobra command.
func NewMCPCommand() *cobra.Command {
	flags := &mcpFlags{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server",
		Long: `Start an MCP server exposing the task operations as tools
(cc_create, cc_status, cc_list, cc_result, cc_retry, cc_cancel) plus
cc_inspect and cc_history for drilling into recorded invocations.

By default it serves over stdio; with --http it serves the streamable
HTTP transport on the given address.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.instructions {
				fmt.Fprint(cmd.OutOrStdout(), ccmcp.Instructions)
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return serveMCP(ctx, flags.httpAddr)
		},
	}

	cmd.Flags().BoolVar(&flags.instructions, "instructions", false, "Print model instructions and exit")
	cmd.Flags().StringVar(&flags.httpAddr, "http", "", "Serve HTTP on this address (e.g. :9090) instead of stdio")

	return cmd
}

func serveMCP(ctx context.Context, httpAddr string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}

	server := ccmcp.NewServer(env.Engine, env.Store)

	if httpAddr != "" {
		return serveHTTP(ctx, server, httpAddr)
	}
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

func serveHTTP(ctx context.Context, server *mcpsdk.Server, addr string) error {
	handler := mcpsdk.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcpsdk.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	log.Printf("listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
