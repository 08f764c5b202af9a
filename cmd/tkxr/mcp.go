package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tkxr/tkxr/internal/mcp"
)

// runMCP serves MCP over stdio by default, or over streamable HTTP with
// --http. On stdio, logs stay on stderr so stdout carries only JSON-RPC
// frames.
func (a *app) runMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	useHTTP := fs.Bool("http", false, "serve MCP over streamable HTTP instead of stdio")
	host := fs.String("host", a.cfg.Server.Host, "host to bind (with --http)")
	port := fs.Int("port", a.cfg.Server.Port, "port to bind (with --http)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc, err := a.service(false)
	if err != nil {
		return err
	}

	mcpServer := mcp.NewServer(mcp.Config{
		Service: svc,
		Logger:  a.logger,
	})

	if *useHTTP {
		return a.runMCPHTTP(mcpServer, *host, *port)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		a.logger.Info("shutting down")
		cancel()
	}()

	a.logger.Info("starting stdio transport")
	return mcpServer.Run(ctx, &sdkmcp.StdioTransport{})
}

func (a *app) runMCPHTTP(mcpServer *sdkmcp.Server, host string, port int) error {
	handler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	mux := http.NewServeMux()
	mux.Handle("/mcp", handler)
	mux.Handle("/mcp/", handler)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("mcp listening", slog.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.logger.Info("shutting down")
	return httpServer.Shutdown(ctx)
}
