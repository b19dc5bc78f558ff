package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	msgpipe "github.com/wagiedev/msgpipe-go"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Echo every message back to its sender",
		Long: "Run an echo server. Without --socket it reads requests from stdin and " +
			"writes responses to stdout until stdin ends.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.serializer()
			if err != nil {
				return err
			}

			log := opts.logger()
			echo := func(msg any) (any, bool) {
				log.Debug("Echoing message")

				return msg, true
			}

			if opts.socket == "" {
				return serveStdio(cmd.Context(), s, echo, log)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			l, err := msgpipe.Listen(opts.socket, msgpipe.WithLogger(log), msgpipe.WithName("echo"))
			if err != nil {
				return err
			}
			defer l.Close()

			err = msgpipe.Serve[any](ctx, l, s, echo, func(err error) bool {
				log.Warn("Dropping malformed request", "error", err)

				return false
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}

			return err
		},
	}
}

// serveStdio runs the echo server on stdin/stdout until stdin ends.
// Malformed requests are logged and skipped; a frame cut short by the end
// of stdin is returned as an error.
func serveStdio(ctx context.Context, s msgpipe.Serializer[any], echo msgpipe.Handler[any], log *slog.Logger) error {
	srv := msgpipe.NewServer[any](msgpipe.Stdio(s), echo, msgpipe.WithLogger(log), msgpipe.WithName("echo"))

	err := srv.Serve(ctx, func(err error) bool {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return true
		}

		log.Warn("Dropping malformed request", "error", err)

		return false
	})
	if errors.Is(err, io.EOF) {
		return nil
	}

	return err
}
