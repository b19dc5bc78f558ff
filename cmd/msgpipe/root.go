package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	msgpipe "github.com/wagiedev/msgpipe-go"
)

type rootOptions struct {
	socket  string
	codec   string
	verbose bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "msgpipe",
		Short:         "Exchange typed messages over stdio pipes and unix sockets",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.socket, "socket", "", "Unix socket path instead of stdio")
	rootCmd.PersistentFlags().StringVar(&opts.codec, "codec", "jsonl", "Wire format: jsonl, json or cbor")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newCallCommand(opts))

	return rootCmd
}

func (o *rootOptions) logger() *slog.Logger {
	if !o.verbose {
		return msgpipe.NopLogger()
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// serializer returns the wire format selected by --codec. "jsonl" is
// newline-delimited JSON; any other registered codec is length-prefixed.
func (o *rootOptions) serializer() (msgpipe.Serializer[any], error) {
	if o.codec == "" || o.codec == "jsonl" {
		return msgpipe.NewJSONLines[any](), nil
	}

	if o.codec == "proto" {
		return nil, fmt.Errorf("codec %q needs generated message types and cannot carry arbitrary values", o.codec)
	}

	registry, err := msgpipe.NewCodecRegistry()
	if err != nil {
		return nil, err
	}

	c, err := registry.Lookup(o.codec)
	if err != nil {
		return nil, err
	}

	return msgpipe.NewFrames[any](c), nil
}
