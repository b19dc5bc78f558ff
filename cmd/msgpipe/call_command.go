package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	msgpipe "github.com/wagiedev/msgpipe-go"
)

func newCallCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "call MESSAGE... [-- COMMAND [ARGS...]]",
		Short: "Send messages to a server and print each response",
		Long: "Send each MESSAGE to a server and print its response as a JSON line. " +
			"MESSAGE is parsed as JSON and falls back to a JSON string. The server is " +
			"reached via --socket, or spawned from the command after \"--\". Every " +
			"message must produce exactly one response.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			messages, command := splitAtDash(args, cmd.ArgsLenAtDash())
			if len(messages) == 0 {
				return errors.New("no messages to send")
			}

			s, err := opts.serializer()
			if err != nil {
				return err
			}

			log := opts.logger()
			out := msgpipe.NewWriteChannel(cmd.OutOrStdout())
			printer := msgpipe.NewJSONLines[any]()

			var ch msgpipe.OwnedChannel[any]

			switch {
			case opts.socket != "" && len(command) > 0:
				return errors.New("use either --socket or a command, not both")
			case opts.socket != "":
				conn, err := msgpipe.DialUnix(cmd.Context(), opts.socket, s)
				if err != nil {
					return err
				}
				defer conn.Close()

				ch = conn
			case len(command) > 0:
				//nolint:gosec // G204: the peer command is supplied by the user
				p, err := msgpipe.SpawnStdio(exec.CommandContext(cmd.Context(), command[0], command[1:]...), s, msgpipe.WithLogger(log))
				if err != nil {
					return err
				}

				defer func() {
					_ = p.CloseInput()

					if err := p.Wait(); err != nil {
						log.Warn("Peer exited with error", "error", err)
					}
				}()

				ch = p.Channel()
			default:
				return errors.New("a --socket or a command after \"--\" is required")
			}

			for _, raw := range messages {
				if err := ch.Write(parseMessage(raw)); err != nil {
					return fmt.Errorf("send %q: %w", raw, err)
				}

				reply, err := ch.Read()
				if err != nil {
					return fmt.Errorf("receive response to %q: %w", raw, err)
				}

				if err := msgpipe.WriteTo(out, printer, reply); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

// splitAtDash splits args into messages and the command following "--".
func splitAtDash(args []string, dash int) ([]string, []string) {
	if dash < 0 {
		return args, nil
	}

	return args[:dash], args[dash:]
}

// parseMessage decodes raw as JSON, falling back to the raw string.
func parseMessage(raw string) any {
	var msg any
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return raw
	}

	return msg
}
