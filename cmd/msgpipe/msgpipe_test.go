package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	msgpipe "github.com/wagiedev/msgpipe-go"
)

const helperEnv = "MSGPIPE_WANT_CLI_HELPER"

// TestHelperProcess runs "msgpipe serve" when invoked as a child of a test.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}

	cmd := newRootCommand()
	cmd.SetArgs([]string{"serve"})

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}

	os.Exit(0)
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func startEcho(t *testing.T, codec string) string {
	t.Helper()

	opts := &rootOptions{codec: codec}
	s, err := opts.serializer()
	require.NoError(t, err)

	l, err := msgpipe.Listen(filepath.Join(t.TempDir(), "echo.sock"))
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping socket test: %v", err)
		}

		require.NoError(t, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)

		_ = msgpipe.Serve[any](ctx, l, s, func(msg any) (any, bool) { return msg, true }, func(error) bool { return false })
	}()

	t.Cleanup(func() {
		cancel()
		<-done
		_ = l.Close()
	})

	return l.Path()
}

func TestCall_OverSocket(t *testing.T) {
	for _, codec := range []string{"jsonl", "json", "cbor"} {
		t.Run(codec, func(t *testing.T) {
			path := startEcho(t, codec)

			out, err := runCommand(t, "call", "--socket", path, "--codec", codec, "ping", `{"n":1}`)
			require.NoError(t, err)
			require.Equal(t, "\"ping\"\n{\"n\":1}\n", out)
		})
	}
}

func TestCall_SpawnsServeCommand(t *testing.T) {
	t.Setenv(helperEnv, "1")

	out, err := runCommand(t, "call", `"ping"`, "[1,2]", "--", os.Args[0], "-test.run=^TestHelperProcess$")
	require.NoError(t, err)
	require.Equal(t, "\"ping\"\n[1,2]\n", out)
}

func TestServe_AnswersUnterminatedFinalLine(t *testing.T) {
	//nolint:gosec // G204: re-executing the test binary as a helper process
	cmd := exec.Command(os.Args[0], "-test.run=^TestHelperProcess$")
	cmd.Env = append(os.Environ(), helperEnv+"=1")
	cmd.Stdin = strings.NewReader(`"first"` + "\n" + `"last"`)

	out, err := cmd.Output()
	require.NoError(t, err)
	require.Equal(t, "\"first\"\n\"last\"\n", string(out))
}

func TestCall_RequiresPeer(t *testing.T) {
	_, err := runCommand(t, "call", "ping")
	require.ErrorContains(t, err, "--socket")
}

func TestCall_RejectsSocketAndCommand(t *testing.T) {
	_, err := runCommand(t, "call", "--socket", "/tmp/x.sock", "ping", "--", "cat")
	require.ErrorContains(t, err, "not both")
}

func TestSerializer(t *testing.T) {
	for _, name := range []string{"", "jsonl", "json", "CBOR"} {
		s, err := (&rootOptions{codec: name}).serializer()
		require.NoError(t, err, name)
		require.NotNil(t, s)
	}

	_, err := (&rootOptions{codec: "proto"}).serializer()
	require.ErrorContains(t, err, "generated message types")

	_, err = (&rootOptions{codec: "yaml"}).serializer()
	require.ErrorIs(t, err, msgpipe.ErrUnknownCodec)
}

func TestParseMessage(t *testing.T) {
	require.Equal(t, "ping", parseMessage("ping"))
	require.Equal(t, "ping", parseMessage(`"ping"`))
	require.Equal(t, map[string]any{"n": float64(1)}, parseMessage(`{"n":1}`))
	require.Equal(t, "{broken", parseMessage("{broken"))
}

func TestSplitAtDash(t *testing.T) {
	messages, command := splitAtDash([]string{"a", "b", "cat", "-n"}, 2)
	require.Equal(t, []string{"a", "b"}, messages)
	require.Equal(t, []string{"cat", "-n"}, command)

	messages, command = splitAtDash([]string{"a"}, -1)
	require.Equal(t, []string{"a"}, messages)
	require.Nil(t, command)
}
