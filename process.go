package msgpipe

import (
	"os/exec"

	"github.com/wagiedev/msgpipe-go/internal/subprocess"
)

// Process is a running peer with an owned channel bound to its stdio.
type Process[M any] = subprocess.Process[M]

// SpawnStdio starts cmd and returns a channel writing to its stdin and
// reading from its stdout. The child's stderr, unless already redirected,
// is forwarded to the logger at debug level.
func SpawnStdio[M any](cmd *exec.Cmd, s Serializer[M], opts ...Option) (*Process[M], error) {
	return subprocess.Spawn(cmd, s, subprocess.Stdout, opts...)
}

// SpawnStdie starts cmd and returns a channel writing to its stdin and
// reading from its stderr.
func SpawnStdie[M any](cmd *exec.Cmd, s Serializer[M], opts ...Option) (*Process[M], error) {
	return subprocess.Spawn(cmd, s, subprocess.Stderr, opts...)
}
