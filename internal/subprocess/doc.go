// Package subprocess spawns a peer process and exposes its stdio as an owned
// channel.
//
// The parent writes to the child's stdin and reads from either its stdout or
// its stderr. When messages travel over stdout, the child's stderr is drained
// line by line into the logger so that diagnostics are not lost.
package subprocess
