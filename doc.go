// Package msgpipe provides typed, message-oriented inter-process
// communication over arbitrary byte streams: process pipes, unix domain
// sockets and standard I/O.
//
// The package has three parts.
//
// # Serializer
//
// A Serializer turns a buffered byte stream into a stream of typed messages
// and back. JSONLines (one JSON value per line) and Frames (length-prefixed
// payloads using any Codec, such as CBOR or Protobuf) are provided:
//
//	s := msgpipe.NewJSONLines[string]()
//
// # Channel
//
// Channels adapt concrete streams to a Serializer. An OwnedChannel also owns
// its serializer and exposes parameterless Read, TryRead and Write:
//
//	ch := msgpipe.Stdio(s)                                   // stdin + stdout
//	ch, err := msgpipe.DialUnix(ctx, "/run/peer.sock", s)     // one duplex socket
//
// # Server and Daemon
//
// A Server answers each message read from a channel with an optional
// response. Daemonize runs that loop on a background goroutine:
//
//	d := msgpipe.Daemonize(ctx, msgpipe.Stdio(s),
//	    func(msg string) (string, bool) {
//	        if msg == "ping" {
//	            return "pong", true
//	        }
//	        return "", false
//	    },
//	    func(err error) bool { return errors.Is(err, io.EOF) },
//	    msgpipe.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))),
//	)
//	<-d.Done()
//
// When stdout carries messages, diagnostics must go to stderr.
//
// # Client
//
// A client usually spawns the server binary and talks to it over its stdio:
//
//	p, err := msgpipe.SpawnStdio(exec.Command("path/to/server"), s)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	if err := p.Channel().Write("ping"); err != nil {
//	    return err
//	}
//	reply, err := p.Channel().Read() // "pong"
//
// WithProcess wraps the same steps and shuts the peer down when the
// callback returns.
//
// Exactly one request is in flight per call. msgpipe does not correlate
// requests with responses, multiplex streams, or retry failed writes; those
// belong to the protocol built on top.
package msgpipe
