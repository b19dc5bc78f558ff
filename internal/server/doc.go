// Package server drives an owned channel through a request/optional-response
// cycle.
//
// Server.Update performs exactly one blocking read, invokes the handler, and
// writes the response if the handler produced one. Serve repeats Update on
// the caller's goroutine; Daemonize runs the same loop on a background
// goroutine controlled by a cooperative liveness flag.
//
// Termination is cooperative: the flag and the context are checked between
// iterations only. A loop blocked in a read on a stream that never produces
// data can only be released by closing that stream.
//
// Example usage:
//
//	ch := channel.Stdio(serializer.NewJSONLines[string]())
//
//	d := server.Daemonize(ctx, ch,
//	    func(msg string) (string, bool) { return "pong", msg == "ping" },
//	    func(err error) bool { return errors.Is(err, io.EOF) },
//	)
//	defer d.Kill()
package server
