// Command msgpipe is a small demonstration of the msgpipe library.
//
// "msgpipe serve" runs an echo server on standard I/O or on a unix socket,
// and "msgpipe call" sends messages to such a server, either over a socket
// or by spawning it as a child process:
//
//	msgpipe call '"ping"' '{"n":1}' -- msgpipe serve
//	msgpipe serve --socket /tmp/echo.sock &
//	msgpipe call --socket /tmp/echo.sock --codec cbor '"ping"'
//
// Logs always go to stderr because stdout may carry messages.
package main
