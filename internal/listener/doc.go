// Package listener serves owned channels over a unix domain socket.
//
// Listen guards the socket path with an advisory file lock so that two
// listeners never fight over the same path, and Serve runs one server loop
// per accepted connection. Connections are independent: there is no ordering
// between them and no shared state beyond the handler the caller supplies.
package listener
