package server

// Server defines the lifecycle contract of the proxy process.
//
// RunServer blocks until a stop signal arrives or the listener fails, and
// returns only after everything has been shut down.
type Server interface {
	RunServer() error
	Shutdown()
}
