// Package server runs the proxy's HTTP server together with the background
// workers, and shuts both down gracefully on SIGTERM, SIGINT or SIGQUIT.
package server
