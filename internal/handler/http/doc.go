// Package http implements the proxy's HTTP transport.
//
// Every request outside the control prefix is reduced to a models.Request and
// handed to the dispatcher, whose answer is written back with an
// X-Offline-Source header. The control endpoints flush the outbox, activate
// a waiting cache generation and report status and build information.
// Request tracing and access logging wrap both.
package http
