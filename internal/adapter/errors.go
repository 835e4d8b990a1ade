package adapter

import "errors"

var (
	// ErrNetworkUnavailable means the request produced no response at all.
	ErrNetworkUnavailable = errors.New("network unavailable")

	ErrInvalidAddress = errors.New("invalid upstream address")
)
