package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("cache version is not specified")

	// ErrMutationDropped means a mutation was acknowledged as queued but the
	// outbox storage stayed unavailable, so it was lost.
	ErrMutationDropped = errors.New("queued mutation dropped")

	ErrManifestEntryFailed = errors.New("manifest entry could not be fetched")
	ErrInstallFailed       = errors.New("cache generation install failed")
	ErrNothingWaiting      = errors.New("no cache generation is waiting")
	ErrEmptyManifest       = errors.New("install manifest is empty")
	ErrGenerationActive    = errors.New("cache generation is already active")
	ErrNoGenerationName    = errors.New("cache generation name is empty")
)
