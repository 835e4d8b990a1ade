package models

// SyncTag names the deferred sync registered for the task outbox.
const SyncTag = "sync-todos"

// RegistrationResult is the outcome of asking for a deferred sync. A failed
// registration is reported to the caller for logging and never escalated:
// the mutation stays queued and is delivered by the next scheduled or manual
// drain.
type RegistrationResult struct {
	Tag string
	Err error
}

// Registered reports whether the deferred sync was scheduled.
func (r RegistrationResult) Registered() bool {
	return r.Err == nil
}
