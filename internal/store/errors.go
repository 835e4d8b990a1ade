package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrCacheMiss is returned by Match when nothing is stored for the key.
	ErrCacheMiss = errors.New("cache entry not found")

	// ErrTransient wraps driver errors classified as [Retryable]: the
	// operation may succeed if attempted again.
	ErrTransient = errors.New("transient storage error")

	// ErrUnsupportedDSN is returned when the DSN matches no known driver.
	ErrUnsupportedDSN = errors.New("unsupported database dsn")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrDecodingSnapshot is returned when stored headers cannot be decoded.
	ErrDecodingSnapshot = errors.New("failed to decode cached snapshot")
)

// IsCacheMiss reports whether err means nothing was stored for the key.
func IsCacheMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss)
}
