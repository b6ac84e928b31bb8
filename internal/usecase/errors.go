package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrSyncInProgress means a sync operation was requested while an
	// earlier one is still running on this client. Callers skip, they do
	// not queue.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrWorkingOffline means an upload failed on every transport path,
	// so the client keeps its local snapshot and reports offline status.
	ErrWorkingOffline = errors.New("working offline")

	// ErrPartialPersist means a multi-document write landed only one of
	// the two documents. The caller must treat the operation as failed
	// and re-download to get back to a known-consistent state.
	ErrPartialPersist = errors.New("partial persist")
)
