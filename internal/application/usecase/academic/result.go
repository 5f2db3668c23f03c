package academic

// WriteState is the terminal state of a write operation.
type WriteState int

const (
	Committed WriteState = iota
	// Rejected: validation, a deletion guard or a storage constraint refused the write.
	Rejected
	NotFound
	// NotFoundOnRecheck: the commit conflicted and the row no longer exists.
	NotFoundOnRecheck
	// FatalConflict: the commit conflicted and the row still exists.
	FatalConflict
	StorageError
)

func (s WriteState) String() string {
	switch s {
	case Committed:
		return "committed"
	case Rejected:
		return "rejected"
	case NotFound:
		return "not_found"
	case NotFoundOnRecheck:
		return "not_found_on_recheck"
	case FatalConflict:
		return "fatal_conflict"
	case StorageError:
		return "storage_error"
	}
	return "unknown"
}

// WriteResult carries the outcome of a write and, unless it committed, the cause.
type WriteResult struct {
	State WriteState
	Err   error
}

func (r WriteResult) OK() bool { return r.State == Committed }
