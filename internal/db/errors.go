package db

// Op constants map to MongoDB command names for error context.
const (
	OpPing          = "ping"
	OpCount         = "countDocuments"
	OpFind          = "find"
	OpAggregate     = "aggregate"
	OpInsertMany    = "insertMany"
	OpDeleteMany    = "deleteMany"
	OpCreateIndexes = "createIndexes"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
