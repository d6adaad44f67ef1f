package customer

// OperationResult is the outcome of Update and Delete: either a success token
// (possibly nil when the store reported no affected row) or a non-empty list
// of validation failures. Only one side is ever populated.
type OperationResult struct {
	id       *int64
	failures []ValidationFailure
}

func Succeeded(id *int64) OperationResult {
	return OperationResult{id: id}
}

func Rejected(failures []ValidationFailure) OperationResult {
	if len(failures) == 0 {
		panic("rejected operation result needs at least one validation failure")
	}
	cp := make([]ValidationFailure, len(failures))
	copy(cp, failures)
	return OperationResult{failures: cp}
}

func (r OperationResult) IsSuccess() bool {
	return len(r.failures) == 0
}

// ID returns the success token. It is nil for rejected results.
func (r OperationResult) ID() *int64 {
	return r.id
}

func (r OperationResult) Failures() []ValidationFailure {
	return r.failures
}
