package browser

// UpstreamError means the scheduling site itself answered with an error: a
// non-OK slot API status, an in-page fetch failure, or rejected credentials.
// These are recoverable outcomes of a check, distinct from failures of the
// orchestration (launch errors, selector timeouts).
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}
