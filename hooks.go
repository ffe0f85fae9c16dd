package dictcache

// Hooks are lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; refresh workers and
// read paths call them inline.
type Hooks interface {
	// A refresh replaced the hash with types groups holding entries records.
	RefreshCompleted(hashKey string, types, entries int)

	// A refresh finished without writing.
	// reason ∈ {"empty_snapshot", "gen_mismatch"}
	RefreshSkipped(hashKey, reason string)

	// A refresh failed at stage ∈ {"load", "encode", "store"}.
	RefreshFailed(hashKey, stage string, err error)

	// The refresh queue was full (or closed) and the task was not accepted.
	RefreshDropped(hashKey string)

	// The hash store failed on a read path. op ∈ {"get_all", "get"}
	ReadFailed(hashKey, op string, err error)

	// A cached field could not be decoded and was left out of the result.
	DecodeFailed(hashKey, field string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) RefreshCompleted(string, int, int)   {}
func (NopHooks) RefreshSkipped(string, string)       {}
func (NopHooks) RefreshFailed(string, string, error) {}
func (NopHooks) RefreshDropped(string)               {}
func (NopHooks) ReadFailed(string, string, error)    {}
func (NopHooks) DecodeFailed(string, string, error)  {}
