package html5

import "strconv"

// Result is the status code returned by every registration and removal
// entry point. Only ResultSuccess denotes success.
type Result int

const (
	ResultSuccess           Result = 0
	ResultDeferred          Result = 1
	ResultNotSupported      Result = -1
	ResultFailedNotDeferred Result = -2
	ResultInvalidTarget     Result = -3
	ResultUnknownTarget     Result = -4
	ResultInvalidParam      Result = -5
	ResultFailed            Result = -6
	ResultNoData            Result = -7
	ResultTimedOut          Result = -8
)

// String returns a human-readable result name.
func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultDeferred:
		return "deferred"
	case ResultNotSupported:
		return "not supported"
	case ResultFailedNotDeferred:
		return "failed not deferred"
	case ResultInvalidTarget:
		return "invalid target"
	case ResultUnknownTarget:
		return "unknown target"
	case ResultInvalidParam:
		return "invalid param"
	case ResultFailed:
		return "failed"
	case ResultNoData:
		return "no data"
	case ResultTimedOut:
		return "timed out"
	default:
		return "result(" + strconv.Itoa(int(r)) + ")"
	}
}

// OK reports whether r is ResultSuccess.
func (r Result) OK() bool {
	return r == ResultSuccess
}
