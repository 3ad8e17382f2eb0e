package civi

import "context"

// Request is one fully-prepared API call handed to a transport. It is
// ephemeral: built per call, never persisted.
type Request struct {
	Version Version
	Entity  string
	Action  string
	Params  Params
}

// Transport carries a prepared request to the remote API and returns the
// decoded response data. Implementations must not interpret the response
// beyond structural decoding; success and error shapes are the version
// adapter's concern, except for faults the transport itself observes
// (unreachable endpoint, non-zero exit, undecodable bytes).
type Transport interface {
	Execute(ctx context.Context, req *Request) (any, error)
}
