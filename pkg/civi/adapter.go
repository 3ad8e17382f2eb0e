package civi

import "fmt"

// adapter translates between the logical call shape and one API
// generation's wire conventions. Selected once at API construction, never
// branched on per call.
type adapter interface {
	// Prepare builds the wire-format parameter mapping from a copy of the
	// caller's params.
	Prepare(action string, params Params) (Params, error)

	// Parse normalizes decoded transport data into a Result, or surfaces a
	// remote-reported failure as RemoteAPIError.
	Parse(entity, action string, raw any) (*Result, error)
}

func adapterFor(v Version) (adapter, error) {
	switch v {
	case V3:
		return &adapterV3{}, nil
	case V4:
		return &adapterV4{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, v)
	}
}
