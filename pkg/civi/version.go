package civi

// Version identifies a CiviCRM API generation.
type Version string

const (
	// V3 is the classic APIv3 with its flat parameter convention.
	V3 Version = "v3"

	// V4 is APIv4, which separates values, where, and select segments.
	V4 Version = "v4"
)

func (v Version) String() string {
	return string(v)
}

// Valid reports whether v names a supported API generation.
func (v Version) Valid() bool {
	return v == V3 || v == V4
}

// Standard actions per API generation. The remote side stays authoritative:
// unknown actions are still dispatched and rejected remotely, these lists
// only feed documentation and CLI output.
var knownActions = map[Version][]string{
	V3: {
		"create",
		"delete",
		"get",
		"getcount",
		"getfields",
		"getoptions",
		"getsingle",
		"getvalue",
		"replace",
		"update",
	},
	V4: {
		"checkAccess",
		"create",
		"delete",
		"get",
		"getActions",
		"getFields",
		"replace",
		"save",
		"update",
	},
}

// KnownActions returns the standard action names of the given API
// generation.
func KnownActions(v Version) []string {
	actions := knownActions[v]
	out := make([]string, len(actions))
	copy(out, actions)

	return out
}
