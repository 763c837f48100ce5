package datastore

// Tier identifies which storage tier answered an operation. The
// facade degrades from the remote API to the local mirror instead of
// failing, and callers that care (tests, a status indicator) can
// inspect the tier instead of guessing.
type Tier int

const (
	// TierRemote means the hosted API served the call.
	TierRemote Tier = iota
	// TierMirror means the local fallback store served the call.
	TierMirror
)

func (t Tier) String() string {
	switch t {
	case TierRemote:
		return "remote"
	case TierMirror:
		return "mirror"
	default:
		return "unknown"
	}
}
