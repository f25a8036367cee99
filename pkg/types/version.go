package types

// VersionStatus is the outcome of resolving a requested API version.
// Using strings allows direct matching with YAML/JSON values and keeps
// the set open for new statuses without breaking callers.
type VersionStatus string

const (
	// VersionAvailable means the version is released and served.
	VersionAvailable VersionStatus = "available"
	// VersionUnknown means the version has not been released (or never existed).
	VersionUnknown VersionStatus = "unknown"
	// VersionRemoved means the version was released once and has been retired.
	VersionRemoved VersionStatus = "removed"
)

// IsAvailable returns true if the status carries a usable API payload.
func (s VersionStatus) IsAvailable() bool {
	return s == VersionAvailable
}

// String implements the Stringer interface.
func (s VersionStatus) String() string {
	return string(s)
}

// AllVersionStatuses returns all known statuses.
func AllVersionStatuses() []VersionStatus {
	return []VersionStatus{
		VersionAvailable,
		VersionUnknown,
		VersionRemoved,
	}
}

// ParseVersionStatus converts a string to a VersionStatus.
// Returns the status and true if valid, or empty and false if unknown.
func ParseVersionStatus(s string) (VersionStatus, bool) {
	v := VersionStatus(s)
	switch v {
	case VersionAvailable, VersionUnknown, VersionRemoved:
		return v, true
	default:
		return "", false
	}
}
