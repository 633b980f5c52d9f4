package common

// ScanConfiguration controls one pass over the inbox.
type ScanConfiguration struct {
	MaxMessages    int
	RequireSender  bool
	SilentOnReject bool
}
