package processor

// ScanSummary describes one pass over a batch of raw messages.
type ScanSummary struct {
	Fetched    int
	New        int
	Duplicates int
	Rejected   int
	Errors     []error
}
