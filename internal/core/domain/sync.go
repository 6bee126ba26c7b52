package domain

// Rekey moves a record from OldKey to NewKey without refetching it.
type Rekey struct {
	OldKey string
	NewKey string
}

// SyncPlan partitions a remote listing against the cache index.
// Key slices are sorted; Fetch and Rekey keep listing order.
type SyncPlan struct {
	Retain []string
	Fetch  []RemoteEntry
	Delete []string
	Rekey  []Rekey

	// Order holds every listed filename once, in listing order of its
	// last occurrence. A merge applies entries in this order, so when two
	// files resolve to the same key the later one wins.
	Order []string
}

// CollectionReport summarises one collection of a sync pass.
type CollectionReport struct {
	Name     string
	Listed   int
	Retained int
	Fetched  int
	Failed   int
	Deleted  int
	Rekeyed  int

	// Stale is set when the listing could not be obtained and the
	// previous cache was kept verbatim.
	Stale bool
}

// SyncReport summarises a whole sync pass.
type SyncReport struct {
	Data     CollectionReport
	Licenses CollectionReport

	// Changed is set when the resulting cache differs from the loaded one.
	Changed bool
}
