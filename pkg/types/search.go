package types

// SearchResult represents the outcome of an esearch call
type SearchResult struct {
	// Count is the total number of records matching the query, which may
	// exceed the number of IDs returned in this page.
	Count int

	// Paging
	RetMax   int
	RetStart int

	// IDs are the matching record UIDs for this page, in relevance order
	// unless a sort was requested.
	IDs []string

	// QueryTranslation is the remote service's expansion of the query term
	QueryTranslation string

	// History server coordinates, present when the search used history
	WebEnv   string
	QueryKey string
}

// RecordSummary represents one record's esummary document
type RecordSummary struct {
	UID     string
	Title   string
	Authors []string

	// Publication metadata, present for literature databases
	Journal string
	PubDate string
	DOI     string
}

// DatabaseInfo describes an NCBI database from einfo or the static catalog
type DatabaseInfo struct {
	Name        string
	MenuName    string
	Description string

	// Count is the number of records in the database; zero when the info
	// came from the static catalog rather than a live einfo call.
	Count      int64
	LastUpdate string
}
