package models

// History record status values, mirrored from SearchStatus for storage.
const (
	RecordStatusComplete = string(SearchComplete)
	RecordStatusPartial  = string(SearchPartial)
)
