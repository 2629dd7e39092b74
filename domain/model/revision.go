package model

import "time"

// Revision is a persisted snapshot of a loaded descriptor set. Changes to
// the desired state are expressed as new revisions; existing revisions are
// never modified.
type Revision struct {
	ID         string
	SourcePath string // file or directory the set was loaded from
	Source     string // canonical manifest text of the set
	Digest     string // content digest of Source, stable across reloads
	Documents  int    // number of descriptors in the set
	Applied    bool   // whether this revision has been submitted to a cluster
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
