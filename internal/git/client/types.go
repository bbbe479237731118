package client

// Status labels, one per StatusEntry.
const (
	StatusNew        = "new"
	StatusModified   = "modified"
	StatusDeleted    = "deleted"
	StatusRenamed    = "renamed"
	StatusUntracked  = "untracked"
	StatusConflicted = "conflicted"
	StatusUnknown    = "unknown"
)

// StatusEntry is one changed path in the working tree or index.
type StatusEntry struct {
	Path   string `json:"path"`
	Status string `json:"status"`
	Staged bool   `json:"staged"`
}

// LogEntry is one commit as shown in history.
type LogEntry struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Author  string `json:"author"`
	Time    int64  `json:"time"`
}

// BranchInfo is one local or remote-tracking branch.
type BranchInfo struct {
	Name      string `json:"name"`
	IsCurrent bool   `json:"isCurrent"`
	IsRemote  bool   `json:"isRemote"`
}
