package events

// Topics published on the application bus.
var (
	ResetRequestedTopic   = "ResetRequestedEvent"
	CandidateAppliedTopic = "CandidateAppliedEvent"
)

// ResetRequested is published when a password reset token has been
// issued and a notification email should go out.
type ResetRequested struct {
	Name     string
	Email    string
	ResetURL string
}

// CandidateApplied is published when a candidate applied to a posting,
// so the posting owner can be notified.
type CandidateApplied struct {
	OwnerName     string
	OwnerEmail    string
	PostingTitle  string
	CandidateName string
}
