package notify

import "context"

// Template kinds understood by notifier implementations
const (
	KindPracticeRetired = "practice_retired"
	KindDueIssued       = "due_issued"
)

// Notifier delivers best-effort notices to members. Implementations own
// their retry policy; callers treat every send as fire-and-forget and
// never let a failure affect already-committed state.
type Notifier interface {
	Notify(ctx context.Context, memberID int64, kind string, payload map[string]string) error
}
