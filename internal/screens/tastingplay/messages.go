package tastingplay

import (
	"github.com/baiyu/pjexam/internal/progress"
	"github.com/baiyu/pjexam/internal/tasting"
)

// resumePromptMsg is sent when a stored snapshot is worth offering.
type resumePromptMsg struct {
	Snap *progress.TastingSnapshot
}

// sessionReadyMsg is sent when a session (fresh or restored) is live.
type sessionReadyMsg struct {
	Session *tasting.Session
	Err     error
}
