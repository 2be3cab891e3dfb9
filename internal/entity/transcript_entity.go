package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	TranscriptRoleUser      = "user"
	TranscriptRoleAssistant = "assistant"
)

// TranscriptMessage is one persisted utterance of the intake conversation.
// ExternalId is the transport-assigned segment id; Position preserves
// first-appearance order.
type TranscriptMessage struct {
	Id         uuid.UUID
	CaseId     uuid.UUID
	ExternalId string
	Role       string
	Text       string
	Timestamp  time.Time
	IsFinal    bool
	Position   int
	CreatedAt  time.Time
}
