package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CASE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation used by all intake events.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Intake event codes.
const (
	TypeCaseCreated       = "CASE_CREATED"
	TypeCaseDeleted       = "CASE_DELETED"
	TypeSessionFinalized  = "SESSION_FINALIZED"
	TypeDocumentGenerated = "DOCUMENT_GENERATED"
)

func NewCaseCreated(caseId, userId, documentType string) Event {
	return BaseEvent{
		Type: TypeCaseCreated,
		Data: map[string]interface{}{
			"case_id":       caseId,
			"user_id":       userId,
			"document_type": documentType,
		},
		OccurredAt: time.Now(),
	}
}

func NewCaseDeleted(caseId, userId string) Event {
	return BaseEvent{
		Type: TypeCaseDeleted,
		Data: map[string]interface{}{
			"case_id": caseId,
			"user_id": userId,
		},
		OccurredAt: time.Now(),
	}
}

func NewSessionFinalized(caseId, userId string, elapsedSeconds int) Event {
	return BaseEvent{
		Type: TypeSessionFinalized,
		Data: map[string]interface{}{
			"case_id":         caseId,
			"user_id":         userId,
			"elapsed_seconds": elapsedSeconds,
		},
		OccurredAt: time.Now(),
	}
}

func NewDocumentGenerated(caseId, userId, documentType string) Event {
	return BaseEvent{
		Type: TypeDocumentGenerated,
		Data: map[string]interface{}{
			"case_id":       caseId,
			"user_id":       userId,
			"document_type": documentType,
		},
		OccurredAt: time.Now(),
	}
}
