package dto

import "time"

type StartSessionRequest struct {
	DocumentType string `json:"tipo_documento" validate:"required,oneof=tutela derecho_peticion"`
}

type StartSessionResponse struct {
	CaseId         string    `json:"case_id"`
	State          string    `json:"state"`
	MediaServerUrl string    `json:"media_server_url"`
	MediaToken     string    `json:"media_token"`
	RoomName       string    `json:"room_name"`
	TokenExpiresAt time.Time `json:"token_expires_at"`
}

type SessionStatusResponse struct {
	CaseId          string `json:"case_id"`
	State           string `json:"state"`
	ErrorMessage    string `json:"error_message,omitempty"`
	Muted           bool   `json:"muted"`
	MicEnabled      bool   `json:"mic_enabled"`
	AvatarConnected bool   `json:"avatar_connected"`
	AvatarSpeaking  bool   `json:"avatar_speaking"`
	LocalSpeaking   bool   `json:"local_speaking"`
	ElapsedSeconds  int    `json:"elapsed_seconds"`
	SaveStatus      string `json:"save_status"`
}

type SetMuteRequest struct {
	Muted bool `json:"muted"`
}

type ShortcutRequest struct {
	Key          string `json:"key" validate:"required"`
	FocusInInput bool   `json:"focus_in_input"`
}

// MediaEventRequest carries presence and speaking signals relayed by the
// client from the media room.
type MediaEventRequest struct {
	Event       string `json:"event" validate:"required,oneof=avatar_connected avatar_disconnected speaking_changed"`
	Participant string `json:"participant,omitempty"`
	Speaking    bool   `json:"speaking,omitempty"`
}

type TranscriptEventRequest struct {
	Id        string    `json:"id" validate:"required"`
	Role      string    `json:"role" validate:"required,oneof=user assistant"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	IsFinal   bool      `json:"is_final"`
}

type TranscriptMessageResponse struct {
	Id        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	IsFinal   bool      `json:"is_final"`
}

type FinalizeSessionResponse struct {
	CaseId string       `json:"case_id"`
	State  string       `json:"state"`
	Case   CaseResponse `json:"caso"`
}
