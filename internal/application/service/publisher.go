package service

import (
	"context"
	"time"
)

type ProfileEventType string

const (
	EventBasicInfoSaved     ProfileEventType = "basic_info_saved"
	EventPhotoUpdated       ProfileEventType = "photo_updated"
	EventSkillAdded         ProfileEventType = "skill_added"
	EventSkillRemoved       ProfileEventType = "skill_removed"
	EventCertificateAdded   ProfileEventType = "certificate_added"
	EventCertificateRemoved ProfileEventType = "certificate_removed"
	EventProjectAdded       ProfileEventType = "project_added"
	EventProjectRemoved     ProfileEventType = "project_removed"
	EventProfileReset       ProfileEventType = "profile_reset"
	EventResumeExported     ProfileEventType = "resume_exported"
	EventProfileRestored    ProfileEventType = "profile_restored"
)

type ProfileEvent struct {
	EventType    ProfileEventType `json:"event_type"`
	SessionID    string           `json:"session_id"`
	Completeness int              `json:"completeness"`
	Subject      string           `json:"subject,omitempty"`
	OccurredAt   time.Time        `json:"occurred_at"`
}

// EventPublisher announces profile changes to whoever tracks progress.
type EventPublisher interface {
	PublishProfileEvent(ctx context.Context, evt ProfileEvent) error
}
