package backup

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/skillsync/internal/application/service"
	"github.com/khoahotran/skillsync/internal/domain/profile"
	"github.com/khoahotran/skillsync/pkg/apperror"
	"github.com/khoahotran/skillsync/pkg/logger"
)

// MaxBackupBytes bounds a restore upload. Inline photos dominate the size.
const MaxBackupBytes = 8 << 20

// BackupUseCase exports a session profile as a JSON file and restores one,
// so work survives the end of a browser session.
type BackupUseCase struct {
	store     profile.Store
	publisher service.EventPublisher
	logger    logger.Logger
	now       func() time.Time
}

func NewBackupUseCase(store profile.Store, publisher service.EventPublisher, log logger.Logger) *BackupUseCase {
	return &BackupUseCase{
		store:     store,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

type ExportOutput struct {
	Filename string
	Data     []byte
}

// ExecuteExport returns the stored blob in its canonical encoding.
func (uc *BackupUseCase) ExecuteExport(ctx context.Context, sessionID uuid.UUID) (*ExportOutput, error) {
	b, err := profile.Open(ctx, uc.store, profile.SessionKey(sessionID.String()), uc.logger)
	if err != nil {
		return nil, apperror.NewInternal("failed to load profile", err)
	}

	data, err := profile.Encode(b.Snapshot())
	if err != nil {
		return nil, apperror.NewInternal("failed to encode profile", err)
	}

	timestamp := uc.now().UTC().Format("2006-01-02_15-04-05")
	out := &ExportOutput{Filename: fmt.Sprintf("skillsync-backup-%s.json", timestamp), Data: data}

	uc.logger.Info("Profile backup exported",
		zap.String("session_id", sessionID.String()), zap.String("filename", out.Filename), zap.Int("bytes", len(data)))
	return out, nil
}

type RestoreInput struct {
	SessionID uuid.UUID
	File      io.Reader
}

// ExecuteRestore replaces the session profile with an uploaded backup. Unlike
// a stored blob, an unreadable upload is rejected rather than replaced with
// defaults. Entries are replayed through the mutators, so blank and
// duplicate ones are dropped.
func (uc *BackupUseCase) ExecuteRestore(ctx context.Context, input RestoreInput) (*profile.Profile, error) {
	data, err := io.ReadAll(io.LimitReader(input.File, MaxBackupBytes+1))
	if err != nil {
		return nil, apperror.NewInvalidInput("failed to read backup", err)
	}
	if len(data) > MaxBackupBytes {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("backup exceeds %d bytes", MaxBackupBytes), nil)
	}

	restored, err := profile.Decode(data)
	if err != nil || len(data) == 0 {
		return nil, apperror.NewInvalidInput("backup is not a SkillSync profile", err)
	}

	b, err := profile.Open(ctx, uc.store, profile.SessionKey(input.SessionID.String()), uc.logger)
	if err != nil {
		return nil, apperror.NewInternal("failed to load profile", err)
	}
	if err := b.Replace(ctx, profile.Rebuild(restored)); err != nil {
		return nil, apperror.NewInternal("failed to restore profile", err)
	}

	snapshot := b.Snapshot()
	evt := service.ProfileEvent{
		EventType:    service.EventProfileRestored,
		SessionID:    input.SessionID.String(),
		Completeness: profile.Completeness(snapshot),
		OccurredAt:   uc.now().UTC(),
	}
	if err := uc.publisher.PublishProfileEvent(ctx, evt); err != nil {
		uc.logger.Warn("Failed to publish restore event", zap.Error(err))
	}

	uc.logger.Info("Profile backup restored", zap.String("session_id", input.SessionID.String()))
	return snapshot, nil
}
