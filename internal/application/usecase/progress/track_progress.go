package progress

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/skillsync/internal/application/service"
	"github.com/khoahotran/skillsync/pkg/logger"
)

const completePercent = 100

type TrackProgressUseCase struct {
	store  service.ProgressStore
	logger logger.Logger
}

func NewTrackProgressUseCase(store service.ProgressStore, log logger.Logger) *TrackProgressUseCase {
	return &TrackProgressUseCase{store: store, logger: log}
}

type TrackProgressOutput struct {
	// Completed is true when this event took the session to 100% from below
	// it. A session that drops and climbs back counts again.
	Completed bool
}

func (uc *TrackProgressUseCase) Execute(ctx context.Context, evt service.ProfileEvent) (*TrackProgressOutput, error) {
	if evt.SessionID == "" || evt.EventType == "" {
		return nil, fmt.Errorf("incomplete profile event: %+v", evt)
	}
	l := uc.logger.With(zap.String("session_id", evt.SessionID), zap.String("event_type", string(evt.EventType)))

	if err := uc.store.IncrementEvent(ctx, evt.EventType); err != nil {
		return nil, fmt.Errorf("increment event counter: %w", err)
	}

	prev, found, err := uc.store.SwapCompleteness(ctx, evt.SessionID, evt.Completeness)
	if err != nil {
		return nil, fmt.Errorf("store completeness: %w", err)
	}

	out := &TrackProgressOutput{}
	if evt.Completeness >= completePercent && (!found || prev < completePercent) {
		if err := uc.store.IncrementCompleted(ctx); err != nil {
			return nil, fmt.Errorf("increment completed counter: %w", err)
		}
		out.Completed = true
		l.Info("Profile reached full completeness")
	}

	l.Info("Profile progress tracked", zap.Int("completeness", evt.Completeness), zap.Int("previous", prev))
	return out, nil
}
