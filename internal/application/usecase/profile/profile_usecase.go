package profile

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/khoahotran/skillsync/internal/application/service"
	"github.com/khoahotran/skillsync/internal/domain/profile"
	"github.com/khoahotran/skillsync/pkg/apperror"
	"github.com/khoahotran/skillsync/pkg/logger"
)

const publishTimeout = 5 * time.Second

type ProfileUseCase struct {
	store     profile.Store
	publisher service.EventPublisher
	uploader  service.Uploader
	logger    logger.Logger
	tracer    trace.Tracer
}

// NewProfileUseCase wires the profile flows. uploader may be nil, in which
// case photos are kept inline as data URIs.
func NewProfileUseCase(store profile.Store, publisher service.EventPublisher, uploader service.Uploader, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		store:     store,
		publisher: publisher,
		uploader:  uploader,
		logger:    log,
		tracer:    otel.Tracer("skillsync/usecase/profile"),
	}
}

type mutation struct {
	applied bool
	event   service.ProfileEventType
	subject string
}

// mutate opens the session profile, applies fn and derives the dashboard
// from the result. fn is responsible for persisting through the builder.
func (uc *ProfileUseCase) mutate(ctx context.Context, op string, sessionID uuid.UUID, fn func(ctx context.Context, b *profile.Builder) (mutation, error)) (*DashboardOutput, error) {
	ctx, span := uc.tracer.Start(ctx, "profile."+op,
		trace.WithAttributes(attribute.String("session.id", sessionID.String())))
	defer span.End()

	b, err := uc.open(ctx, sessionID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	m, err := fn(ctx, b)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, uc.translate(err, op)
	}

	out := BuildDashboard(b.Snapshot())
	out.Applied = m.applied
	span.SetAttributes(attribute.Bool("profile.applied", m.applied), attribute.Int("profile.completeness", out.Completeness))

	if m.applied {
		uc.publish(ctx, sessionID, m.event, m.subject, out.Completeness)
	}
	return out, nil
}

func (uc *ProfileUseCase) open(ctx context.Context, sessionID uuid.UUID) (*profile.Builder, error) {
	key := profile.SessionKey(sessionID.String())
	b, err := profile.Open(ctx, uc.store, key, uc.logger)
	if err != nil {
		return nil, apperror.NewInternal("failed to load profile", err)
	}
	return b, nil
}

func (uc *ProfileUseCase) translate(err error, op string) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.NewInternal(op+" failed", err)
}

// publish sends the event before the mutation returns, so one session's
// events reach the topic in the order they were applied. A failed publish is
// logged and never fails the mutation.
func (uc *ProfileUseCase) publish(ctx context.Context, sessionID uuid.UUID, eventType service.ProfileEventType, subject string, completeness int) {
	evt := service.ProfileEvent{
		EventType:    eventType,
		SessionID:    sessionID.String(),
		Completeness: completeness,
		Subject:      subject,
		OccurredAt:   time.Now().UTC(),
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := uc.publisher.PublishProfileEvent(ctx, evt); err != nil {
		uc.logger.Error("Failed to publish profile event", err,
			zap.String("session_id", evt.SessionID), zap.String("event_type", string(evt.EventType)))
	}
}

type GetDashboardInput struct {
	SessionID uuid.UUID
}

func (uc *ProfileUseCase) ExecuteGetDashboard(ctx context.Context, input GetDashboardInput) (*DashboardOutput, error) {
	ctx, span := uc.tracer.Start(ctx, "profile.get_dashboard")
	defer span.End()

	b, err := uc.open(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	return BuildDashboard(b.Snapshot()), nil
}

// GetSnapshot returns the stored profile without deriving any view.
func (uc *ProfileUseCase) GetSnapshot(ctx context.Context, sessionID uuid.UUID) (*profile.Profile, error) {
	b, err := uc.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return b.Snapshot(), nil
}

type SaveBasicInfoInput struct {
	SessionID  uuid.UUID
	FullName   string
	Email      string
	Phone      string
	Location   string
	CareerGoal string
	Education  string
}

func (uc *ProfileUseCase) ExecuteSaveBasicInfo(ctx context.Context, input SaveBasicInfoInput) (*DashboardOutput, error) {
	return uc.mutate(ctx, "save_basic_info", input.SessionID, func(ctx context.Context, b *profile.Builder) (mutation, error) {
		err := b.SaveBasicInfo(ctx, profile.BasicInfo{
			FullName:   input.FullName,
			Email:      input.Email,
			Phone:      input.Phone,
			Location:   input.Location,
			CareerGoal: input.CareerGoal,
			Education:  input.Education,
		})
		return mutation{applied: true, event: service.EventBasicInfoSaved}, err
	})
}

type AddSkillInput struct {
	SessionID uuid.UUID
	Name      string
}

func (uc *ProfileUseCase) ExecuteAddSkill(ctx context.Context, input AddSkillInput) (*DashboardOutput, error) {
	return uc.mutate(ctx, "add_skill", input.SessionID, func(ctx context.Context, b *profile.Builder) (mutation, error) {
		added, err := b.AddSkill(ctx, input.Name)
		return mutation{applied: added, event: service.EventSkillAdded, subject: input.Name}, err
	})
}

type RemoveSkillInput struct {
	SessionID uuid.UUID
	Name      string
}

// ExecuteRemoveSkill always re-saves the profile, matching or not; Applied
// tells whether a skill was actually dropped.
func (uc *ProfileUseCase) ExecuteRemoveSkill(ctx context.Context, input RemoveSkillInput) (*DashboardOutput, error) {
	return uc.mutate(ctx, "remove_skill", input.SessionID, func(ctx context.Context, b *profile.Builder) (mutation, error) {
		removed, err := b.RemoveSkill(ctx, input.Name)
		return mutation{applied: removed, event: service.EventSkillRemoved, subject: input.Name}, err
	})
}

type AddCertificateInput struct {
	SessionID uuid.UUID
	Name      string
	Issuer    string
	Date      string
}

func (uc *ProfileUseCase) ExecuteAddCertificate(ctx context.Context, input AddCertificateInput) (*DashboardOutput, error) {
	return uc.mutate(ctx, "add_certificate", input.SessionID, func(ctx context.Context, b *profile.Builder) (mutation, error) {
		date, err := profile.ParseDate(input.Date)
		if err != nil {
			// An unreadable date counts as a missing one.
			uc.logger.Warn("Ignoring certificate with unreadable date",
				zap.String("session_id", input.SessionID.String()), zap.Error(err))
			return mutation{}, nil
		}
		added, err := b.AddCertificate(ctx, input.Name, input.Issuer, date)
		return mutation{applied: added, event: service.EventCertificateAdded, subject: input.Name}, err
	})
}

type RemoveCertificateInput struct {
	SessionID uuid.UUID
	Index     int
}

func (uc *ProfileUseCase) ExecuteRemoveCertificate(ctx context.Context, input RemoveCertificateInput) (*DashboardOutput, error) {
	return uc.mutate(ctx, "remove_certificate", input.SessionID, func(ctx context.Context, b *profile.Builder) (mutation, error) {
		removed, err := b.RemoveCertificate(ctx, input.Index)
		if errors.Is(err, profile.ErrIndexOutOfRange) {
			return mutation{}, apperror.NewNotFound("certificate", strconv.Itoa(input.Index))
		}
		return mutation{applied: true, event: service.EventCertificateRemoved, subject: removed.Name}, err
	})
}

type AddProjectInput struct {
	SessionID uuid.UUID
	Name      string
	Tech      string
	Desc      string
	URL       string
}

func (uc *ProfileUseCase) ExecuteAddProject(ctx context.Context, input AddProjectInput) (*DashboardOutput, error) {
	return uc.mutate(ctx, "add_project", input.SessionID, func(ctx context.Context, b *profile.Builder) (mutation, error) {
		added, err := b.AddProject(ctx, input.Name, input.Tech, input.Desc, input.URL)
		return mutation{applied: added, event: service.EventProjectAdded, subject: input.Name}, err
	})
}

type RemoveProjectInput struct {
	SessionID uuid.UUID
	Index     int
}

func (uc *ProfileUseCase) ExecuteRemoveProject(ctx context.Context, input RemoveProjectInput) (*DashboardOutput, error) {
	return uc.mutate(ctx, "remove_project", input.SessionID, func(ctx context.Context, b *profile.Builder) (mutation, error) {
		removed, err := b.RemoveProject(ctx, input.Index)
		if errors.Is(err, profile.ErrIndexOutOfRange) {
			return mutation{}, apperror.NewNotFound("project", strconv.Itoa(input.Index))
		}
		return mutation{applied: true, event: service.EventProjectRemoved, subject: removed.Name}, err
	})
}

type ResetInput struct {
	SessionID uuid.UUID
}

func (uc *ProfileUseCase) ExecuteReset(ctx context.Context, input ResetInput) (*DashboardOutput, error) {
	return uc.mutate(ctx, "reset", input.SessionID, func(ctx context.Context, b *profile.Builder) (mutation, error) {
		return mutation{applied: true, event: service.EventProfileReset}, b.Reset(ctx)
	})
}
