package resume

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
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

//go:embed templates/*.html
var templatesFS embed.FS

var resumeTemplate = template.Must(template.ParseFS(templatesFS, "templates/resume.html"))

const summaryTimeout = 20 * time.Second

type ResumeUseCase struct {
	store     profile.Store
	renderer  service.PDFRenderer
	llm       service.LLMService
	publisher service.EventPublisher
	logger    logger.Logger
	tracer    trace.Tracer
}

// NewResumeUseCase wires the export flow. llm may be nil, in which case the
// fixed summary template is used. renderer may be nil when PDF export is
// disabled.
func NewResumeUseCase(store profile.Store, renderer service.PDFRenderer, llm service.LLMService, publisher service.EventPublisher, log logger.Logger) *ResumeUseCase {
	return &ResumeUseCase{
		store:     store,
		renderer:  renderer,
		llm:       llm,
		publisher: publisher,
		logger:    log,
		tracer:    otel.Tracer("skillsync/usecase/resume"),
	}
}

type ExportOutput struct {
	Filename string
	PDF      []byte
}

func (uc *ResumeUseCase) ExecuteExport(ctx context.Context, sessionID uuid.UUID) (*ExportOutput, error) {
	ctx, span := uc.tracer.Start(ctx, "resume.export",
		trace.WithAttributes(attribute.String("session.id", sessionID.String())))
	defer span.End()

	if uc.renderer == nil {
		return nil, apperror.NewUnavailable("PDF export is disabled", nil)
	}

	doc, completeness, err := uc.ExecuteBuildDocument(ctx, sessionID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	html, err := RenderHTML(doc)
	if err != nil {
		return nil, apperror.NewInternal("failed to render resume", err)
	}

	pdf, err := uc.renderer.RenderHTMLToPDF(ctx, html)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		uc.logger.Error("Failed to render resume PDF", err, zap.String("session_id", sessionID.String()))
		return nil, apperror.NewInternal("failed to generate PDF", err)
	}

	out := &ExportOutput{Filename: Filename(doc.Name), PDF: pdf}
	uc.logger.Info("Resume exported",
		zap.String("session_id", sessionID.String()), zap.String("filename", out.Filename), zap.Int("bytes", len(pdf)))

	evt := service.ProfileEvent{
		EventType:    service.EventResumeExported,
		SessionID:    sessionID.String(),
		Completeness: completeness,
		Subject:      out.Filename,
		OccurredAt:   time.Now().UTC(),
	}
	if err := uc.publisher.PublishProfileEvent(ctx, evt); err != nil {
		uc.logger.Warn("Failed to publish resume export event", zap.Error(err))
	}
	return out, nil
}

// ExecuteBuildDocument loads the session profile and builds the resume
// content, including the summary. It also returns the profile completeness.
func (uc *ResumeUseCase) ExecuteBuildDocument(ctx context.Context, sessionID uuid.UUID) (*Document, int, error) {
	b, err := profile.Open(ctx, uc.store, profile.SessionKey(sessionID.String()), uc.logger)
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to load profile", err)
	}
	p := b.Snapshot()

	doc := NewDocument(p)
	doc.Summary = uc.summarize(ctx, p, doc)
	return doc, profile.Completeness(p), nil
}

// summarize asks the LLM for a summary and falls back to the template on any
// failure or empty answer.
func (uc *ResumeUseCase) summarize(ctx context.Context, p *profile.Profile, doc *Document) string {
	if uc.llm == nil || len(p.Skills) == 0 {
		return doc.Summary
	}

	ctx, cancel := context.WithTimeout(ctx, summaryTimeout)
	defer cancel()

	answer, err := uc.llm.GenerateChatResponse(ctx, buildSummaryPrompt(p))
	if err != nil {
		uc.logger.Warn("LLM summary failed, using template", zap.Error(err))
		return doc.Summary
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return doc.Summary
	}
	return answer
}

func buildSummaryPrompt(p *profile.Profile) string {
	var sb strings.Builder
	sb.WriteString("Write a two sentence professional summary for a resume. ")
	sb.WriteString("Reply with the summary only, no preamble.\n\n")
	if goal := p.BasicInfo.CareerGoal; goal != "" {
		fmt.Fprintf(&sb, "Career goal: %s\n", goal)
	}
	if edu := p.BasicInfo.Education; edu != "" {
		fmt.Fprintf(&sb, "Education: %s\n", edu)
	}
	fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(p.Skills, ", "))
	for _, c := range p.Certificates {
		fmt.Fprintf(&sb, "Certificate: %s (%s)\n", c.Name, c.Issuer)
	}
	for _, pr := range p.Projects {
		fmt.Fprintf(&sb, "Project: %s using %s - %s\n", pr.Name, pr.Tech, pr.Desc)
	}
	return sb.String()
}

func RenderHTML(doc *Document) (string, error) {
	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("execute resume template: %w", err)
	}
	return buf.String(), nil
}
