package resume

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/skillsync/internal/application/service"
	"github.com/khoahotran/skillsync/internal/domain/profile"
	"github.com/khoahotran/skillsync/pkg/apperror"
	"github.com/khoahotran/skillsync/pkg/logger"
)

type mapStore map[string][]byte

func (m mapStore) Load(_ context.Context, key string) ([]byte, error) { return m[key], nil }

func (m mapStore) Save(_ context.Context, key string, data []byte) error {
	m[key] = data
	return nil
}

type fakeRenderer struct {
	html string
	err  error
}

func (r *fakeRenderer) RenderHTMLToPDF(_ context.Context, html string) ([]byte, error) {
	r.html = html
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

type fakeLLM struct {
	answer string
	err    error
	prompt string
}

func (l *fakeLLM) GenerateChatResponse(_ context.Context, prompt string) (string, error) {
	l.prompt = prompt
	return l.answer, l.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []service.ProfileEvent
}

func (p *recordingPublisher) PublishProfileEvent(_ context.Context, evt service.ProfileEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func seeded(t *testing.T, p *profile.Profile) (mapStore, uuid.UUID) {
	t.Helper()
	sessionID := uuid.New()
	data, err := profile.Encode(p)
	require.NoError(t, err)
	return mapStore{profile.SessionKey(sessionID.String()): data}, sessionID
}

func sampleProfile() *profile.Profile {
	p := profile.New()
	p.SetBasicInfo(profile.BasicInfo{
		FullName:   "Mary  Jane Watson",
		Email:      "mj@example.com",
		CareerGoal: "Frontend Developer",
		Education:  "ESU",
	})
	p.AddSkill("JavaScript")
	p.AddSkill("React")
	p.AddCertificate("Responsive Web Design", "freeCodeCamp", profile.NewDate(2023, time.August, 10))
	p.AddProject("Portfolio Website", "React, CSS, Netlify", "Personal site", "https://mj.example.com")
	return p
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Ada Lovelace", "Ada_Lovelace_Resume.pdf"},
		{"Mary  Jane\tWatson", "Mary_Jane_Watson_Resume.pdf"},
		{"Cher", "Cher_Resume.pdf"},
		{FallbackName, "Your_Name_Resume.pdf"},
		{"Jane\u00a0Doe", "Jane_Doe_Resume.pdf"},
		{"Jane\u2003Doe", "Jane_Doe_Resume.pdf"},
		{"Jane\vDoe", "Jane_Doe_Resume.pdf"},
		{"Jane\u3000\ufeff Doe", "Jane_Doe_Resume.pdf"},
		{" Ada ", "_Ada__Resume.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.name))
		})
	}
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(sampleProfile())

	assert.Equal(t, "Mary  Jane Watson", doc.Name)
	assert.Equal(t, "JavaScript, React", doc.Skills)
	assert.Equal(t,
		"Driven and optimistic Frontend Developer with skills in JavaScript, React. Passionate about continuous learning and delivering impactful projects.",
		doc.Summary)
	assert.Equal(t, []CertificateBlock{{Name: "Responsive Web Design", Issuer: "freeCodeCamp", Date: "8/10/2023"}}, doc.Certificates)
	require.Len(t, doc.Projects, 1)
	assert.Equal(t, "https://mj.example.com", doc.Projects[0].URL)
}

func TestNewDocument_Fallbacks(t *testing.T) {
	doc := NewDocument(profile.New())

	assert.Equal(t, FallbackName, doc.Name)
	assert.Equal(t, FallbackCareerGoal, doc.CareerGoal)
	assert.Empty(t, doc.Skills)
	assert.Empty(t, doc.Certificates)
}

func TestTemplateSummary_NoGoal(t *testing.T) {
	assert.Contains(t, TemplateSummary("", "Go"), "optimistic professional with skills in Go.")
}

func TestRenderHTML_EscapesContent(t *testing.T) {
	p := profile.New()
	p.SetBasicInfo(profile.BasicInfo{FullName: "<script>alert(1)</script>"})

	html, err := RenderHTML(NewDocument(p))
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestExecuteExport(t *testing.T) {
	store, sessionID := seeded(t, sampleProfile())
	renderer := &fakeRenderer{}
	publisher := &recordingPublisher{}
	uc := NewResumeUseCase(store, renderer, nil, publisher, logger.NewNop())

	out, err := uc.ExecuteExport(context.Background(), sessionID)
	require.NoError(t, err)

	assert.Equal(t, "Mary_Jane_Watson_Resume.pdf", out.Filename)
	assert.Equal(t, []byte("%PDF-1.4 fake"), out.PDF)
	assert.Contains(t, renderer.html, "Portfolio Website")
	assert.Contains(t, renderer.html, "Issued by: freeCodeCamp")

	require.Len(t, publisher.events, 1)
	assert.Equal(t, service.EventResumeExported, publisher.events[0].EventType)
	assert.Equal(t, 100, publisher.events[0].Completeness)
}

func TestExecuteExport_LLMSummary(t *testing.T) {
	store, sessionID := seeded(t, sampleProfile())
	renderer := &fakeRenderer{}
	llm := &fakeLLM{answer: "  Frontend engineer who ships.  "}
	uc := NewResumeUseCase(store, renderer, llm, &recordingPublisher{}, logger.NewNop())

	_, err := uc.ExecuteExport(context.Background(), sessionID)
	require.NoError(t, err)

	assert.Contains(t, llm.prompt, "Skills: JavaScript, React")
	assert.Contains(t, renderer.html, "Frontend engineer who ships.")
}

func TestExecuteBuildDocument_LLMFailureFallsBack(t *testing.T) {
	store, sessionID := seeded(t, sampleProfile())
	uc := NewResumeUseCase(store, &fakeRenderer{}, &fakeLLM{err: errors.New("connection refused")}, &recordingPublisher{}, logger.NewNop())

	doc, completeness, err := uc.ExecuteBuildDocument(context.Background(), sessionID)
	require.NoError(t, err)

	assert.Equal(t, 100, completeness)
	assert.Equal(t, TemplateSummary("Frontend Developer", "JavaScript, React"), doc.Summary)
}

func TestExecuteExport_Errors(t *testing.T) {
	store, sessionID := seeded(t, sampleProfile())

	t.Run("renderer disabled", func(t *testing.T) {
		uc := NewResumeUseCase(store, nil, nil, &recordingPublisher{}, logger.NewNop())
		_, err := uc.ExecuteExport(context.Background(), sessionID)
		assert.ErrorIs(t, err, apperror.ErrUnavailable)
	})

	t.Run("renderer fails", func(t *testing.T) {
		publisher := &recordingPublisher{}
		uc := NewResumeUseCase(store, &fakeRenderer{err: errors.New("chrome crashed")}, nil, publisher, logger.NewNop())
		_, err := uc.ExecuteExport(context.Background(), sessionID)
		assert.ErrorIs(t, err, apperror.ErrInternal)
		assert.Empty(t, publisher.events)
	})
}
