package portfolio

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/khoahotran/skillsync/internal/domain/profile"
	"github.com/khoahotran/skillsync/pkg/apperror"
	"github.com/khoahotran/skillsync/pkg/logger"
)

const (
	PlaceholderName       = "Your Name"
	PlaceholderCareerGoal = "Career Goal"
	PlaceholderLocation   = "Location"
	PlaceholderPhoto      = "https://via.placeholder.com/150x150/6366f1/ffffff?text=Photo"
	PlaceholderEmail      = "your.email@example.com"
	PlaceholderPhone      = "Phone Number"
)

type Stats struct {
	Skills       int `json:"skills"`
	Certificates int `json:"certificates"`
	Projects     int `json:"projects"`
}

type CertificateView struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

type ProjectView struct {
	Name string `json:"name"`
	Tech string `json:"tech"`
	Desc string `json:"desc"`
	URL  string `json:"url,omitempty"`
}

// View is the public portfolio page. Empty sections stay empty so the
// template can leave them out.
type View struct {
	PhotoURL     string            `json:"photo_url"`
	Name         string            `json:"name"`
	CareerGoal   string            `json:"career_goal"`
	Location     string            `json:"location"`
	Education    string            `json:"education,omitempty"`
	Stats        Stats             `json:"stats"`
	Skills       []string          `json:"skills"`
	Certificates []CertificateView `json:"certificates"`
	Projects     []ProjectView     `json:"projects"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
}

func BuildView(p *profile.Profile) *View {
	info := p.BasicInfo
	v := &View{
		PhotoURL:     orDefault(p.PhotoURL(), PlaceholderPhoto),
		Name:         orDefault(info.FullName, PlaceholderName),
		CareerGoal:   orDefault(info.CareerGoal, PlaceholderCareerGoal),
		Location:     orDefault(info.Location, PlaceholderLocation),
		Education:    info.Education,
		Email:        orDefault(info.Email, PlaceholderEmail),
		Phone:        orDefault(info.Phone, PlaceholderPhone),
		Skills:       append([]string{}, p.Skills...),
		Certificates: make([]CertificateView, 0, len(p.Certificates)),
		Projects:     make([]ProjectView, 0, len(p.Projects)),
		Stats: Stats{
			Skills:       len(p.Skills),
			Certificates: len(p.Certificates),
			Projects:     len(p.Projects),
		},
	}
	for _, c := range p.Certificates {
		v.Certificates = append(v.Certificates, CertificateView{Name: c.Name, Issuer: c.Issuer, Date: c.Date.Display()})
	}
	for _, pr := range p.Projects {
		v.Projects = append(v.Projects, ProjectView{Name: pr.Name, Tech: pr.Tech, Desc: pr.Desc, URL: pr.URL})
	}
	return v
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

type PortfolioUseCase struct {
	store   profile.Store
	baseURL string
	logger  logger.Logger
	tracer  trace.Tracer
}

// NewPortfolioUseCase builds the read side of a session profile. baseURL is
// the public address the feed links point at.
func NewPortfolioUseCase(store profile.Store, baseURL string, log logger.Logger) *PortfolioUseCase {
	return &PortfolioUseCase{
		store:   store,
		baseURL: baseURL,
		logger:  log,
		tracer:  otel.Tracer("skillsync/usecase/portfolio"),
	}
}

func (uc *PortfolioUseCase) ExecuteGetPortfolio(ctx context.Context, sessionID uuid.UUID) (*View, error) {
	ctx, span := uc.tracer.Start(ctx, "portfolio.get")
	defer span.End()

	p, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return BuildView(p), nil
}

func (uc *PortfolioUseCase) load(ctx context.Context, sessionID uuid.UUID) (*profile.Profile, error) {
	b, err := profile.Open(ctx, uc.store, profile.SessionKey(sessionID.String()), uc.logger)
	if err != nil {
		return nil, apperror.NewInternal("failed to load profile", err)
	}
	return b.Snapshot(), nil
}
