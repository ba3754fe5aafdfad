package resume

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/khoahotran/skillsync/internal/domain/profile"
)

const (
	FallbackName       = "Your Name"
	FallbackCareerGoal = "Your Career Goal"

	summaryTemplate = "Driven and optimistic %s with skills in %s. Passionate about continuous learning and delivering impactful projects."
)

// whitespaceRun matches what a browser treats as whitespace: the ASCII set
// plus vertical tab, Unicode space separators, line and paragraph
// separators and the byte order mark.
var whitespaceRun = regexp.MustCompile(`[\s\x0B\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)

type CertificateBlock struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

type ProjectBlock struct {
	Name string `json:"name"`
	Tech string `json:"tech"`
	Desc string `json:"desc"`
	URL  string `json:"url,omitempty"`
}

// Document holds every string that ends up on the resume.
type Document struct {
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	Phone        string             `json:"phone"`
	Location     string             `json:"location"`
	CareerGoal   string             `json:"career_goal"`
	Education    string             `json:"education"`
	Summary      string             `json:"summary"`
	Skills       string             `json:"skills"`
	Certificates []CertificateBlock `json:"certificates"`
	Projects     []ProjectBlock     `json:"projects"`
}

// NewDocument projects a profile onto the resume. The summary starts as the
// fixed template; an LLM rewrite may replace it later.
func NewDocument(p *profile.Profile) *Document {
	info := p.BasicInfo
	doc := &Document{
		Name:         info.FullName,
		Email:        info.Email,
		Phone:        info.Phone,
		Location:     info.Location,
		CareerGoal:   info.CareerGoal,
		Education:    info.Education,
		Skills:       strings.Join(p.Skills, ", "),
		Certificates: make([]CertificateBlock, 0, len(p.Certificates)),
		Projects:     make([]ProjectBlock, 0, len(p.Projects)),
	}
	if doc.Name == "" {
		doc.Name = FallbackName
	}
	if doc.CareerGoal == "" {
		doc.CareerGoal = FallbackCareerGoal
	}
	doc.Summary = TemplateSummary(doc.CareerGoal, doc.Skills)

	for _, c := range p.Certificates {
		doc.Certificates = append(doc.Certificates, CertificateBlock{Name: c.Name, Issuer: c.Issuer, Date: c.Date.Display()})
	}
	for _, pr := range p.Projects {
		doc.Projects = append(doc.Projects, ProjectBlock{Name: pr.Name, Tech: pr.Tech, Desc: pr.Desc, URL: pr.URL})
	}
	return doc
}

func TemplateSummary(goal, skills string) string {
	if goal == "" {
		goal = "professional"
	}
	return fmt.Sprintf(summaryTemplate, goal, skills)
}

// Filename is the download name: whitespace runs in the name become "_".
func Filename(name string) string {
	return whitespaceRun.ReplaceAllString(name, "_") + "_Resume.pdf"
}
