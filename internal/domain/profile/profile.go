// Package profile holds the profile aggregate and every rule derived from it:
// the mutators, the completeness score and the suggestion list. Nothing here
// knows about HTTP or rendering.
package profile

import (
	"errors"
	"slices"
	"strings"

	"github.com/khoahotran/skillsync/internal/domain/project"
)

var ErrIndexOutOfRange = errors.New("index out of range")

type BasicInfo struct {
	FullName   string  `json:"fullName"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Location   string  `json:"location"`
	CareerGoal string  `json:"careerGoal"`
	Education  string  `json:"education"`
	Photo      *string `json:"photo"`
}

type Certificate struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   Date   `json:"date"`
}

type Profile struct {
	BasicInfo    BasicInfo         `json:"basicInfo"`
	Skills       []string          `json:"skills"`
	Certificates []Certificate     `json:"certificates"`
	Projects     []project.Project `json:"projects"`
}

// New returns the empty profile a fresh session starts with.
func New() *Profile {
	p := &Profile{}
	p.normalize()
	return p
}

func (p *Profile) normalize() {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Certificates == nil {
		p.Certificates = []Certificate{}
	}
	if p.Projects == nil {
		p.Projects = []project.Project{}
	}
}

func (p *Profile) HasSkill(name string) bool {
	return slices.Contains(p.Skills, name)
}

// AddSkill appends the trimmed name unless it is empty or already present.
// Matching is exact and case-sensitive.
func (p *Profile) AddSkill(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || p.HasSkill(name) {
		return false
	}
	p.Skills = append(p.Skills, name)
	return true
}

// RemoveSkill drops every exact match and returns how many were removed.
func (p *Profile) RemoveSkill(name string) int {
	before := len(p.Skills)
	p.Skills = slices.DeleteFunc(p.Skills, func(s string) bool { return s == name })
	return before - len(p.Skills)
}

func (p *Profile) AddCertificate(name, issuer string, date Date) bool {
	name = strings.TrimSpace(name)
	issuer = strings.TrimSpace(issuer)
	if name == "" || issuer == "" || date.IsZero() {
		return false
	}
	p.Certificates = append(p.Certificates, Certificate{Name: name, Issuer: issuer, Date: date})
	return true
}

func (p *Profile) RemoveCertificate(index int) (Certificate, error) {
	if index < 0 || index >= len(p.Certificates) {
		return Certificate{}, ErrIndexOutOfRange
	}
	removed := p.Certificates[index]
	p.Certificates = slices.Delete(p.Certificates, index, index+1)
	return removed, nil
}

func (p *Profile) AddProject(name, tech, desc, url string) bool {
	proj, ok := project.New(name, tech, desc, url)
	if !ok {
		return false
	}
	p.Projects = append(p.Projects, proj)
	return true
}

func (p *Profile) RemoveProject(index int) (project.Project, error) {
	if index < 0 || index >= len(p.Projects) {
		return project.Project{}, ErrIndexOutOfRange
	}
	removed := p.Projects[index]
	p.Projects = slices.Delete(p.Projects, index, index+1)
	return removed, nil
}

// SetBasicInfo replaces the basic info wholesale. The photo is managed by its
// own upload flow, so the current one is carried over.
func (p *Profile) SetBasicInfo(info BasicInfo) {
	info.Photo = p.BasicInfo.Photo
	p.BasicInfo = info
}

func (p *Profile) SetPhoto(photo string) {
	if photo == "" {
		p.BasicInfo.Photo = nil
		return
	}
	p.BasicInfo.Photo = &photo
}

func (p *Profile) PhotoURL() string {
	if p.BasicInfo.Photo == nil {
		return ""
	}
	return *p.BasicInfo.Photo
}

// Rebuild replays p through the mutators, dropping the blank and duplicate
// entries no add path would have accepted.
func Rebuild(p *Profile) *Profile {
	out := New()
	out.BasicInfo = p.BasicInfo
	out.SetPhoto(p.PhotoURL())
	for _, s := range p.Skills {
		out.AddSkill(s)
	}
	for _, c := range p.Certificates {
		out.AddCertificate(c.Name, c.Issuer, c.Date)
	}
	for _, proj := range p.Projects {
		out.AddProject(proj.Name, proj.Tech, proj.Desc, proj.URL)
	}
	return out
}

func (p *Profile) Clone() *Profile {
	c := &Profile{
		BasicInfo:    p.BasicInfo,
		Skills:       slices.Clone(p.Skills),
		Certificates: slices.Clone(p.Certificates),
		Projects:     slices.Clone(p.Projects),
	}
	if p.BasicInfo.Photo != nil {
		photo := *p.BasicInfo.Photo
		c.BasicInfo.Photo = &photo
	}
	c.normalize()
	return c
}
