package http

import (
	profileUC "github.com/khoahotran/skillsync/internal/application/usecase/profile"
	"github.com/khoahotran/skillsync/internal/domain/profile"
)

// Request bodies carry no binding rules: blank fields reach the domain, which
// ignores the request instead of failing it.

type BasicInfoRequest struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Location   string `json:"location"`
	CareerGoal string `json:"careerGoal"`
	Education  string `json:"education"`
}

type AddSkillRequest struct {
	Name string `json:"name"`
}

type AddCertificateRequest struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

type AddProjectRequest struct {
	Name string `json:"name"`
	Tech string `json:"tech"`
	Desc string `json:"desc"`
	URL  string `json:"url"`
}

type DashboardDTO struct {
	Profile      *profile.Profile       `json:"profile"`
	Completeness int                    `json:"completeness"`
	Suggestions  []string               `json:"suggestions"`
	Stats        profileUC.Stats        `json:"stats"`
	Progress     profileUC.ProgressRing `json:"progress"`
	Applied      bool                   `json:"applied"`
}

func ToDashboardDTO(out *profileUC.DashboardOutput) DashboardDTO {
	return DashboardDTO{
		Profile:      out.Profile,
		Completeness: out.Completeness,
		Suggestions:  out.Suggestions,
		Stats:        out.Stats,
		Progress:     out.Progress,
		Applied:      out.Applied,
	}
}
