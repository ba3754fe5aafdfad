package profile

import (
	"math"

	"github.com/khoahotran/skillsync/internal/domain/profile"
)

// Radius of the progress ring drawn on the dashboard.
const progressRingRadius = 54.0

type Stats struct {
	Skills       int `json:"skills"`
	Certificates int `json:"certificates"`
	Projects     int `json:"projects"`
}

// ProgressRing carries the SVG stroke geometry for the completeness ring.
type ProgressRing struct {
	Radius           float64 `json:"radius"`
	Circumference    float64 `json:"circumference"`
	StrokeDashOffset float64 `json:"stroke_dash_offset"`
}

type DashboardOutput struct {
	Profile      *profile.Profile
	Completeness int
	Suggestions  []string
	Stats        Stats
	Progress     ProgressRing
	// Applied is false when the request was silently ignored (blank input,
	// duplicate skill).
	Applied bool
}

// BuildDashboard derives every dashboard view from a profile snapshot.
func BuildDashboard(p *profile.Profile) *DashboardOutput {
	pct := profile.Completeness(p)
	return &DashboardOutput{
		Profile:      p,
		Completeness: pct,
		Suggestions:  profile.Suggestions(p),
		Stats: Stats{
			Skills:       len(p.Skills),
			Certificates: len(p.Certificates),
			Projects:     len(p.Projects),
		},
		Progress: NewProgressRing(pct),
	}
}

func NewProgressRing(percent int) ProgressRing {
	circumference := 2 * math.Pi * progressRingRadius
	return ProgressRing{
		Radius:           progressRingRadius,
		Circumference:    circumference,
		StrokeDashOffset: circumference - float64(percent)/100*circumference,
	}
}
