package profile

import "math"

// Completeness is the share of the seven tracked fields that are filled in,
// as a rounded percentage.
func Completeness(p *Profile) int {
	checks := [...]bool{
		p.BasicInfo.FullName != "",
		p.BasicInfo.Email != "",
		p.BasicInfo.CareerGoal != "",
		p.BasicInfo.Education != "",
		len(p.Skills) > 0,
		len(p.Certificates) > 0,
		len(p.Projects) > 0,
	}

	completed := 0
	for _, ok := range checks {
		if ok {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(checks)) * 100))
}
