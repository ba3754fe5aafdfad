package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullProfile() *Profile {
	p := New()
	p.SetBasicInfo(BasicInfo{
		FullName:   "Ada Lovelace",
		Email:      "ada@example.com",
		CareerGoal: GoalFrontend,
		Education:  "University of London",
	})
	p.AddSkill("CSS")
	p.AddCertificate("Analytical Engines", "Royal Society", NewDate(1843, 9, 1))
	p.AddProject("Note G", "Punch cards", "Bernoulli numbers", "")
	return p
}

func TestCompleteness_Bounds(t *testing.T) {
	assert.Equal(t, 0, Completeness(New()))
	assert.Equal(t, 100, Completeness(fullProfile()))
}

func TestCompleteness_Steps(t *testing.T) {
	p := New()
	p.SetBasicInfo(BasicInfo{FullName: "A"})
	assert.Equal(t, 14, Completeness(p))

	p.SetBasicInfo(BasicInfo{FullName: "A", Email: "a@b.c"})
	assert.Equal(t, 29, Completeness(p))

	p.AddSkill("Go")
	assert.Equal(t, 43, Completeness(p))
}

func TestCompleteness_PhoneLocationPhotoDoNotCount(t *testing.T) {
	p := New()
	p.SetBasicInfo(BasicInfo{Phone: "555", Location: "Lisbon"})
	p.SetPhoto("x")
	assert.Equal(t, 0, Completeness(p))
}

func TestCompleteness_MonotonicPerField(t *testing.T) {
	setters := map[string]func(*Profile){
		"fullName":     func(p *Profile) { p.BasicInfo.FullName = "A" },
		"email":        func(p *Profile) { p.BasicInfo.Email = "a@b.c" },
		"careerGoal":   func(p *Profile) { p.BasicInfo.CareerGoal = "SRE" },
		"education":    func(p *Profile) { p.BasicInfo.Education = "BSc" },
		"skills":       func(p *Profile) { p.AddSkill("Go") },
		"certificates": func(p *Profile) { p.AddCertificate("C", "I", NewDate(2020, 1, 1)) },
		"projects":     func(p *Profile) { p.AddProject("P", "T", "D", "") },
	}

	// Every subset of the seven fields, then each missing field added on top.
	names := make([]string, 0, len(setters))
	for n := range setters {
		names = append(names, n)
	}
	for mask := 0; mask < 1<<len(names); mask++ {
		base := New()
		for i, n := range names {
			if mask&(1<<i) != 0 {
				setters[n](base)
			}
		}
		before := Completeness(base)
		for i, n := range names {
			if mask&(1<<i) != 0 {
				continue
			}
			next := base.Clone()
			setters[n](next)
			assert.Greater(t, Completeness(next), before, "adding %s to mask %b", n, mask)
		}
	}
}
