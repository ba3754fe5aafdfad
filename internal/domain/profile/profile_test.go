package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/skillsync/internal/domain/project"
)

func TestAddSkill_RejectsDuplicates(t *testing.T) {
	p := New()

	assert.True(t, p.AddSkill("Go"))
	assert.False(t, p.AddSkill("Go"))
	assert.Equal(t, []string{"Go"}, p.Skills)
}

func TestAddSkill_TrimsAndIgnoresBlank(t *testing.T) {
	p := New()

	assert.False(t, p.AddSkill("   "))
	assert.True(t, p.AddSkill("  React  "))
	assert.False(t, p.AddSkill("React"))
	assert.Equal(t, []string{"React"}, p.Skills)
}

func TestAddSkill_CaseSensitive(t *testing.T) {
	p := New()

	assert.True(t, p.AddSkill("python"))
	assert.True(t, p.AddSkill("Python"))
	assert.Equal(t, []string{"python", "Python"}, p.Skills)
}

func TestRemoveSkill_ThenAddRestores(t *testing.T) {
	p := New()
	p.AddSkill("CSS")
	p.AddSkill("HTML")

	assert.Equal(t, 1, p.RemoveSkill("CSS"))
	assert.False(t, p.HasSkill("CSS"))

	assert.True(t, p.AddSkill("CSS"))
	assert.True(t, p.HasSkill("CSS"))
	assert.Equal(t, []string{"HTML", "CSS"}, p.Skills)
}

func TestRemoveSkill_NoMatch(t *testing.T) {
	p := New()
	p.AddSkill("CSS")

	assert.Equal(t, 0, p.RemoveSkill("css"))
	assert.Equal(t, []string{"CSS"}, p.Skills)
}

func TestAddCertificate_RequiresAllFields(t *testing.T) {
	date := NewDate(2024, 1, 15)
	tests := []struct {
		name, certName, issuer string
		date                   Date
		ok                     bool
	}{
		{"complete", "Google Data Analytics", "Coursera", date, true},
		{"blank name", " ", "Coursera", date, false},
		{"blank issuer", "Google Data Analytics", "", date, false},
		{"missing date", "Google Data Analytics", "Coursera", Date{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			assert.Equal(t, tt.ok, p.AddCertificate(tt.certName, tt.issuer, tt.date))
			if tt.ok {
				assert.Len(t, p.Certificates, 1)
			} else {
				assert.Empty(t, p.Certificates)
			}
		})
	}
}

func TestAddCertificate_AllowsDuplicates(t *testing.T) {
	p := New()
	date := NewDate(2023, 8, 10)

	assert.True(t, p.AddCertificate("Responsive Web Design", "freeCodeCamp", date))
	assert.True(t, p.AddCertificate("Responsive Web Design", "freeCodeCamp", date))
	assert.Len(t, p.Certificates, 2)
}

func TestRemoveCertificate_ShiftsRemaining(t *testing.T) {
	p := New()
	p.AddCertificate("First", "Issuer A", NewDate(2024, 1, 1))
	p.AddCertificate("Second", "Issuer B", NewDate(2024, 2, 2))

	removed, err := p.RemoveCertificate(0)
	require.NoError(t, err)

	assert.Equal(t, "First", removed.Name)
	require.Len(t, p.Certificates, 1)
	assert.Equal(t, "Second", p.Certificates[0].Name)
}

func TestRemoveCertificate_OutOfRange(t *testing.T) {
	p := New()
	p.AddCertificate("Only", "Issuer", NewDate(2024, 1, 1))

	for _, idx := range []int{-1, 1, 42} {
		_, err := p.RemoveCertificate(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}
	assert.Len(t, p.Certificates, 1)
}

func TestProjects_AddAndRemove(t *testing.T) {
	p := New()

	assert.False(t, p.AddProject("Portfolio", "", "desc", ""))
	assert.True(t, p.AddProject("Portfolio Website", "React, CSS, Netlify", "A personal portfolio", ""))
	assert.True(t, p.AddProject("Task Manager App", "Node.js, Express", "Manage tasks", "https://tasks.dev"))

	removed, err := p.RemoveProject(0)
	require.NoError(t, err)
	assert.Equal(t, "Portfolio Website", removed.Name)
	assert.Equal(t, []project.Project{{
		Name: "Task Manager App", Tech: "Node.js, Express", Desc: "Manage tasks", URL: "https://tasks.dev",
	}}, p.Projects)

	_, err = p.RemoveProject(1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSetBasicInfo_KeepsPhoto(t *testing.T) {
	p := New()
	p.SetPhoto("data:image/png;base64,AAAA")

	p.SetBasicInfo(BasicInfo{FullName: "Ada Lovelace", Email: "ada@example.com"})

	assert.Equal(t, "Ada Lovelace", p.BasicInfo.FullName)
	assert.Equal(t, "data:image/png;base64,AAAA", p.PhotoURL())
}

func TestSetPhoto_EmptyClears(t *testing.T) {
	p := New()
	p.SetPhoto("https://res.cloudinary.com/x.png")
	p.SetPhoto("")

	assert.Nil(t, p.BasicInfo.Photo)
	assert.Empty(t, p.PhotoURL())
}

func TestClone_IsIndependent(t *testing.T) {
	p := New()
	p.AddSkill("Go")
	p.SetPhoto("photo-a")

	c := p.Clone()
	p.AddSkill("Rust")
	p.SetPhoto("photo-b")
	c.Skills[0] = "Changed"

	assert.Equal(t, []string{"Changed"}, c.Skills)
	assert.Equal(t, "photo-a", c.PhotoURL())
	assert.Equal(t, []string{"Go", "Rust"}, p.Skills)
}

func TestRebuild_DropsWhatAddWouldReject(t *testing.T) {
	photo := "data:image/png;base64,AAAA"
	in := &Profile{
		BasicInfo: BasicInfo{FullName: "Ada", Photo: &photo},
		Skills:    []string{"Go", "Go", "  ", "", " Rust "},
		Certificates: []Certificate{
			{Name: "", Issuer: "", Date: Date{}},
			{Name: "CKA", Issuer: "CNCF", Date: NewDate(2024, 3, 1)},
		},
		Projects: []project.Project{
			{Name: "Blank"},
			{Name: "Site", Tech: "Go", Desc: "Portfolio"},
		},
	}

	out := Rebuild(in)

	assert.Equal(t, "Ada", out.BasicInfo.FullName)
	assert.Equal(t, photo, out.PhotoURL())
	assert.Equal(t, []string{"Go", "Rust"}, out.Skills)
	require.Len(t, out.Certificates, 1)
	assert.Equal(t, "CKA", out.Certificates[0].Name)
	require.Len(t, out.Projects, 1)
	assert.Equal(t, "Site", out.Projects[0].Name)
	assert.Equal(t, 57, Completeness(out))
}
