package portfolio

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/skillsync/internal/domain/profile"
	"github.com/khoahotran/skillsync/pkg/logger"
)

type mapStore map[string][]byte

func (m mapStore) Load(_ context.Context, key string) ([]byte, error) { return m[key], nil }

func (m mapStore) Save(_ context.Context, key string, data []byte) error {
	m[key] = data
	return nil
}

func sampleProfile() *profile.Profile {
	p := profile.New()
	p.SetBasicInfo(profile.BasicInfo{
		FullName:   "Grace Hopper",
		Email:      "grace@example.com",
		Phone:      "555-0100",
		Location:   "Arlington",
		CareerGoal: "Backend Developer",
		Education:  "Yale",
	})
	p.AddSkill("Python")
	p.AddSkill("COBOL")
	p.AddCertificate("Google Data Analytics", "Coursera", profile.NewDate(2024, time.January, 15))
	p.AddProject("Task Manager App", "Node.js, Express", "Tracks tasks", "https://example.com/tasks")
	p.AddProject("Compiler", "Assembly", "A-0 system", "")
	return p
}

func TestBuildView_EmptyProfileUsesPlaceholders(t *testing.T) {
	v := BuildView(profile.New())

	assert.Equal(t, PlaceholderPhoto, v.PhotoURL)
	assert.Equal(t, PlaceholderName, v.Name)
	assert.Equal(t, PlaceholderCareerGoal, v.CareerGoal)
	assert.Equal(t, PlaceholderLocation, v.Location)
	assert.Equal(t, PlaceholderEmail, v.Email)
	assert.Equal(t, PlaceholderPhone, v.Phone)
	assert.Empty(t, v.Education)
	assert.Empty(t, v.Skills)
	assert.Empty(t, v.Certificates)
	assert.Empty(t, v.Projects)
	assert.Equal(t, Stats{}, v.Stats)
}

func TestBuildView_FilledProfile(t *testing.T) {
	p := sampleProfile()
	p.SetPhoto("data:image/png;base64,AAAA")

	v := BuildView(p)

	assert.Equal(t, "data:image/png;base64,AAAA", v.PhotoURL)
	assert.Equal(t, "Grace Hopper", v.Name)
	assert.Equal(t, "Yale", v.Education)
	assert.Equal(t, Stats{Skills: 2, Certificates: 1, Projects: 2}, v.Stats)
	assert.Equal(t, []string{"Python", "COBOL"}, v.Skills)
	assert.Equal(t, []CertificateView{{Name: "Google Data Analytics", Issuer: "Coursera", Date: "1/15/2024"}}, v.Certificates)
	require.Len(t, v.Projects, 2)
	assert.Equal(t, "https://example.com/tasks", v.Projects[0].URL)
	assert.Empty(t, v.Projects[1].URL)
}

func TestBuildView_DoesNotAliasProfile(t *testing.T) {
	p := sampleProfile()
	v := BuildView(p)

	v.Skills[0] = "changed"
	assert.Equal(t, "Python", p.Skills[0])
}

func TestBuildFeed(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	feed := BuildFeed(sampleProfile(), "https://skillsync.example/", now)

	assert.Equal(t, "Grace Hopper - Portfolio", feed.Title)
	assert.Equal(t, "https://skillsync.example/portfolio", feed.Link.Href)
	require.Len(t, feed.Items, 3)

	last := feed.Items[len(feed.Items)-1]
	assert.Equal(t, "Certificate: Google Data Analytics", last.Title)
	assert.Equal(t, profile.NewDate(2024, time.January, 15).Time(), last.Created)

	titles := []string{feed.Items[0].Title, feed.Items[1].Title}
	assert.ElementsMatch(t, []string{"Project: Task Manager App", "Project: Compiler"}, titles)
	for _, item := range feed.Items[:2] {
		if item.Title == "Project: Compiler" {
			assert.Equal(t, "https://skillsync.example/portfolio", item.Link.Href)
		} else {
			assert.Equal(t, "https://example.com/tasks", item.Link.Href)
		}
	}

	rss, err := feed.ToRss()
	require.NoError(t, err)
	assert.Contains(t, rss, "Task Manager App")
}

func TestPortfolioUseCase_ReadsSessionProfile(t *testing.T) {
	store := mapStore{}
	sessionID := uuid.New()
	data, err := profile.Encode(sampleProfile())
	require.NoError(t, err)
	store[profile.SessionKey(sessionID.String())] = data

	uc := NewPortfolioUseCase(store, "http://localhost:8080", logger.NewNop())

	v, err := uc.ExecuteGetPortfolio(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", v.Name)

	feed, err := uc.ExecuteFeed(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Len(t, feed.Items, 3)

	other, err := uc.ExecuteGetPortfolio(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, PlaceholderName, other.Name)
}

func TestPortfolioUseCase_CorruptBlobFallsBack(t *testing.T) {
	sessionID := uuid.New()
	store := mapStore{profile.SessionKey(sessionID.String()): []byte("{not json")}
	uc := NewPortfolioUseCase(store, "http://localhost:8080", logger.NewNop())

	v, err := uc.ExecuteGetPortfolio(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, PlaceholderName, v.Name)
}
