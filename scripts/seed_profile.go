// Seeds a session with sample data and prints a cookie that opens it:
//
//	go run scripts/seed_profile.go
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/skillsync/adapters/persistence"
	"github.com/khoahotran/skillsync/internal/config"
	"github.com/khoahotran/skillsync/internal/domain/profile"
	"github.com/khoahotran/skillsync/pkg/auth"
	"github.com/khoahotran/skillsync/pkg/logger"
)

func main() {
	fmt.Println("seeding sample profile...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Fatalf("the memory store lives inside the server process; use redis or postgres")
	}

	ctx := context.Background()
	appLogger := logger.NewZapLogger(cfg.App.Env)

	stores, err := persistence.OpenStores(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("cannot open store: %v", err)
	}
	defer stores.Close()

	sessionID := uuid.New()
	b, err := profile.Open(ctx, stores.Profile, profile.SessionKey(sessionID.String()), appLogger)
	if err != nil {
		log.Fatalf("cannot open profile: %v", err)
	}

	steps := []func() error{
		func() error {
			return b.SaveBasicInfo(ctx, profile.BasicInfo{
				FullName:   "Alex Morgan",
				Email:      "alex.morgan@example.com",
				Phone:      "+1 555 0100",
				Location:   "Remote",
				CareerGoal: "Frontend Developer",
				Education:  "B.Sc. Computer Science",
			})
		},
	}
	for _, skill := range []string{"JavaScript", "Python", "React", "UI/UX Design"} {
		steps = append(steps, func() error { _, err := b.AddSkill(ctx, skill); return err })
	}
	steps = append(steps,
		func() error {
			_, err := b.AddCertificate(ctx, "Google Data Analytics", "Coursera", profile.NewDate(2024, time.January, 15))
			return err
		},
		func() error {
			_, err := b.AddCertificate(ctx, "Responsive Web Design", "freeCodeCamp", profile.NewDate(2023, time.August, 10))
			return err
		},
		func() error {
			_, err := b.AddProject(ctx, "Portfolio Website", "React, CSS, Netlify", "A personal portfolio to showcase my work and skills.", "")
			return err
		},
		func() error {
			_, err := b.AddProject(ctx, "Task Manager App", "Node.js, Express, MongoDB", "A full-stack app to manage daily tasks.", "")
			return err
		},
	)
	for _, step := range steps {
		if err := step(); err != nil {
			log.Fatalf("cannot seed profile: %v", err)
		}
	}

	token, err := auth.NewJWTService(cfg.Session.Secret, cfg.Session.TTL).GenerateToken(sessionID)
	if err != nil {
		log.Fatalf("cannot sign session token: %v", err)
	}

	snapshot := b.Snapshot()
	fmt.Printf("seeded session %s (completeness %d%%)\n", sessionID, profile.Completeness(snapshot))
	fmt.Printf("cookie: %s=%s\n", cfg.Session.CookieName, token)
}
