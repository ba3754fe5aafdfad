package profile

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/skillsync/internal/domain/project"
	"github.com/khoahotran/skillsync/pkg/logger"
)

// Builder owns the profile of one session. Every mutating method writes the
// encoded profile to the store before it returns, so the in-memory copy and
// the persisted copy never drift apart. A Builder is not safe for concurrent
// use; open one per request.
type Builder struct {
	store     Store
	key       string
	profile   *Profile
	persisted []byte
}

// Open loads the profile stored under key. Missing or unreadable data falls
// back to the empty profile; only a failing store is reported as an error.
func Open(ctx context.Context, store Store, key string, log logger.Logger) (*Builder, error) {
	data, err := store.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	p, err := Decode(data)
	if err != nil {
		log.Warn("Stored profile is unreadable, starting from defaults",
			zap.String("session_key", key), zap.Error(err))
		data = nil
	}

	return &Builder{store: store, key: key, profile: p, persisted: data}, nil
}

func (b *Builder) Key() string {
	return b.key
}

// Snapshot returns a copy that later mutations will not touch.
func (b *Builder) Snapshot() *Profile {
	return b.profile.Clone()
}

// Persisted returns the bytes last written to or read from the store.
func (b *Builder) Persisted() []byte {
	return b.persisted
}

// Save writes the current profile unconditionally.
func (b *Builder) Save(ctx context.Context) error {
	data, err := Encode(b.profile)
	if err != nil {
		return err
	}
	if err := b.store.Save(ctx, b.key, data); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	b.persisted = data
	return nil
}

func (b *Builder) SaveBasicInfo(ctx context.Context, info BasicInfo) error {
	b.profile.SetBasicInfo(info)
	return b.Save(ctx)
}

func (b *Builder) SetPhoto(ctx context.Context, photo string) error {
	b.profile.SetPhoto(photo)
	return b.Save(ctx)
}

// AddSkill reports false, without touching the store, when the skill is
// blank or already present.
func (b *Builder) AddSkill(ctx context.Context, name string) (bool, error) {
	if !b.profile.AddSkill(name) {
		return false, nil
	}
	return true, b.Save(ctx)
}

// RemoveSkill persists even when nothing matched.
func (b *Builder) RemoveSkill(ctx context.Context, name string) (bool, error) {
	removed := b.profile.RemoveSkill(name) > 0
	return removed, b.Save(ctx)
}

func (b *Builder) AddCertificate(ctx context.Context, name, issuer string, date Date) (bool, error) {
	if !b.profile.AddCertificate(name, issuer, date) {
		return false, nil
	}
	return true, b.Save(ctx)
}

func (b *Builder) RemoveCertificate(ctx context.Context, index int) (Certificate, error) {
	removed, err := b.profile.RemoveCertificate(index)
	if err != nil {
		return Certificate{}, err
	}
	return removed, b.Save(ctx)
}

func (b *Builder) AddProject(ctx context.Context, name, tech, desc, url string) (bool, error) {
	if !b.profile.AddProject(name, tech, desc, url) {
		return false, nil
	}
	return true, b.Save(ctx)
}

func (b *Builder) RemoveProject(ctx context.Context, index int) (project.Project, error) {
	removed, err := b.profile.RemoveProject(index)
	if err != nil {
		return project.Project{}, err
	}
	return removed, b.Save(ctx)
}

// Reset replaces the profile with the empty one.
func (b *Builder) Reset(ctx context.Context) error {
	b.profile = New()
	return b.Save(ctx)
}

// Replace swaps in a copy of p, e.g. a restored backup.
func (b *Builder) Replace(ctx context.Context, p *Profile) error {
	b.profile = p.Clone()
	return b.Save(ctx)
}
