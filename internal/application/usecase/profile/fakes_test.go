package profile

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/khoahotran/skillsync/internal/application/service"
)

type memStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (s *memStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *memStore) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.data[key] = append([]byte(nil), data...)
	return nil
}

type chanPublisher struct {
	events chan service.ProfileEvent
}

func newChanPublisher() *chanPublisher {
	return &chanPublisher{events: make(chan service.ProfileEvent, 32)}
}

func (p *chanPublisher) PublishProfileEvent(_ context.Context, evt service.ProfileEvent) error {
	p.events <- evt
	return nil
}

type fakeUploader struct {
	folder, publicID string
	body             []byte
	err              error
}

func (u *fakeUploader) Upload(_ context.Context, file io.Reader, folder, publicID string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.folder, u.publicID = folder, publicID
	u.body, _ = io.ReadAll(file)
	return "https://res.cloudinary.com/demo/" + folder + "/" + publicID + ".png", nil
}

func (u *fakeUploader) Delete(context.Context, string) error { return nil }

type failingPublisher struct{}

func (failingPublisher) PublishProfileEvent(context.Context, service.ProfileEvent) error {
	return errors.New("broker unavailable")
}
