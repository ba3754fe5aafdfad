package profile

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/skillsync/pkg/logger"
)

type mapStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	saves   int
	loadErr error
	saveErr error
}

func newMapStore() *mapStore {
	return &mapStore{data: map[string][]byte{}}
}

func (s *mapStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.data[key], nil
}

func (s *mapStore) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.data[key] = append([]byte(nil), data...)
	return nil
}

func openBuilder(t *testing.T, store *mapStore) *Builder {
	t.Helper()
	b, err := Open(context.Background(), store, SessionKey("s1"), logger.NewNop())
	require.NoError(t, err)
	return b
}

func TestBuilder_PersistsAfterEveryMutation(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	b := openBuilder(t, store)

	assertConsistent := func() {
		t.Helper()
		want, err := Encode(b.Snapshot())
		require.NoError(t, err)
		assert.Equal(t, string(want), string(store.data[b.Key()]))
		assert.Equal(t, string(want), string(b.Persisted()))
	}

	require.NoError(t, b.SaveBasicInfo(ctx, BasicInfo{FullName: "Ada", Email: "ada@example.com"}))
	assertConsistent()

	added, err := b.AddSkill(ctx, "Go")
	require.NoError(t, err)
	assert.True(t, added)
	assertConsistent()

	added, err = b.AddCertificate(ctx, "CKA", "CNCF", NewDate(2024, 3, 1))
	require.NoError(t, err)
	assert.True(t, added)
	assertConsistent()

	added, err = b.AddProject(ctx, "skillsync", "Go", "profile builder", "")
	require.NoError(t, err)
	assert.True(t, added)
	assertConsistent()

	require.NoError(t, b.SetPhoto(ctx, "https://img/ada.png"))
	assertConsistent()

	_, err = b.RemoveCertificate(ctx, 0)
	require.NoError(t, err)
	assertConsistent()

	_, err = b.RemoveProject(ctx, 0)
	require.NoError(t, err)
	assertConsistent()

	assert.Equal(t, 7, store.saves)
}

func TestBuilder_IgnoredMutationsDoNotWrite(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	b := openBuilder(t, store)

	_, err := b.AddSkill(ctx, "Go")
	require.NoError(t, err)

	added, err := b.AddSkill(ctx, "Go")
	require.NoError(t, err)
	assert.False(t, added)

	added, err = b.AddCertificate(ctx, "", "CNCF", NewDate(2024, 1, 1))
	require.NoError(t, err)
	assert.False(t, added)

	added, err = b.AddProject(ctx, "x", "", "", "")
	require.NoError(t, err)
	assert.False(t, added)

	assert.Equal(t, 1, store.saves)
}

func TestBuilder_RemoveSkillAlwaysPersists(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	b := openBuilder(t, store)

	removed, err := b.RemoveSkill(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, emptyBlob, string(store.data[b.Key()]))
}

func TestBuilder_OutOfRangeRemovalDoesNotWrite(t *testing.T) {
	store := newMapStore()
	b := openBuilder(t, store)

	_, err := b.RemoveCertificate(context.Background(), 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = b.RemoveProject(context.Background(), 3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Zero(t, store.saves)
}

func TestBuilder_ReopenSeesSavedProfile(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	b := openBuilder(t, store)
	_, err := b.AddSkill(ctx, "Kubernetes")
	require.NoError(t, err)

	reopened := openBuilder(t, store)

	assert.Equal(t, []string{"Kubernetes"}, reopened.Snapshot().Skills)
	assert.Equal(t, b.Persisted(), reopened.Persisted())
}

func TestBuilder_SaveOfLoadedDataIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	b := openBuilder(t, store)
	_, err := b.AddSkill(ctx, "SQL")
	require.NoError(t, err)
	before := string(store.data[b.Key()])

	reopened := openBuilder(t, store)
	require.NoError(t, reopened.Save(ctx))

	assert.Equal(t, before, string(store.data[b.Key()]))
}

func TestBuilder_UnreadableBlobStartsEmpty(t *testing.T) {
	store := newMapStore()
	store.data[SessionKey("s1")] = []byte("{broken")

	b := openBuilder(t, store)

	assert.Equal(t, New(), b.Snapshot())
	assert.Nil(t, b.Persisted())
}

func TestBuilder_StoreFailures(t *testing.T) {
	store := newMapStore()
	store.loadErr = errors.New("redis down")

	_, err := Open(context.Background(), store, "k", logger.NewNop())
	assert.ErrorContains(t, err, "redis down")

	store.loadErr = nil
	b := openBuilder(t, store)
	store.saveErr = errors.New("read only")

	_, err = b.AddSkill(context.Background(), "Go")
	assert.ErrorContains(t, err, "read only")
}

func TestBuilder_Reset(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	b := openBuilder(t, store)
	_, err := b.AddSkill(ctx, "Go")
	require.NoError(t, err)

	require.NoError(t, b.Reset(ctx))

	assert.Equal(t, emptyBlob, string(store.data[b.Key()]))
}

func TestBuilder_Replace(t *testing.T) {
	store := newMapStore()
	b := openBuilder(t, store)

	restored := fullProfile()
	require.NoError(t, b.Replace(context.Background(), restored))
	restored.AddSkill("mutated after replace")

	assert.False(t, b.Snapshot().HasSkill("mutated after replace"))
	reopened := openBuilder(t, store)
	assert.Equal(t, 100, Completeness(reopened.Snapshot()))
}
