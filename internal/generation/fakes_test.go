package generation

import (
	"context"
	"errors"
	"sync"

	"github.com/01moynul/ytgenius-golang/internal/models"
	"github.com/01moynul/ytgenius-golang/internal/store"
	"github.com/01moynul/ytgenius-golang/internal/video"
)

var errBoom = errors.New("boom")

type fakeStore struct {
	mu          sync.Mutex
	profiles    map[string]*models.Profile
	generations []models.Generation

	getErr    error
	createErr error
	insertErr error
	updateErr error

	// raced, when set, is stored by CreateProfile as if a concurrent
	// request had inserted it first.
	raced *models.Profile

	calls       int
	insertCalls int
	updateCalls int
	debitCalls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{profiles: make(map[string]*models.Profile)}
}

func (f *fakeStore) withProfile(id string, coins int) *fakeStore {
	f.profiles[id] = &models.Profile{ID: id, Email: id + "@example.com", Coins: coins}
	return f
}

func (f *fakeStore) coins(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profiles[id].Coins
}

func (f *fakeStore) GetProfile(_ context.Context, id string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.profiles[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) CreateProfile(_ context.Context, p *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.createErr != nil {
		return f.createErr
	}
	if f.raced != nil {
		cp := *f.raced
		f.profiles[cp.ID] = &cp
		f.raced = nil
	}
	if _, ok := f.profiles[p.ID]; ok {
		return store.ErrProfileExists
	}
	cp := *p
	f.profiles[p.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateCoins(_ context.Context, id string, coins int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.profiles[id]
	if !ok {
		return store.ErrNotFound
	}
	p.Coins = coins
	return nil
}

func (f *fakeStore) DebitCoins(_ context.Context, id string, cost int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.debitCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.profiles[id]
	if !ok || p.Coins < cost {
		return store.ErrInsufficientCoins
	}
	p.Coins -= cost
	return nil
}

func (f *fakeStore) InsertGeneration(_ context.Context, g *models.Generation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.insertCalls++
	if f.insertErr != nil {
		return f.insertErr
	}
	f.generations = append(f.generations, *g)
	return nil
}

func (f *fakeStore) ListGenerations(_ context.Context, userID string, limit int) ([]models.Generation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	var out []models.Generation
	for i := len(f.generations) - 1; i >= 0 && len(out) < limit; i-- {
		if f.generations[i].UserID == userID {
			out = append(out, f.generations[i])
		}
	}
	return out, nil
}

func (f *fakeStore) Ping(context.Context) error { return f.getErr }

type modelCall struct {
	method string
	prompt string
	format string
	data   []byte
}

type fakeModel struct {
	mu    sync.Mutex
	text  string
	json  string
	err   error
	calls []modelCall
}

func (m *fakeModel) record(c modelCall) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
}

func (m *fakeModel) GenerateText(_ context.Context, prompt string) (string, error) {
	m.record(modelCall{method: "text", prompt: prompt})
	return m.text, m.err
}

func (m *fakeModel) GenerateJSON(_ context.Context, prompt string) (string, error) {
	m.record(modelCall{method: "json", prompt: prompt})
	return m.json, m.err
}

func (m *fakeModel) GenerateWithImage(_ context.Context, instruction, format string, data []byte) (string, error) {
	m.record(modelCall{method: "image", prompt: instruction, format: format, data: data})
	return m.text, m.err
}

type fakeVideo struct {
	meta       *video.Metadata
	metaErr    error
	transcript string
	transErr   error
	image      *video.Image
	imageErr   error

	requestedIDs []string
}

func (v *fakeVideo) VideoMetadata(_ context.Context, id string) (*video.Metadata, error) {
	v.requestedIDs = append(v.requestedIDs, id)
	return v.meta, v.metaErr
}

func (v *fakeVideo) Transcript(_ context.Context, id string) (string, error) {
	v.requestedIDs = append(v.requestedIDs, id)
	return v.transcript, v.transErr
}

func (v *fakeVideo) Thumbnail(_ context.Context, id string) (*video.Image, error) {
	v.requestedIDs = append(v.requestedIDs, id)
	return v.image, v.imageErr
}
