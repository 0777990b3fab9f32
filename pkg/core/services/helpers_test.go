package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
	"github.com/jakechorley/volunteer-board/pkg/core/workflow"
	"github.com/jakechorley/volunteer-board/pkg/db"
	"github.com/jakechorley/volunteer-board/pkg/kvstore"
)

func init() {
	workflow.PasswordCost = bcrypt.MinCost
}

var (
	testNow = time.Date(2025, time.February, 10, 15, 30, 0, 0, time.UTC)
	errBoom = errors.New("store unavailable")
)

// flakyStore wraps a memory store, failing selected keys and recording writes
type flakyStore struct {
	*kvstore.Memory
	failGet map[string]error
	failSet map[string]error
	writes  []string
}

func newFlakyStore() *flakyStore {
	return &flakyStore{
		Memory:  kvstore.NewMemory(),
		failGet: map[string]error{},
		failSet: map[string]error{},
	}
}

func (f *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := f.failGet[key]; err != nil {
		return nil, err
	}
	return f.Memory.Get(ctx, key)
}

func (f *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if err := f.failSet[key]; err != nil {
		return err
	}
	f.writes = append(f.writes, key)
	return f.Memory.Set(ctx, key, value)
}

// mockNotifier records notifications and returns err
type mockNotifier struct {
	sent []model.Application
	err  error
}

func (m *mockNotifier) NotifyStatusChange(ctx context.Context, app model.Application) error {
	m.sent = append(m.sent, app)
	return m.err
}

type fixture struct {
	ctx    context.Context
	store  *flakyStore
	db     *db.DB
	logger *zap.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	orig := NowFunc
	NowFunc = func() time.Time { return testNow }
	t.Cleanup(func() { NowFunc = orig })

	store := newFlakyStore()
	return &fixture{
		ctx:    context.Background(),
		store:  store,
		db:     db.New(store),
		logger: zap.NewNop(),
	}
}

func (f *fixture) signup(t *testing.T, role model.Role, name, email string) model.Account {
	t.Helper()
	acct, err := Signup(f.ctx, f.db, f.logger, role, workflow.SignupInput{Name: name, Email: email, Password: "pw"})
	require.NoError(t, err)
	return acct
}

func beachCleanup() workflow.EventInput {
	return workflow.EventInput{
		Title:       "Beach Cleanup",
		StartDate:   "2025-02-20",
		EndDate:     "2025-02-21",
		Volunteers:  20,
		Description: "Cleaning the shoreline.",
	}
}
