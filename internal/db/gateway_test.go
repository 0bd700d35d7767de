package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/balkashynov/gauge/internal/models"
)

type failingStore struct{ err error }

func (f failingStore) Get(string) (string, bool, error) { return "", false, f.err }
func (f failingStore) Put(string, string) error         { return f.err }

func TestGatewayLoadEmptyStore(t *testing.T) {
	g := NewGateway(NewMemoryStore())

	tasks, history, err := g.Load()
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestGatewayLoadCorruptBlobs(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Put(TasksKey, `{"oops":true}`))
	require.NoError(t, store.Put(HistoryKey, `[1,2,3]`))

	tasks, history, err := NewGateway(store).Load()
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.Empty(t, history)
}

func TestGatewayStoreFailure(t *testing.T) {
	g := NewGateway(failingStore{err: errors.New("io")})

	_, _, err := g.Load()
	assert.Error(t, err)
	assert.Error(t, g.SaveTasks(nil))
	assert.Error(t, g.SaveHistory(nil))
}

func TestGatewayWriteThenLoad(t *testing.T) {
	now := time.UnixMilli(1773133200000)
	g := NewGateway(NewMemoryStore(), WithClock(func() time.Time { return now }))
	tasks := []models.Task{{
		ID: "a", Title: "Plan", Priority: models.PriorityMedium, Tag: "General",
		FocusGoal: 25, StartedAt: &now, CreatedAt: now,
	}}

	require.NoError(t, g.SaveTasks(tasks))
	require.NoError(t, g.SaveHistory(models.History{"2026-03-10": 7}))

	gotTasks, gotHistory, err := g.Load()
	require.NoError(t, err)
	assert.Equal(t, tasks, gotTasks)
	assert.Equal(t, models.History{"2026-03-10": 7}, gotHistory)
}

type SQLiteStoreSuite struct {
	suite.Suite

	db    *gorm.DB
	store *SQLiteStore
}

func (s *SQLiteStoreSuite) SetupTest() {
	db, err := Open(filepath.Join(s.T().TempDir(), "nested", "gauge.db"))
	s.Require().NoError(err)
	s.db = db
	s.store = NewSQLiteStore(db)
}

func (s *SQLiteStoreSuite) TearDownTest() {
	s.Require().NoError(Close(s.db))
}

func (s *SQLiteStoreSuite) TestMissingKey() {
	v, ok, err := s.store.Get(TasksKey)
	s.Require().NoError(err)
	s.False(ok)
	s.Empty(v)
}

func (s *SQLiteStoreSuite) TestPutOverwrites() {
	s.Require().NoError(s.store.Put(HistoryKey, `{"2026-03-10":1}`))
	s.Require().NoError(s.store.Put(HistoryKey, `{"2026-03-10":2}`))

	v, ok, err := s.store.Get(HistoryKey)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(`{"2026-03-10":2}`, v)

	var count int64
	s.Require().NoError(s.db.Model(&models.Blob{}).Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *SQLiteStoreSuite) TestGatewayRoundTrip() {
	g := NewGateway(s.store)
	created := time.UnixMilli(1773000000000)
	tasks := []models.Task{{
		ID: "a", Title: "Plan", Priority: models.PriorityHigh, Tag: "Work",
		FocusGoal: 30, TimeSpent: 90, CreatedAt: created,
	}}

	s.Require().NoError(g.SaveTasks(tasks))
	s.Require().NoError(g.SaveHistory(models.History{"2026-03-09": 90}))

	gotTasks, gotHistory, err := g.Load()
	s.Require().NoError(err)
	s.Equal(tasks, gotTasks)
	s.Equal(models.History{"2026-03-09": 90}, gotHistory)
}

func TestSQLiteStoreSuite(t *testing.T) {
	suite.Run(t, new(SQLiteStoreSuite))
}
