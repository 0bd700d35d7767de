package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/balkashynov/gauge/internal/models"
)

const (
	TasksKey   = "tasks"
	HistoryKey = "focus_history"
)

// Gateway reads and writes the task list and focus ledger through a BlobStore
type Gateway struct {
	blobs BlobStore
	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

// GatewayOption configures a Gateway
type GatewayOption func(*Gateway)

// WithLogger sets the logger used for discarded data and write failures
func WithLogger(log *zap.Logger) GatewayOption {
	return func(g *Gateway) { g.log = log }
}

// WithClock sets the clock used for hydrating missing createdAt values
func WithClock(now func() time.Time) GatewayOption {
	return func(g *Gateway) { g.now = now }
}

// WithIDGenerator sets the generator for missing task ids
func WithIDGenerator(fn func() string) GatewayOption {
	return func(g *Gateway) { g.newID = fn }
}

// NewGateway creates a gateway over blobs
func NewGateway(blobs BlobStore, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		blobs: blobs,
		log:   zap.NewNop(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) hydrator(key string) Hydrator {
	return Hydrator{
		Now:   g.now,
		NewID: g.newID,
		Discard: func(index int, reason string) {
			g.log.Warn("discarded malformed stored data",
				zap.String("key", key),
				zap.Int("index", index),
				zap.String("reason", reason))
		},
	}
}

// Load reads both blobs. Malformed content is replaced by empty structures;
// only store failures are returned as errors.
func (g *Gateway) Load() ([]models.Task, models.History, error) {
	tasks := []models.Task{}
	history := models.History{}

	raw, ok, err := g.blobs.Get(TasksKey)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", TasksKey, err)
	}
	if ok {
		tasks = g.hydrator(TasksKey).DecodeTasks(raw)
	}

	raw, ok, err = g.blobs.Get(HistoryKey)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", HistoryKey, err)
	}
	if ok {
		history = g.hydrator(HistoryKey).DecodeHistory(raw)
	}

	g.log.Debug("state loaded",
		zap.Int("tasks", len(tasks)),
		zap.Int("history_days", len(history)))
	return tasks, history, nil
}

// SaveTasks writes the full task list
func (g *Gateway) SaveTasks(tasks []models.Task) error {
	raw, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}
	if err := g.blobs.Put(TasksKey, raw); err != nil {
		return fmt.Errorf("write %s: %w", TasksKey, err)
	}
	return nil
}

// SaveHistory writes the full focus ledger
func (g *Gateway) SaveHistory(h models.History) error {
	raw, err := EncodeHistory(h)
	if err != nil {
		return err
	}
	if err := g.blobs.Put(HistoryKey, raw); err != nil {
		return fmt.Errorf("write %s: %w", HistoryKey, err)
	}
	return nil
}
