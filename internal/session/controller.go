// Package session owns the in-memory task store and focus ledger and is the
// only writer to either. Every mutation goes through a Controller method, which
// applies the transition under one lock and writes the result through to the
// Persister before returning.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/balkashynov/gauge/internal/models"
	"github.com/balkashynov/gauge/internal/timing"
)

var (
	ErrEmptyTitle   = errors.New("title is required")
	ErrTaskNotFound = errors.New("task not found")
	ErrAmbiguousID  = errors.New("task id is ambiguous")
)

// TickInterval is the ledger tick period; each tick credits one second
const TickInterval = time.Second

// Persister receives the complete structures after every change to them
type Persister interface {
	SaveTasks(tasks []models.Task) error
	SaveHistory(history models.History) error
}

// NewTask holds the data needed to create a task
type NewTask struct {
	Title       string
	Description string
	Priority    models.Priority
	Tag         string
	FocusGoal   int
}

// Snapshot is a read-only copy of the controller state
type Snapshot struct {
	Tasks        []models.Task
	ActiveTaskID string
	History      models.History
}

// Active returns the running task, if any
func (s Snapshot) Active() (models.Task, bool) {
	if s.ActiveTaskID == "" {
		return models.Task{}, false
	}
	return s.Task(s.ActiveTaskID)
}

// Task looks a task up by exact id
func (s Snapshot) Task(id string) (models.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// Controller enforces the single running task rule and advances the ledger
type Controller struct {
	mu    sync.Mutex
	ready bool

	tasks    []models.Task
	activeID string
	history  models.History

	store    Persister
	now      func() time.Time
	newID    func() string
	log      *zap.Logger
	schedule Scheduler

	stopTick func()
	tickGen  uint64

	defaultTag  string
	defaultGoal int
}

// Option configures a Controller
type Option func(*Controller)

// WithClock overrides the wall clock
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger sets the logger used for transition events
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// WithScheduler replaces the periodic timer used for ledger ticks
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.schedule = s }
}

// WithIDGenerator overrides task id generation
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) { c.newID = fn }
}

// WithDefaults sets the tag and focus goal used when Add gets none
func WithDefaults(tag string, focusGoal int) Option {
	return func(c *Controller) {
		if strings.TrimSpace(tag) != "" {
			c.defaultTag = tag
		}
		if focusGoal > 0 {
			c.defaultGoal = focusGoal
		}
	}
}

// New builds a controller over loaded state. If a task is already running the
// ledger timer is armed right away.
func New(tasks []models.Task, history models.History, store Persister, opts ...Option) *Controller {
	c := &Controller{
		tasks:       models.CloneTasks(tasks),
		history:     history.Clone(),
		store:       store,
		now:         time.Now,
		newID:       uuid.NewString,
		log:         zap.NewNop(),
		schedule:    TickerScheduler,
		defaultTag:  models.DefaultTag,
		defaultGoal: models.DefaultFocusGoal,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = nopPersister{}
	}
	c.activeID = models.NormalizeRunning(c.tasks)
	c.ready = true

	if c.activeID != "" {
		c.log.Debug("recovered running session", zap.String("task_id", c.activeID))
		c.armTicker()
	}
	return c
}

func (c *Controller) mustBeReady() {
	if c == nil || !c.ready {
		panic("session: controller used before session.New")
	}
}

// Snapshot returns a deep copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mustBeReady()
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Tasks:        models.CloneTasks(c.tasks),
		ActiveTaskID: c.activeID,
		History:      c.history.Clone(),
	}
}

// Now returns the controller's clock reading
func (c *Controller) Now() time.Time {
	c.mustBeReady()
	return c.now()
}

// Find resolves an exact id or a unique id prefix
func (c *Controller) Find(idOrPrefix string) (models.Task, error) {
	c.mustBeReady()
	c.mu.Lock()
	defer c.mu.Unlock()

	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return models.Task{}, fmt.Errorf("%w: empty id", ErrTaskNotFound)
	}
	if i := c.indexOf(idOrPrefix); i >= 0 {
		return c.tasks[i].Clone(), nil
	}

	match := -1
	for i, t := range c.tasks {
		if !strings.HasPrefix(t.ID, idOrPrefix) {
			continue
		}
		if match >= 0 {
			return models.Task{}, fmt.Errorf("%w: %s", ErrAmbiguousID, idOrPrefix)
		}
		match = i
	}
	if match < 0 {
		return models.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, idOrPrefix)
	}
	return c.tasks[match].Clone(), nil
}

// Add creates an idle task. A blank title creates nothing.
func (c *Controller) Add(in NewTask) (models.Task, error) {
	c.mustBeReady()
	c.mu.Lock()
	defer c.mu.Unlock()

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Task{}, ErrEmptyTitle
	}

	task := models.Task{
		ID:          c.newID(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Priority:    in.Priority,
		Tag:         strings.TrimSpace(in.Tag),
		FocusGoal:   in.FocusGoal,
		CreatedAt:   c.now(),
	}
	if !task.Priority.Valid() {
		task.Priority = models.PriorityMedium
	}
	if task.Tag == "" {
		task.Tag = c.defaultTag
	}
	if task.FocusGoal <= 0 {
		task.FocusGoal = c.defaultGoal
	}

	c.tasks = append(c.tasks, task)
	c.log.Debug("task added", zap.String("task_id", task.ID))

	return task.Clone(), c.saveTasks()
}

// Start makes id the running task. Whatever was running before is paused in
// the same transition. Starting the task that is already running keeps its
// session as is.
func (c *Controller) Start(id string) error {
	c.mustBeReady()
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if c.activeID == id {
		return nil
	}

	now := c.now()
	c.pauseLocked(now)

	c.tasks[i].StartedAt = &now
	c.activeID = id
	c.armTicker()
	c.log.Debug("session started", zap.String("task_id", id))

	return c.saveTasks()
}

// Pause commits the running session, if there is one
func (c *Controller) Pause() error {
	c.mustBeReady()
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.pauseLocked(c.now()) {
		return nil
	}
	return c.saveTasks()
}

// ToggleComplete flips the completed flag. A running target is paused first.
func (c *Controller) ToggleComplete(id string) error {
	c.mustBeReady()
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if c.activeID == id {
		c.pauseLocked(c.now())
	}
	c.tasks[i].Completed = !c.tasks[i].Completed
	c.log.Debug("task completion toggled",
		zap.String("task_id", id),
		zap.Bool("completed", c.tasks[i].Completed))

	return c.saveTasks()
}

// Remove deletes a task. If it is running the open session is dropped; seconds
// already credited to the ledger stay there.
func (c *Controller) Remove(id string) error {
	c.mustBeReady()
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if c.activeID == id {
		c.activeID = ""
		c.disarmTicker()
		c.log.Debug("running session discarded", zap.String("task_id", id))
	}
	c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)

	return c.saveTasks()
}

// Close stops the ledger timer without touching task state
func (c *Controller) Close() {
	c.mustBeReady()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disarmTicker()
}

// pauseLocked commits elapsed time of the running task at now. It reports
// whether anything was running.
func (c *Controller) pauseLocked(now time.Time) bool {
	if c.activeID == "" {
		return false
	}
	i := c.indexOf(c.activeID)
	if i >= 0 {
		t := &c.tasks[i]
		elapsed := timing.SessionTime(*t, now)
		t.TimeSpent += elapsed
		t.StartedAt = nil
		t.LastWorkedAt = &now
		c.log.Debug("session paused",
			zap.String("task_id", t.ID),
			zap.Int64("elapsed_seconds", elapsed))
	}
	c.activeID = ""
	c.disarmTicker()
	return true
}

func (c *Controller) indexOf(id string) int {
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) saveTasks() error {
	if err := c.store.SaveTasks(models.CloneTasks(c.tasks)); err != nil {
		c.log.Error("failed to persist tasks", zap.Error(err))
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}

func (c *Controller) saveHistory() error {
	if err := c.store.SaveHistory(c.history.Clone()); err != nil {
		c.log.Error("failed to persist focus history", zap.Error(err))
		return fmt.Errorf("persist focus history: %w", err)
	}
	return nil
}

type nopPersister struct{}

func (nopPersister) SaveTasks([]models.Task) error   { return nil }
func (nopPersister) SaveHistory(models.History) error { return nil }
