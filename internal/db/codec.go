package db

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/balkashynov/gauge/internal/models"
)

// taskWire is the stored JSON shape of a task; timestamps are epoch millis
type taskWire struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Priority     string `json:"priority"`
	Tag          string `json:"tag"`
	FocusGoal    int    `json:"focusGoal"`
	Completed    bool   `json:"completed"`
	TimeSpent    int64  `json:"timeSpent"`
	StartedAt    *int64 `json:"startedAt"`
	CreatedAt    int64  `json:"createdAt"`
	LastWorkedAt *int64 `json:"lastWorkedAt"`
}

// maxStoredNumber is the largest integer a JSON number holds exactly (2^53).
// Stored numbers beyond it are treated as malformed.
const maxStoredNumber = 1 << 53

// taskRecord is used for decoding; nil means the field was absent, null,
// wrongly typed or out of range
type taskRecord struct {
	ID           *string
	Title        *string
	Description  *string
	Priority     *string
	Tag          *string
	FocusGoal    *float64
	Completed    *bool
	TimeSpent    *float64
	StartedAt    *float64
	CreatedAt    *float64
	LastWorkedAt *float64
}

// decodeField reads one field of a stored task. ok is false when the field is
// present but cannot be read as T.
func decodeField[T any](fields map[string]json.RawMessage, name string) (v *T, ok bool) {
	raw, present := fields[name]
	if !present {
		return nil, true
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	return v, true
}

// inRange reports whether a stored number can be converted to an integer safely
func inRange(f *float64) bool {
	return f != nil && !math.IsNaN(*f) && math.Abs(*f) <= maxStoredNumber
}

func millis(t time.Time) int64 {
	return t.UnixMilli()
}

func millisPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	v := t.UnixMilli()
	return &v
}

func fromMillis(ms *float64) *time.Time {
	if !inRange(ms) {
		return nil
	}
	t := time.UnixMilli(int64(*ms))
	return &t
}

// EncodeTasks serializes tasks to the stored JSON array
func EncodeTasks(tasks []models.Task) (string, error) {
	wire := make([]taskWire, 0, len(tasks))
	for _, t := range tasks {
		wire = append(wire, taskWire{
			ID:           t.ID,
			Title:        t.Title,
			Description:  t.Description,
			Priority:     string(t.Priority),
			Tag:          t.Tag,
			FocusGoal:    t.FocusGoal,
			Completed:    t.Completed,
			TimeSpent:    t.TimeSpent,
			StartedAt:    millisPtr(t.StartedAt),
			CreatedAt:    millis(t.CreatedAt),
			LastWorkedAt: millisPtr(t.LastWorkedAt),
		})
	}
	b, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("encode tasks: %w", err)
	}
	return string(b), nil
}

// EncodeHistory serializes the ledger to the stored JSON object
func EncodeHistory(h models.History) (string, error) {
	if h == nil {
		h = models.History{}
	}
	b, err := json.Marshal(h)
	if err != nil {
		return "", fmt.Errorf("encode focus history: %w", err)
	}
	return string(b), nil
}

// Hydrator fills absent task fields while decoding
type Hydrator struct {
	Now   func() time.Time
	NewID func() string
	// Discard is told about every element that was dropped
	Discard func(index int, reason string)
}

func (h Hydrator) id() string {
	if h.NewID == nil {
		return uuid.NewString()
	}
	return h.NewID()
}

func (h Hydrator) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

func (h Hydrator) discard(i int, reason string) {
	if h.Discard != nil {
		h.Discard(i, reason)
	}
}

// DecodeTasks parses the stored task array. Anything that is not an array
// yields no tasks; elements that are not objects or have no title are dropped.
// A wrongly typed or out-of-range field is treated as absent and gets its
// default. At most one task is left running.
func (h Hydrator) DecodeTasks(raw string) []models.Task {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		h.discard(-1, "tasks blob is not a JSON array")
		return []models.Task{}
	}

	tasks := make([]models.Task, 0, len(elems))
	seen := make(map[string]bool, len(elems))
	for i, elem := range elems {
		trimmed := strings.TrimSpace(string(elem))
		if !strings.HasPrefix(trimmed, "{") {
			h.discard(i, "element is not an object")
			continue
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(elem, &fields); err != nil {
			h.discard(i, err.Error())
			continue
		}
		task, ok := h.hydrate(h.record(i, fields))
		if !ok {
			h.discard(i, "missing title")
			continue
		}
		if seen[task.ID] {
			task.ID = h.id()
		}
		seen[task.ID] = true
		tasks = append(tasks, task)
	}

	models.NormalizeRunning(tasks)
	return tasks
}

// record reads every known field, reporting the ones that had to be ignored
func (h Hydrator) record(i int, fields map[string]json.RawMessage) taskRecord {
	var rec taskRecord
	var bad []string
	str := func(name string, dst **string) {
		v, ok := decodeField[string](fields, name)
		if !ok {
			bad = append(bad, name)
		}
		*dst = v
	}
	num := func(name string, dst **float64) {
		v, ok := decodeField[float64](fields, name)
		if !ok || (v != nil && !inRange(v)) {
			bad = append(bad, name)
			v = nil
		}
		*dst = v
	}

	str("id", &rec.ID)
	str("title", &rec.Title)
	str("description", &rec.Description)
	str("priority", &rec.Priority)
	str("tag", &rec.Tag)
	num("focusGoal", &rec.FocusGoal)
	num("timeSpent", &rec.TimeSpent)
	num("startedAt", &rec.StartedAt)
	num("createdAt", &rec.CreatedAt)
	num("lastWorkedAt", &rec.LastWorkedAt)
	completed, ok := decodeField[bool](fields, "completed")
	if !ok {
		bad = append(bad, "completed")
	}
	rec.Completed = completed

	if len(bad) > 0 {
		h.discard(i, "ignored malformed fields: "+strings.Join(bad, ", "))
	}
	return rec
}

func (h Hydrator) hydrate(rec taskRecord) (models.Task, bool) {
	if rec.Title == nil || strings.TrimSpace(*rec.Title) == "" {
		return models.Task{}, false
	}

	task := models.Task{
		Title:     *rec.Title,
		Priority:  models.PriorityMedium,
		Tag:       models.DefaultTag,
		FocusGoal: models.DefaultFocusGoal,
	}
	if rec.ID != nil && *rec.ID != "" {
		task.ID = *rec.ID
	} else {
		task.ID = h.id()
	}
	if rec.Description != nil {
		task.Description = *rec.Description
	}
	if rec.Priority != nil {
		if p, ok := models.ParsePriority(*rec.Priority); ok {
			task.Priority = p
		}
	}
	if rec.Tag != nil {
		task.Tag = *rec.Tag
	}
	if inRange(rec.FocusGoal) && *rec.FocusGoal >= 1 {
		task.FocusGoal = int(math.Floor(*rec.FocusGoal))
	}
	if rec.Completed != nil {
		task.Completed = *rec.Completed
	}
	if inRange(rec.TimeSpent) && *rec.TimeSpent > 0 {
		task.TimeSpent = int64(math.Floor(*rec.TimeSpent))
	}
	task.StartedAt = fromMillis(rec.StartedAt)
	task.LastWorkedAt = fromMillis(rec.LastWorkedAt)
	if created := fromMillis(rec.CreatedAt); created != nil {
		task.CreatedAt = *created
	} else {
		task.CreatedAt = h.now()
	}
	return task, true
}

// DecodeHistory parses the stored ledger. A blob that is not an object yields
// an empty ledger; entries with a malformed date key or a value that is not a
// non-negative number within range are dropped.
func (h Hydrator) DecodeHistory(raw string) models.History {
	out := models.History{}

	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		h.discard(-1, "focus history blob is not a JSON object")
		return out
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &entries); err != nil {
		h.discard(-1, err.Error())
		return out
	}

	for key, val := range entries {
		if _, err := models.ParseDateKey(key, time.Local); err != nil {
			h.discard(-1, err.Error())
			continue
		}
		var secs *float64
		if err := json.Unmarshal(val, &secs); err != nil || !inRange(secs) || *secs < 0 {
			h.discard(-1, fmt.Sprintf("invalid seconds for %s", key))
			continue
		}
		out[key] = int64(math.Floor(*secs))
	}
	return out
}
