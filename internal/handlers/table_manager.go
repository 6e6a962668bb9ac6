package handlers

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"solitaire-go/internal/game"
	"solitaire-go/internal/game/solitaire"
	"solitaire-go/internal/models"

	"github.com/google/uuid"
)

// Table is one dealt game. mu serializes pointer events so the engine sees
// them one at a time, in arrival order.
type Table struct {
	mu     sync.Mutex
	info   models.Table
	game   game.Game
	closed bool
}

// Apply feeds one event to the game and returns what it did along with the
// frame to draw afterwards. publish, when set, receives the frame before the
// lock is released, so frames leave in the order the events were applied.
func (t *Table) Apply(ev Event, now time.Time, publish func(*TableView)) (solitaire.Outcome, *TableView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return solitaire.Outcome{}, nil, fmt.Errorf("%w: %s", models.ErrTableNotFound, t.info.ID)
	}
	out := ev.applyTo(t.game)
	t.info.Events++
	t.info.UpdatedAt = now
	snap := t.game.Snapshot()
	if snap.Won {
		t.info.Status = models.TableStatusWon
	}
	view := buildTableView(t.info, snap)
	if publish != nil {
		publish(view)
	}
	return out, view, nil
}

func (t *Table) View() *TableView {
	t.mu.Lock()
	defer t.mu.Unlock()
	return buildTableView(t.info, t.game.Snapshot())
}

func (t *Table) Info() models.Table {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.info
}

// Debug returns the unredacted frame and the result of the invariant check.
func (t *Table) Debug() (solitaire.Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.Snapshot(), t.game.CheckInvariants()
}

// TableManager keeps every table in memory; nothing outlives the process.
type TableManager struct {
	mu       sync.RWMutex
	tables   map[string]*Table
	max      int
	registry *game.Registry
	now      func() time.Time
}

func NewTableManager(registry *game.Registry, maxTables int) *TableManager {
	return &TableManager{
		tables:   map[string]*Table{},
		max:      maxTables,
		registry: registry,
		now:      time.Now,
	}
}

func (m *TableManager) Registry() *game.Registry { return m.registry }

// Create deals a new table of gameType.
func (m *TableManager) Create(gameType string, opts solitaire.Options) (*Table, error) {
	if opts.Rules == (solitaire.Rules{}) {
		opts.Rules = solitaire.DefaultRules()
	}
	g, err := m.registry.New(gameType, opts)
	if err != nil {
		return nil, err
	}
	now := m.now().UTC()
	info := models.Table{
		ID:           uuid.NewString(),
		Type:         gameType,
		Status:       models.TableStatusPlaying,
		MaxPasses:    opts.Rules.MaxPasses,
		EmptyTableau: string(opts.Rules.EmptyTableau),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if opts.Seed != nil {
		s := *opts.Seed
		info.Seed = &s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.max > 0 && len(m.tables) >= m.max {
		return nil, models.ErrTooManyTables
	}
	t := &Table{info: info, game: g}
	m.tables[info.ID] = t
	return t, nil
}

func (m *TableManager) Get(id string) (*Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tables[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrTableNotFound, id)
	}
	return t, nil
}

// Delete forgets the table and refuses any event still waiting on it. Once
// Delete returns, no further frame for the table will be published.
func (m *TableManager) Delete(id string) error {
	m.mu.Lock()
	t, ok := m.tables[id]
	if ok {
		delete(m.tables, id)
	}
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrTableNotFound, id)
	}

	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	return nil
}

// List returns table summaries, newest first.
func (m *TableManager) List() []models.Table {
	m.mu.RLock()
	tables := make([]*Table, 0, len(m.tables))
	for _, t := range m.tables {
		tables = append(tables, t)
	}
	m.mu.RUnlock()

	out := make([]models.Table, 0, len(tables))
	for _, t := range tables {
		out = append(out, t.Info())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
