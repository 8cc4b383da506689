package board

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yukikurage/task-board-api/internal/models"
)

// ErrResyncFailed marks a persistence failure after which the store could
// not be re-read either. The board then still holds the last loaded list.
var ErrResyncFailed = errors.New("resync failed")

// Store is the persistence side of a Board.
type Store interface {
	List(ctx context.Context) ([]models.Task, error)
	BulkReorder(ctx context.Context, tasks []models.Task) error
}

// Board owns a task list and keeps it in step with a Store.
type Board struct {
	mu    sync.Mutex
	store Store
	tasks []models.Task
}

// Load builds a Board from the store's canonical list.
func Load(ctx context.Context, store Store) (*Board, error) {
	tasks, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return &Board{store: store, tasks: tasks}, nil
}

// New wraps an already loaded list.
func New(store Store, tasks []models.Task) *Board {
	return &Board{store: store, tasks: cloneTasks(tasks)}
}

// Tasks returns a copy of the current list.
func (b *Board) Tasks() []models.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	return cloneTasks(b.tasks)
}

// Rearrange reconciles arr against the current list, applies the result
// locally and persists it. When persisting fails the local list is
// replaced by a fresh read from the store and the persistence error is
// returned. If that read fails too, the list in place before the call is
// restored and the error also wraps ErrResyncFailed. An invalid
// arrangement leaves the board untouched.
func (b *Board) Rearrange(ctx context.Context, arr Arrangement) (Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rearrangeLocked(ctx, arr)
}

// Move drags one task into status, appending unless index is given.
func (b *Board) Move(ctx context.Context, id string, status models.TaskStatus, index *int) (Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	arr, err := Move(b.tasks, id, status, index)
	if err != nil {
		return Result{}, err
	}
	return b.rearrangeLocked(ctx, arr)
}

// rearrangeLocked requires b.mu to be held.
func (b *Board) rearrangeLocked(ctx context.Context, arr Arrangement) (Result, error) {
	res, err := Reconcile(b.tasks, arr)
	if err != nil {
		return Result{}, err
	}

	before := b.tasks
	b.tasks = res.Tasks

	changed := res.Changed(before)
	if len(changed) == 0 {
		return res, nil
	}

	if err := b.store.BulkReorder(ctx, changed); err != nil {
		if resyncErr := b.resync(ctx); resyncErr != nil {
			b.tasks = before
			return Result{}, fmt.Errorf("failed to persist order: %w (%w: %v)", err, ErrResyncFailed, resyncErr)
		}
		return Result{}, fmt.Errorf("failed to persist order: %w", err)
	}
	return res, nil
}

// Refresh replaces the local list with the store's canonical list.
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.resync(ctx)
}

func (b *Board) resync(ctx context.Context) error {
	fresh, err := b.store.List(ctx)
	if err != nil {
		return err
	}
	b.tasks = fresh
	return nil
}

func cloneTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	return out
}
