// Package board holds the ordering logic of the task board: reconciling a
// drag-and-drop arrangement into order/status values, building arrangements
// for single moves, and the read-only projections used by list and
// dashboard views. Everything here is pure except Board, which owns state.
package board

import (
	"errors"
	"fmt"
	"sort"

	"github.com/yukikurage/task-board-api/internal/models"
)

var (
	ErrInvalidArrangement = errors.New("invalid arrangement")
	ErrTaskNotFound       = errors.New("task not found")
)

// Arrangement is the desired layout of the board: for every status group,
// the ordered IDs of the tasks now in that group. A missing group is empty.
type Arrangement map[models.TaskStatus][]string

// StatusChange records a task that moved between groups.
type StatusChange struct {
	ID   string            `json:"id"`
	From models.TaskStatus `json:"from"`
	To   models.TaskStatus `json:"to"`
}

// Result is the outcome of a reconciliation.
type Result struct {
	Tasks   []models.Task  `json:"tasks"`
	Changes []StatusChange `json:"changes"`
}

// Changed returns the tasks whose order or status differs between the
// input of a reconciliation and its result, in result order.
func (r Result) Changed(before []models.Task) []models.Task {
	prev := make(map[string]models.Task, len(before))
	for _, t := range before {
		prev[t.ID] = t
	}
	var out []models.Task
	for _, t := range r.Tasks {
		p, ok := prev[t.ID]
		if !ok || p.Order != t.Order || p.Status != t.Status {
			out = append(out, t)
		}
	}
	return out
}

type placement struct {
	status models.TaskStatus
	index  int
}

// Reconcile applies arr to tasks. Every task must appear exactly once in
// arr and arr may name no other IDs; otherwise ErrInvalidArrangement is
// returned and nothing is applied. The returned slice has the same length
// and positions as tasks; only Order and Status are rewritten. tasks is
// not modified.
func Reconcile(tasks []models.Task, arr Arrangement) (Result, error) {
	known := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		known[t.ID] = struct{}{}
	}

	placed := make(map[string]placement, len(tasks))
	// Walk groups in a fixed order so error messages are deterministic.
	for _, status := range arrangementStatuses(arr) {
		if !status.Valid() {
			return Result{}, fmt.Errorf("%w: unknown status %q", ErrInvalidArrangement, status)
		}
		for i, id := range arr[status] {
			if _, ok := known[id]; !ok {
				return Result{}, fmt.Errorf("%w: unknown task %q", ErrInvalidArrangement, id)
			}
			if prev, dup := placed[id]; dup {
				return Result{}, fmt.Errorf("%w: task %q listed in both %q and %q", ErrInvalidArrangement, id, prev.status, status)
			}
			placed[id] = placement{status: status, index: i}
		}
	}

	if len(placed) != len(known) {
		for _, t := range tasks {
			if _, ok := placed[t.ID]; !ok {
				return Result{}, fmt.Errorf("%w: task %q missing from arrangement", ErrInvalidArrangement, t.ID)
			}
		}
	}

	out := make([]models.Task, len(tasks))
	var changes []StatusChange
	for i, t := range tasks {
		p := placed[t.ID]
		if t.Status != p.status {
			changes = append(changes, StatusChange{ID: t.ID, From: t.Status, To: p.status})
		}
		t.Status = p.status
		t.Order = p.index
		out[i] = t
	}

	return Result{Tasks: out, Changes: changes}, nil
}

// ArrangementOf describes the current layout of tasks: each group ordered
// by Order, ties broken by position in tasks.
func ArrangementOf(tasks []models.Task) Arrangement {
	idx := make([]int, len(tasks))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return tasks[idx[a]].Order < tasks[idx[b]].Order
	})

	arr := make(Arrangement, len(models.TaskStatuses))
	for _, s := range models.TaskStatuses {
		arr[s] = []string{}
	}
	for _, i := range idx {
		t := tasks[i]
		arr[t.Status] = append(arr[t.Status], t.ID)
	}
	return arr
}

// Move builds the arrangement that results from dragging task id into
// group to. With a nil index the task is appended; otherwise it is
// inserted at *index, clamped to the bounds of the target group.
func Move(tasks []models.Task, id string, to models.TaskStatus, index *int) (Arrangement, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArrangement, to)
	}

	arr := ArrangementOf(tasks)
	var from models.TaskStatus
	found := false
	for _, t := range tasks {
		if t.ID == id {
			from = t.Status
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrTaskNotFound, id)
	}

	arr[from] = removeID(arr[from], id)

	target := arr[to]
	pos := len(target)
	if index != nil {
		pos = *index
		if pos < 0 {
			pos = 0
		}
		if pos > len(target) {
			pos = len(target)
		}
	}
	arr[to] = insertAt(target, pos, id)
	return arr, nil
}

func arrangementStatuses(arr Arrangement) []models.TaskStatus {
	statuses := make([]models.TaskStatus, 0, len(arr))
	for s := range arr {
		statuses = append(statuses, s)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })
	return statuses
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func insertAt(ids []string, pos int, id string) []string {
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:pos]...)
	out = append(out, id)
	return append(out, ids[pos:]...)
}
