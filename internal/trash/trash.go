// Package trash implements the soft-delete lifecycle for a case's
// deletable entities. Deleting moves the unmodified entity from the
// live collection to the front of the matching trash collection;
// restoring reverses the move. Nothing here permanently erases data.
package trash

import (
	"fmt"

	"lawos/case-tracker/internal/models"
)

// Kind selects which of a case's collections an operation targets.
type Kind string

const (
	KindTask     Kind = "task"
	KindLog      Kind = "log"
	KindReminder Kind = "reminder"
	KindDeadline Kind = "deadline"
)

// ParseKind validates a kind supplied over the wire.
func ParseKind(value string) (Kind, error) {
	switch Kind(value) {
	case KindTask, KindLog, KindReminder, KindDeadline:
		return Kind(value), nil
	}
	return "", fmt.Errorf("unknown trash kind %q", value)
}

// SoftDelete moves the entity with the given id from the case's live
// collection into its trash. Returns models.ErrNotFound and the case
// unchanged when the id is absent.
func SoftDelete(c models.Case, kind Kind, id string) (models.Case, error) {
	switch kind {
	case KindTask:
		live, item, ok := extract(c.Tasks, id, func(t models.Task) string { return t.ID })
		if !ok {
			return c, fmt.Errorf("task %s: %w", id, models.ErrNotFound)
		}
		c.Tasks = live
		c.Trash.Tasks = prepend(c.Trash.Tasks, item)
	case KindLog:
		live, item, ok := extract(c.Logs, id, func(l models.Log) string { return l.ID })
		if !ok {
			return c, fmt.Errorf("log %s: %w", id, models.ErrNotFound)
		}
		c.Logs = live
		c.Trash.Logs = prepend(c.Trash.Logs, item)
	case KindReminder:
		live, item, ok := extract(c.Reminders, id, func(r models.Reminder) string { return r.ID })
		if !ok {
			return c, fmt.Errorf("reminder %s: %w", id, models.ErrNotFound)
		}
		c.Reminders = live
		c.Trash.Reminders = prepend(c.Trash.Reminders, item)
	case KindDeadline:
		live, item, ok := extract(c.Deadlines, id, func(d models.Deadline) string { return d.ID })
		if !ok {
			return c, fmt.Errorf("deadline %s: %w", id, models.ErrNotFound)
		}
		c.Deadlines = live
		c.Trash.Deadlines = prepend(c.Trash.Deadlines, item)
	default:
		return c, fmt.Errorf("unknown trash kind %q", kind)
	}
	return c, nil
}

// Restore moves the entity with the given id out of the case's trash
// back to the front of its live collection. Returns models.ErrNotFound
// and the case unchanged when the id is not in the trash.
func Restore(c models.Case, kind Kind, id string) (models.Case, error) {
	switch kind {
	case KindTask:
		kept, item, ok := extract(c.Trash.Tasks, id, func(t models.Task) string { return t.ID })
		if !ok {
			return c, fmt.Errorf("trashed task %s: %w", id, models.ErrNotFound)
		}
		c.Trash.Tasks = kept
		c.Tasks = prepend(c.Tasks, item)
	case KindLog:
		kept, item, ok := extract(c.Trash.Logs, id, func(l models.Log) string { return l.ID })
		if !ok {
			return c, fmt.Errorf("trashed log %s: %w", id, models.ErrNotFound)
		}
		c.Trash.Logs = kept
		c.Logs = prepend(c.Logs, item)
	case KindReminder:
		kept, item, ok := extract(c.Trash.Reminders, id, func(r models.Reminder) string { return r.ID })
		if !ok {
			return c, fmt.Errorf("trashed reminder %s: %w", id, models.ErrNotFound)
		}
		c.Trash.Reminders = kept
		c.Reminders = prepend(c.Reminders, item)
	case KindDeadline:
		kept, item, ok := extract(c.Trash.Deadlines, id, func(d models.Deadline) string { return d.ID })
		if !ok {
			return c, fmt.Errorf("trashed deadline %s: %w", id, models.ErrNotFound)
		}
		c.Trash.Deadlines = kept
		c.Deadlines = prepend(c.Deadlines, item)
	default:
		return c, fmt.Errorf("unknown trash kind %q", kind)
	}
	return c, nil
}

// List returns a read-only view of the case's trash for one kind,
// never nil.
func List(c models.Case, kind Kind) (any, error) {
	switch kind {
	case KindTask:
		return notNil(c.Trash.Tasks), nil
	case KindLog:
		return notNil(c.Trash.Logs), nil
	case KindReminder:
		return notNil(c.Trash.Reminders), nil
	case KindDeadline:
		return notNil(c.Trash.Deadlines), nil
	}
	return nil, fmt.Errorf("unknown trash kind %q", kind)
}

// extract returns a copy of items without the entity matching id,
// together with that entity. The input slice is never modified.
func extract[T any](items []T, id string, idOf func(T) string) ([]T, T, bool) {
	for i, item := range items {
		if idOf(item) == id {
			rest := make([]T, 0, len(items)-1)
			rest = append(rest, items[:i]...)
			rest = append(rest, items[i+1:]...)
			return rest, item, true
		}
	}
	var zero T
	return nil, zero, false
}

// prepend returns a new slice with item at the front, leaving the
// input untouched.
func prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

func notNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
