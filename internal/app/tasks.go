package app

import (
	"github.com/twiced-technology-gmbh/tasktrack/internal/task"
)

// Add creates a todo task from description and appends it to the current file.
func (a *App) Add(description string) (task.Task, error) {
	var created task.Task
	err := a.locker.WithLock(func() error {
		t, err := task.New(description, a.now())
		if err != nil {
			return err
		}
		if err := a.store().Save(t); err != nil {
			return err
		}
		created = t
		return nil
	})
	if err != nil {
		return task.Task{}, err
	}
	a.logger.Info("task added", "id", created.ID)
	return created, nil
}

// Update replaces the description of the task with id.
func (a *App) Update(id, description string) (task.Task, error) {
	return a.mutate("update", id, func(t task.Task) (task.Task, error) {
		return task.WithDescription(t, description, a.now())
	})
}

// MarkInProgress moves the task with id to in_progress.
func (a *App) MarkInProgress(id string) (task.Task, error) {
	return a.SetStatus(id, string(task.StatusInProgress))
}

// MarkDone moves the task with id to done.
func (a *App) MarkDone(id string) (task.Task, error) {
	return a.SetStatus(id, string(task.StatusDone))
}

// SetStatus moves the task with id to status, accepting the hyphenated
// spelling. updatedAt is refreshed even when the status is unchanged.
func (a *App) SetStatus(id, status string) (task.Task, error) {
	return a.mutate("status", id, func(t task.Task) (task.Task, error) {
		return task.WithStatus(t, status, a.now())
	})
}

// Delete removes the task with id and returns it.
func (a *App) Delete(id string) (task.Task, error) {
	id = task.CanonicalID(id)
	if err := task.ValidateID(id); err != nil {
		return task.Task{}, err
	}
	var deleted task.Task
	err := a.locker.WithLock(func() error {
		s := a.store()
		t, ok, err := s.FindByID(id)
		if err != nil {
			return err
		}
		if !ok {
			return task.NotFound(id)
		}
		deleted = t
		return s.Delete(id)
	})
	if err != nil {
		return task.Task{}, err
	}
	a.logger.Info("task deleted", "id", id)
	return deleted, nil
}

// List returns the tasks of the current file in stored order. A non-empty
// filter keeps only tasks with that status; it accepts the hyphenated form.
func (a *App) List(filter string) ([]task.Task, error) {
	var want task.Status
	if filter != "" {
		s, err := task.ParseStatus(filter)
		if err != nil {
			return nil, err
		}
		want = s
	}

	tasks, err := a.store().FindAll()
	if err != nil {
		return nil, err
	}
	if want == "" {
		return tasks, nil
	}
	return Filter(tasks, want), nil
}

// Filter returns the tasks whose status is one of statuses, keeping order.
func Filter(tasks []task.Task, statuses ...task.Status) []task.Task {
	result := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		for _, s := range statuses {
			if t.Status == s {
				result = append(result, t)
				break
			}
		}
	}
	return result
}

// mutate is the shared read-modify-write cycle for a single task: the id is
// checked before storage is touched, the task must exist, and change
// produces its next version.
func (a *App) mutate(action, id string, change func(task.Task) (task.Task, error)) (task.Task, error) {
	id = task.CanonicalID(id)
	if err := task.ValidateID(id); err != nil {
		return task.Task{}, err
	}
	var updated task.Task
	err := a.locker.WithLock(func() error {
		s := a.store()
		t, ok, err := s.FindByID(id)
		if err != nil {
			return err
		}
		if !ok {
			return task.NotFound(id)
		}
		next, err := change(t)
		if err != nil {
			return err
		}
		if err := s.Save(next); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return task.Task{}, err
	}
	a.logger.Info("task changed", "action", action, "id", id, "status", updated.Status)
	return updated, nil
}
