package sabres

import "fmt"

// Dispatcher delivers completion callbacks onto a caller-chosen context, such
// as a UI event loop. A nil Dispatcher invokes the callback on the worker
// goroutine that ran the operation.
type Dispatcher interface {
	Dispatch(fn func())
}

// Task is the result of a background operation. It resolves exactly once;
// there is no cancellation, and a stuck store operation stalls its worker.
type Task[T any] struct {
	done   chan struct{}
	result T
	err    error
}

// Wait blocks until the task resolves and returns its result. The error
// carries the same taxonomy as the synchronous operation.
func (t *Task[T]) Wait() (T, error) {
	<-t.done
	return t.result, t.err
}

// ContinueWith invokes fn with the task's result once it resolves, delivered
// through d when one is supplied. Callback order across independent tasks is
// not guaranteed; only a single task's own completion is ordered.
func (t *Task[T]) ContinueWith(d Dispatcher, fn func(T, error)) {
	go func() {
		<-t.done
		if d == nil {
			fn(t.result, t.err)
			return
		}
		d.Dispatch(func() { fn(t.result, t.err) })
	}()
}

// runTask schedules fn on the database's worker pool.
func runTask[T any](d *Database, fn func() (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	err := d.pool.Submit(func() {
		defer close(t.done)
		t.result, t.err = fn()
	})
	if err != nil {
		t.err = fmt.Errorf("failed to schedule background task: %w", err)
		close(t.done)
	}
	return t
}

// FindInBackground runs Find on a worker and returns its task.
// The calling goroutine is never blocked.
func (q *Query) FindInBackground() *Task[[]Object] {
	return runTask(q.db, q.Find)
}

// FindInBackgroundWith runs Find on a worker and delivers the result to fn
// through d.
func (q *Query) FindInBackgroundWith(d Dispatcher, fn func([]Object, error)) {
	q.FindInBackground().ContinueWith(d, fn)
}

// GetInBackground runs Get on a worker and returns its task.
func (q *Query) GetInBackground(id int64) *Task[Object] {
	return runTask(q.db, func() (Object, error) { return q.Get(id) })
}

// GetInBackgroundWith runs Get on a worker and delivers the result to fn
// through d.
func (q *Query) GetInBackgroundWith(id int64, d Dispatcher, fn func(Object, error)) {
	q.GetInBackground(id).ContinueWith(d, fn)
}

// CountInBackground runs Count on a worker and returns its task.
func (q *Query) CountInBackground() *Task[int64] {
	return runTask(q.db, q.Count)
}

// CountInBackgroundWith runs Count on a worker and delivers the result to fn
// through d.
func (q *Query) CountInBackgroundWith(d Dispatcher, fn func(int64, error)) {
	q.CountInBackground().ContinueWith(d, fn)
}

// SaveInBackground runs Save on a worker and returns its task.
func (r *Record) SaveInBackground() *Task[struct{}] {
	return runTask(r.db, func() (struct{}, error) { return struct{}{}, r.Save() })
}
