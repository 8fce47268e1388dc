package sabres_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sabresdb/sabres"
)

// queueDispatcher collects callbacks for the test goroutine to drain, standing
// in for a UI event loop.
type queueDispatcher struct {
	ch chan func()
}

func newQueueDispatcher() *queueDispatcher {
	return &queueDispatcher{ch: make(chan func(), 8)}
}

func (d *queueDispatcher) Dispatch(fn func()) { d.ch <- fn }

func (d *queueDispatcher) drainOne(t *testing.T) {
	t.Helper()
	select {
	case fn := <-d.ch:
		fn()
	case <-time.After(5 * time.Second):
		t.Fatal("no callback dispatched")
	}
}

func TestFindInBackground(t *testing.T) {
	db := openTestDB(t)
	registerMovieSchema(t, db)
	saveMovie(t, db, "Se7en", 1995)

	task := db.Query("Movie").WhereEqualTo("title", "Se7en").FindInBackground()
	results, err := task.Wait()
	require.NoError(t, err)
	require.Len(t, results, 1)

	// Waiting again returns the same resolved result.
	again, err := task.Wait()
	require.NoError(t, err)
	require.Len(t, again, 1)
}

func TestGetInBackground(t *testing.T) {
	db := openTestDB(t)
	registerMovieSchema(t, db)
	m := saveMovie(t, db, "Se7en", 1995)

	obj, err := db.Query("Movie").GetInBackground(m.ObjectID()).Wait()
	require.NoError(t, err)
	require.Equal(t, m.ObjectID(), obj.ObjectID())

	_, err = db.Query("Movie").GetInBackground(99).Wait()
	require.ErrorIs(t, err, sabres.ErrObjectNotFound)
}

func TestCountInBackground(t *testing.T) {
	db := openTestDB(t)
	registerMovieSchema(t, db)
	saveMovie(t, db, "Se7en", 1995)
	saveMovie(t, db, "Fight Club", 1999)

	n, err := db.Query("Movie").CountInBackground().Wait()
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestSaveInBackground(t *testing.T) {
	db := openTestDB(t)
	registerMovieSchema(t, db)

	m := db.NewObject("Movie")
	require.NoError(t, m.Put("title", "Se7en"))
	_, err := m.SaveInBackground().Wait()
	require.NoError(t, err)
	require.NotZero(t, m.ObjectID())
}

func TestContinueWithDispatcher(t *testing.T) {
	db := openTestDB(t)
	registerMovieSchema(t, db)
	saveMovie(t, db, "Se7en", 1995)

	disp := newQueueDispatcher()
	var got []sabres.Object
	var gotErr error
	db.Query("Movie").FindInBackgroundWith(disp, func(results []sabres.Object, err error) {
		got = results
		gotErr = err
	})

	disp.drainOne(t)
	require.NoError(t, gotErr)
	require.Len(t, got, 1)
}

func TestContinueWithNilDispatcher(t *testing.T) {
	db := openTestDB(t)
	registerMovieSchema(t, db)
	saveMovie(t, db, "Se7en", 1995)

	done := make(chan int64, 1)
	db.Query("Movie").CountInBackgroundWith(nil, func(n int64, err error) {
		require.NoError(t, err)
		done <- n
	})

	select {
	case n := <-done:
		require.Equal(t, int64(1), n)
	case <-time.After(5 * time.Second):
		t.Fatal("callback never ran")
	}
}

func TestBuilderErrorSurfacesInBackground(t *testing.T) {
	db := openTestDB(t)
	registerMovieSchema(t, db)

	_, err := db.Query("Movie").WhereEqualTo("studio", "New Line").FindInBackground().Wait()
	require.ErrorIs(t, err, sabres.ErrUnrecognizedKey)
}
