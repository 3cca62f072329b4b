package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alexanderramin/todod/internal/domain"
	"github.com/alexanderramin/todod/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingObserver) last(t *testing.T) UseCaseEvent {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.events)
	return r.events[len(r.events)-1]
}

func newTestTodoService(t *testing.T) (TodoService, *recordingObserver) {
	t.Helper()
	database := testutil.NewTestDB(t)
	obs := &recordingObserver{}
	return NewTodoService(testutil.NewTestUoW(database), obs), obs
}

// TestTodoService_Lifecycle walks the create → get → update → delete → get
// scenario end to end.
func TestTodoService_Lifecycle(t *testing.T) {
	svc, _ := newTestTodoService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.TodoInput{Title: "Buy milk"})
	require.NoError(t, err)
	assert.Equal(t, &domain.Todo{ID: 1, Title: "Buy milk"}, created)

	fetched, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)

	updated, err := svc.Update(ctx, 1, domain.TodoInput{
		Title:       "Buy milk",
		Description: testutil.Ptr("2%"),
		Completed:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, &domain.Todo{ID: 1, Title: "Buy milk", Description: testutil.Ptr("2%"), Completed: true}, updated)

	require.NoError(t, svc.Delete(ctx, 1))

	_, err = svc.Get(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 1), domain.ErrTodoNotFound)
}

func TestTodoService_ListCountsCreates(t *testing.T) {
	svc, _ := newTestTodoService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, testutil.NewTestTodoInput())
		require.NoError(t, err)
	}

	todos, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, todos, 3)
}

func TestTodoService_UnknownIDs(t *testing.T) {
	svc, _ := newTestTodoService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, 5)
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	_, err = svc.Update(ctx, 5, testutil.NewTestTodoInput())
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 5), domain.ErrTodoNotFound)

	todos, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestTodoService_ObservesUseCases(t *testing.T) {
	svc, obs := newTestTodoService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, testutil.NewTestTodoInput())
	require.NoError(t, err)
	ev := obs.last(t)
	assert.Equal(t, "create-todo", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, created.ID, ev.Fields["todo_id"])

	_, err = svc.Get(ctx, 999)
	require.Error(t, err)
	ev = obs.last(t)
	assert.Equal(t, "get-todo", ev.Name)
	assert.False(t, ev.Success)
	assert.ErrorIs(t, ev.Err, domain.ErrTodoNotFound)
	assert.Equal(t, int64(999), ev.Fields["todo_id"])

	_, err = svc.List(ctx)
	require.NoError(t, err)
	ev = obs.last(t)
	assert.Equal(t, "list-todos", ev.Name)
	assert.Equal(t, 1, ev.Fields["count"])
}

func TestTodoService_StorageFailureRollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	boom := errors.New("disk unavailable")
	failing := &testutil.FailOnNthExecUoW{DB: database, FailOn: 1, Err: boom}
	svc := NewTodoService(failing)
	ctx := context.Background()

	_, err := svc.Create(ctx, testutil.NewTestTodoInput())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, int32(1), failing.Calls.Load(), "no retry after a storage failure")

	healthy := NewTodoService(testutil.NewTestUoW(database))
	todos, err := healthy.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestTodoService_UpdateFailureLeavesRecordIntact(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	healthy := NewTodoService(testutil.NewTestUoW(database))
	created, err := healthy.Create(ctx, testutil.NewTestTodoInput(testutil.WithTitle("keep")))
	require.NoError(t, err)

	boom := errors.New("write failed")
	failing := NewTodoService(&testutil.FailOnNthExecUoW{DB: database, FailOn: 1, Err: boom})
	_, err = failing.Update(ctx, created.ID, testutil.NewTestTodoInput(testutil.WithTitle("lost")))
	require.ErrorIs(t, err, boom)

	fetched, err := healthy.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep", fetched.Title)
}
