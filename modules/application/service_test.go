package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/example/studenthustle/domain/marketplace"
	"github.com/example/studenthustle/modules/task"
	"github.com/example/studenthustle/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	tasks *task.Service
	apps  *Service
}

func steppingClock() func() time.Time {
	var mu sync.Mutex
	current := time.Date(2024, 9, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := storage.OpenSQLite(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	taskRepo := task.NewRepository(db)
	require.NoError(t, taskRepo.Migrate())
	appRepo := NewRepository(db)
	require.NoError(t, appRepo.Migrate())

	tasks := task.NewService(taskRepo, nil)
	apps := NewService(appRepo, tasks)
	apps.now = steppingClock()
	return &testEnv{tasks: tasks, apps: apps}
}

func (e *testEnv) postTask(t *testing.T, title string) *marketplace.Task {
	t.Helper()
	created, err := e.tasks.CreateTask(context.Background(), task.CreateTaskInput{
		Title:  title,
		Budget: marketplace.NewAmount(15),
	})
	require.NoError(t, err)
	return created
}

func TestService_CreateApplication(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	posted := env.postTask(t, "Move boxes")

	app, err := env.apps.CreateApplication(ctx, CreateApplicationInput{
		TaskID:        posted.ID,
		ApplicantName: "Alex",
		Message:       "I can help",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, app.ID)
	assert.Nil(t, app.OfferBudget)

	apps, err := env.apps.ListForTask(ctx, posted.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, app.ID, apps[0].ID)
	assert.Equal(t, "Alex", apps[0].ApplicantName)
	assert.Equal(t, "I can help", apps[0].Message)
}

func TestService_CreateApplicationUnknownTask(t *testing.T) {
	env := newTestEnv(t)

	for _, id := range []string{"no-such-task", ""} {
		_, err := env.apps.CreateApplication(context.Background(), CreateApplicationInput{
			TaskID:        id,
			ApplicantName: "Alex",
			Message:       "I can help",
		})
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	}
}

func TestService_CreateApplicationValidation(t *testing.T) {
	env := newTestEnv(t)
	posted := env.postTask(t, "Proofread essay")

	tests := []struct {
		name    string
		in      CreateApplicationInput
		wantErr error
	}{
		{
			name:    "missing name",
			in:      CreateApplicationInput{TaskID: posted.ID, Message: "hi"},
			wantErr: ErrApplicationFieldsRequired,
		},
		{
			name:    "blank message",
			in:      CreateApplicationInput{TaskID: posted.ID, ApplicantName: "Ana", Message: "   "},
			wantErr: ErrApplicationFieldsRequired,
		},
		{
			name:    "validation wins over unknown task",
			in:      CreateApplicationInput{TaskID: "missing", ApplicantName: "Ana"},
			wantErr: ErrApplicationFieldsRequired,
		},
		{
			name:    "non numeric offer",
			in:      CreateApplicationInput{TaskID: posted.ID, ApplicantName: "Ana", Message: "hi", OfferBudget: marketplace.ParseAmount("cheap")},
			wantErr: ErrInvalidOffer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.apps.CreateApplication(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_OfferBudgetOnlyWhenProvided(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	posted := env.postTask(t, "Paint fence")

	withOffer, err := env.apps.CreateApplication(ctx, CreateApplicationInput{
		TaskID: posted.ID, ApplicantName: "Ion", Message: "Done by Friday", OfferBudget: marketplace.ParseAmount("25"),
	})
	require.NoError(t, err)
	require.NotNil(t, withOffer.OfferBudget)
	assert.Equal(t, float64(25), *withOffer.OfferBudget)

	zeroOffer, err := env.apps.CreateApplication(ctx, CreateApplicationInput{
		TaskID: posted.ID, ApplicantName: "Ana", Message: "Free", OfferBudget: marketplace.NewAmount(0),
	})
	require.NoError(t, err)
	assert.Nil(t, zeroOffer.OfferBudget)
}

func TestService_ListForTaskNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	first := env.postTask(t, "first")
	second := env.postTask(t, "second")

	for _, name := range []string{"Ana", "Ion", "Maria"} {
		_, err := env.apps.CreateApplication(ctx, CreateApplicationInput{TaskID: first.ID, ApplicantName: name, Message: "me"})
		require.NoError(t, err)
	}
	_, err := env.apps.CreateApplication(ctx, CreateApplicationInput{TaskID: second.ID, ApplicantName: "Other", Message: "me"})
	require.NoError(t, err)

	apps, err := env.apps.ListForTask(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, apps, 3)
	assert.Equal(t, "Maria", apps[0].ApplicantName)
	assert.Equal(t, "Ion", apps[1].ApplicantName)
	assert.Equal(t, "Ana", apps[2].ApplicantName)

	none, err := env.apps.ListForTask(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestService_ListApplicationsFilter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	posted := env.postTask(t, "Tutor")

	for _, name := range []string{"Alex", "Bea", "Alex"} {
		_, err := env.apps.CreateApplication(ctx, CreateApplicationInput{TaskID: posted.ID, ApplicantName: name, Message: "hello"})
		require.NoError(t, err)
	}

	all, err := env.apps.ListApplications(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	alex, err := env.apps.ListApplications(ctx, "Alex")
	require.NoError(t, err)
	require.Len(t, alex, 2)
	assert.True(t, alex[0].CreatedAt.After(alex[1].CreatedAt))

	partial, err := env.apps.ListApplications(ctx, "Ale")
	require.NoError(t, err)
	assert.Empty(t, partial)
}

type failingLookup struct{}

func (failingLookup) GetTask(context.Context, string) (*marketplace.Task, error) {
	return nil, errors.New("nats: timeout")
}

func TestService_CreateApplicationLookupFailure(t *testing.T) {
	svc := NewService(nil, failingLookup{})

	_, err := svc.CreateApplication(context.Background(), CreateApplicationInput{
		TaskID: "t1", ApplicantName: "Ana", Message: "hi",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, task.ErrTaskNotFound)
}

func TestMapServiceError(t *testing.T) {
	assert.Equal(t, ErrApplicationFieldsRequired,
		mapServiceError(errors.New("create-application service call failed: name and message are required to apply")))
	assert.Equal(t, ErrInvalidOffer,
		mapServiceError(errors.New("create-application service call failed: offer budget must be a number")))
	assert.Equal(t, task.ErrTaskNotFound,
		mapServiceError(errors.New("create-application service call failed: task not found")))
	assert.Nil(t, mapServiceError(nil))
}
