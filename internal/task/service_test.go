// Copyright (c) 2026 SmoothStack. All rights reserved.
// Author: vincent.owuor@smoothstack.dev

package task

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owuorvin/task-management-backend/internal/auth"
	"github.com/owuorvin/task-management-backend/internal/platform/apperr"
	"github.com/owuorvin/task-management-backend/internal/platform/sec"
	"github.com/owuorvin/task-management-backend/pkg/pointer"
)

// # Test Doubles

// fakeTaskRepository is an in-memory TaskRepository for service tests.
type fakeTaskRepository struct {
	tasks  map[int64]*Task
	nextID int64
}

func newFakeTaskRepository() *fakeTaskRepository {
	return &fakeTaskRepository{tasks: make(map[int64]*Task), nextID: 1}
}

func (repo *fakeTaskRepository) FindByID(_ context.Context, id int64) (*Task, error) {
	stored, ok := repo.tasks[id]
	if !ok {
		return nil, apperr.NotFound("Task not found")
	}
	clone := *stored
	return &clone, nil
}

func (repo *fakeTaskRepository) ListFiltered(_ context.Context, filters Filters) ([]*Task, error) {
	out := make([]*Task, 0)
	for _, stored := range repo.tasks {
		if filters.Status != nil && stored.Status != *filters.Status {
			continue
		}
		if filters.AssigneeID != nil {
			if stored.AssigneeID == nil || *stored.AssigneeID != *filters.AssigneeID {
				continue
			}
		}
		clone := *stored
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (repo *fakeTaskRepository) Create(_ context.Context, task *Task) error {
	task.ID = repo.nextID
	repo.nextID++
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	clone := *task
	repo.tasks[task.ID] = &clone
	return nil
}

func (repo *fakeTaskRepository) Update(_ context.Context, task *Task) error {
	if _, ok := repo.tasks[task.ID]; !ok {
		return apperr.NotFound("Task not found")
	}
	task.UpdatedAt = time.Now()
	clone := *task
	repo.tasks[task.ID] = &clone
	return nil
}

func (repo *fakeTaskRepository) Delete(_ context.Context, id int64) error {
	delete(repo.tasks, id)
	return nil
}

// fakeUserDirectory resolves a fixed set of user IDs.
type fakeUserDirectory struct {
	known map[int64]*auth.User
}

func (directory *fakeUserDirectory) FindUser(_ context.Context, id int64) (*auth.User, error) {
	user, ok := directory.known[id]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	return user, nil
}

func newTestService() (*Service, *fakeTaskRepository) {
	repo := newFakeTaskRepository()
	directory := &fakeUserDirectory{known: map[int64]*auth.User{
		1: {ID: 1, Username: "amara", Role: sec.RoleUser},
		2: {ID: 2, Username: "brook", Role: sec.RoleUser},
		3: {ID: 3, Username: "root", Role: sec.RoleAdmin},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, directory, logger), repo
}

// # Creation

/*
TestCreateTask_AppliesLifecycleDefaults verifies that new tasks always start
in TODO with MEDIUM priority, owned by the acting user.
*/
func TestCreateTask_AppliesLifecycleDefaults(t *testing.T) {
	service, _ := newTestService()

	created, err := service.CreateTask(context.Background(), 1, CreateInput{
		Title: "Ship the quarterly report",
	})

	require.NoError(t, err)
	assert.Equal(t, StatusTodo, created.Status)
	assert.Equal(t, PriorityMedium, created.Priority)
	assert.Equal(t, int64(1), created.CreatorID)
	assert.Nil(t, created.AssigneeID)
}

/*
TestCreateTask_RejectsUnknownAssignee verifies the referenced account must
exist before a task can be assigned.
*/
func TestCreateTask_RejectsUnknownAssignee(t *testing.T) {
	service, repo := newTestService()

	ghost := int64(404)
	_, err := service.CreateTask(context.Background(), 1, CreateInput{
		Title:      "Haunted task",
		AssigneeID: &ghost,
	})

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, apperr.CodeValidation, appError.Code)
	assert.Empty(t, repo.tasks)
}

/*
TestCreateTask_AcceptsEveryKnownPriority verifies the full priority
vocabulary, URGENT included, is accepted at creation.
*/
func TestCreateTask_AcceptsEveryKnownPriority(t *testing.T) {
	service, _ := newTestService()

	for _, priority := range []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent} {
		created, err := service.CreateTask(context.Background(), 1, CreateInput{
			Title:    "Prioritised task",
			Priority: string(priority),
		})

		require.NoError(t, err, priority)
		assert.Equal(t, priority, created.Priority)
	}
}

/*
TestCreateTask_RejectsUnknownPriority verifies the closed priority set is
enforced at creation.
*/
func TestCreateTask_RejectsUnknownPriority(t *testing.T) {
	service, _ := newTestService()

	_, err := service.CreateTask(context.Background(), 1, CreateInput{
		Title:    "Prioritised task",
		Priority: "CRITICAL",
	})

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, apperr.CodeValidation, appError.Code)
}

// # Partial Updates

/*
TestUpdateTask_PartialFieldFolding verifies that absent fields never
overwrite stored state while present ones do.
*/
func TestUpdateTask_PartialFieldFolding(t *testing.T) {
	service, _ := newTestService()

	created, err := service.CreateTask(context.Background(), 1, CreateInput{
		Title:       "Original title",
		Description: "Original description",
	})
	require.NoError(t, err)

	updated, err := service.UpdateTask(context.Background(), 1, sec.RoleUser, created.ID, UpdateInput{
		Status: "IN_PROGRESS",
	})
	require.NoError(t, err)

	assert.Equal(t, "Original title", updated.Title)
	assert.Equal(t, "Original description", updated.Description)
	assert.Equal(t, StatusInProgress, updated.Status)
	assert.Equal(t, PriorityMedium, updated.Priority)
}

/*
TestUpdateTask_AssigneePresenceSemantics verifies the three assignee cases:
omitted leaves the assignment alone, a value reassigns, and an explicit
null clears it.
*/
func TestUpdateTask_AssigneePresenceSemantics(t *testing.T) {
	service, _ := newTestService()

	initial := int64(2)
	created, err := service.CreateTask(context.Background(), 1, CreateInput{
		Title:      "Handover task",
		AssigneeID: &initial,
	})
	require.NoError(t, err)

	// Omitted: assignment untouched
	afterOmit, err := service.UpdateTask(context.Background(), 1, sec.RoleUser, created.ID, UpdateInput{
		Title: "Renamed task",
	})
	require.NoError(t, err)
	require.NotNil(t, afterOmit.AssigneeID)
	assert.Equal(t, int64(2), *afterOmit.AssigneeID)

	// Provided with a value: reassigned
	next := int64(3)
	afterReassign, err := service.UpdateTask(context.Background(), 1, sec.RoleUser, created.ID, UpdateInput{
		AssigneeID:       &next,
		AssigneeProvided: true,
	})
	require.NoError(t, err)
	require.NotNil(t, afterReassign.AssigneeID)
	assert.Equal(t, int64(3), *afterReassign.AssigneeID)

	// Provided as explicit null: cleared
	afterClear, err := service.UpdateTask(context.Background(), 1, sec.RoleUser, created.ID, UpdateInput{
		AssigneeProvided: true,
	})
	require.NoError(t, err)
	assert.Nil(t, afterClear.AssigneeID)
}

// # Authorization Outcomes

/*
TestMutationAuthorization verifies the 404 vs 403 split for both update and
delete: missing tasks are NotFound for everyone, foreign tasks are Forbidden
for regular users, and admins bypass ownership.
*/
func TestMutationAuthorization(t *testing.T) {
	service, repo := newTestService()

	created, err := service.CreateTask(context.Background(), 1, CreateInput{
		Title: "Contested task",
	})
	require.NoError(t, err)

	t.Run("update of missing task is NotFound", func(t *testing.T) {
		_, err := service.UpdateTask(context.Background(), 1, sec.RoleUser, 9999, UpdateInput{Title: "x"})
		var appError *apperr.AppError
		require.ErrorAs(t, err, &appError)
		assert.Equal(t, apperr.CodeNotFound, appError.Code)
	})

	t.Run("update by non-creator is Forbidden", func(t *testing.T) {
		_, err := service.UpdateTask(context.Background(), 2, sec.RoleUser, created.ID, UpdateInput{Title: "hijack"})
		var appError *apperr.AppError
		require.ErrorAs(t, err, &appError)
		assert.Equal(t, apperr.CodeForbidden, appError.Code)
	})

	t.Run("update by admin succeeds", func(t *testing.T) {
		updated, err := service.UpdateTask(context.Background(), 3, sec.RoleAdmin, created.ID, UpdateInput{Title: "Admin edit"})
		require.NoError(t, err)
		assert.Equal(t, "Admin edit", updated.Title)
	})

	t.Run("delete of missing task is NotFound", func(t *testing.T) {
		err := service.DeleteTask(context.Background(), 1, sec.RoleUser, 9999)
		var appError *apperr.AppError
		require.ErrorAs(t, err, &appError)
		assert.Equal(t, apperr.CodeNotFound, appError.Code)
	})

	t.Run("delete by non-creator is Forbidden", func(t *testing.T) {
		err := service.DeleteTask(context.Background(), 2, sec.RoleUser, created.ID)
		var appError *apperr.AppError
		require.ErrorAs(t, err, &appError)
		assert.Equal(t, apperr.CodeForbidden, appError.Code)
		assert.Contains(t, repo.tasks, created.ID)
	})

	t.Run("delete by creator succeeds", func(t *testing.T) {
		err := service.DeleteTask(context.Background(), 1, sec.RoleUser, created.ID)
		require.NoError(t, err)
		assert.NotContains(t, repo.tasks, created.ID)
	})
}

// # Listing

/*
TestListTasks_Filters verifies the status and assignee filters individually
and combined.
*/
func TestListTasks_Filters(t *testing.T) {
	service, _ := newTestService()

	assignee := int64(2)
	first, err := service.CreateTask(context.Background(), 1, CreateInput{
		Title:      "Assigned and started",
		AssigneeID: &assignee,
	})
	require.NoError(t, err)

	_, err = service.UpdateTask(context.Background(), 1, sec.RoleUser, first.ID, UpdateInput{
		Status: "IN_PROGRESS",
	})
	require.NoError(t, err)

	_, err = service.CreateTask(context.Background(), 1, CreateInput{Title: "Unassigned backlog"})
	require.NoError(t, err)

	all, err := service.ListTasks(context.Background(), Filters{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	inProgress := StatusInProgress
	byStatus, err := service.ListTasks(context.Background(), Filters{Status: &inProgress})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, first.ID, byStatus[0].ID)

	byAssignee, err := service.ListTasks(context.Background(), Filters{AssigneeID: &assignee})
	require.NoError(t, err)
	require.Len(t, byAssignee, 1)
	assert.Equal(t, first.ID, byAssignee[0].ID)

	todo := StatusTodo
	combined, err := service.ListTasks(context.Background(), Filters{Status: &todo, AssigneeID: &assignee})
	require.NoError(t, err)
	assert.Empty(t, combined)
}

// # Transport Decoding

/*
TestUpdateTaskRequest_PresenceDecoding verifies the custom unmarshaller's
distinction between an omitted assignee_id and an explicit null.
*/
func TestUpdateTaskRequest_PresenceDecoding(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectPresent bool
		expectValue   *int64
	}{
		{
			name:          "omitted field",
			body:          `{"title":"x"}`,
			expectPresent: false,
			expectValue:   nil,
		},
		{
			name:          "explicit null",
			body:          `{"assignee_id":null}`,
			expectPresent: true,
			expectValue:   nil,
		},
		{
			name:          "concrete value",
			body:          `{"assignee_id":7}`,
			expectPresent: true,
			expectValue:   pointer.To(int64(7)),
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			var payload updateTaskRequest
			require.NoError(t, json.Unmarshal([]byte(testCase.body), &payload))

			assert.Equal(t, testCase.expectPresent, payload.assigneePresent)
			if testCase.expectValue == nil {
				assert.Nil(t, payload.AssigneeID)
			} else {
				require.NotNil(t, payload.AssigneeID)
				assert.Equal(t, *testCase.expectValue, *payload.AssigneeID)
			}
		})
	}
}
