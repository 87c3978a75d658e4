// Copyright (c) 2026 SmoothStack. All rights reserved.
// Author: vincent.owuor@smoothstack.dev

package task

import (
	"context"
	"log/slog"

	"github.com/owuorvin/task-management-backend/internal/auth"
	"github.com/owuorvin/task-management-backend/internal/platform/apperr"
	"github.com/owuorvin/task-management-backend/internal/platform/sec"
)

// # Contracts & Types

// UserDirectory resolves user accounts referenced by tasks.
//
// # Why an interface?
//
// The task domain only needs existence checks and public projections, so it
// depends on this narrow contract instead of the full auth service.
type UserDirectory interface {
	// FindUser resolves a single account by ID.
	FindUser(context context.Context, id int64) (*auth.User, error)
}

// # Service Layer

// Service orchestrates the business logic for tasks.
type Service struct {
	taskRepository TaskRepository
	userDirectory  UserDirectory
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(taskRepo TaskRepository, users UserDirectory, logger *slog.Logger) *Service {
	return &Service{
		taskRepository: taskRepo,
		userDirectory:  users,
		logger:         logger,
	}
}

// # Task Retrieval

/*
ListTasks retrieves tasks matching the optional filters.

Description: Reads are permissive: any authenticated user sees every task,
regardless of who created it. Filters narrow by status and/or assignee.

Parameters:
  - context: context.Context
  - filters: Filters

Returns:
  - []*Task: Matched tasks, most recently updated first
  - error: Storage or execution errors
*/
func (service *Service) ListTasks(context context.Context, filters Filters) ([]*Task, error) {
	return service.taskRepository.ListFiltered(context, filters)
}

/*
GetTask retrieves a single task by its ID.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Task: The hydrated domain entity
  - error: apperr.NotFound if absent
*/
func (service *Service) GetTask(context context.Context, id int64) (*Task, error) {
	return service.taskRepository.FindByID(context, id)
}

// # Task Creation

// CreateInput holds the data required to open a new task.
type CreateInput struct {
	Title       string
	Description string
	Priority    string
	AssigneeID  *int64
}

/*
CreateTask initialises a new work item owned by the acting user.

Description: Every new task starts in TODO regardless of input, defaults to
MEDIUM priority, and may optionally be assigned to an existing user.

Parameters:
  - context: context.Context
  - actorID: int64 (Creator, taken from the verified credential)
  - input: CreateInput

Returns:
  - *Task: Created entity with hydrated projections
  - error: Validation or persistence errors
*/
func (service *Service) CreateTask(context context.Context, actorID int64, input CreateInput) (*Task, error) {

	// Lifecycle invariant: a task is always born in TODO
	newTask := &Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      StatusTodo,
		Priority:    PriorityMedium,
		CreatorID:   actorID,
	}

	// Optional priority override from the closed vocabulary
	if input.Priority != "" {
		priority, ok := ParsePriority(input.Priority)
		if !ok {
			return nil, apperr.ValidationError("Unknown priority value")
		}
		newTask.Priority = priority
	}

	// Optional initial assignment; the referenced account must exist
	if input.AssigneeID != nil {
		if err := service.ensureAssigneeExists(context, *input.AssigneeID); err != nil {
			return nil, err
		}
		newTask.AssigneeID = input.AssigneeID
	}

	// Storage persistence
	if err := service.taskRepository.Create(context, newTask); err != nil {
		return nil, err
	}

	service.logger.Info("task_created",
		slog.Int64("task_id", newTask.ID),
		slog.Int64("creator_id", actorID),
	)

	// Re-read to hydrate the creator and assignee projections
	return service.taskRepository.FindByID(context, newTask.ID)
}

// # Task Mutation

// UpdateInput carries a partial update. Empty strings mean "leave unchanged";
// the assignee only changes when AssigneeProvided is true, with a nil
// AssigneeID clearing the assignment.
type UpdateInput struct {
	Title            string
	Description      string
	Status           string
	Priority         string
	AssigneeID       *int64
	AssigneeProvided bool
}

/*
UpdateTask applies a partial update to an existing task.

Description: Loads the task, applies the ownership rule, then folds the
provided fields into the entity. Absent fields never overwrite stored state.

Parameters:
  - context: context.Context
  - actorID: int64
  - actorRole: sec.Role
  - id: int64
  - input: UpdateInput

Returns:
  - *Task: Updated entity with hydrated projections
  - error: NotFound, Forbidden, validation, or persistence errors
*/
func (service *Service) UpdateTask(context context.Context, actorID int64, actorRole sec.Role, id int64, input UpdateInput) (*Task, error) {

	// Existence precedes authorization: a missing task is a 404 for everyone
	existing, err := service.taskRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	// Ownership rule: creator or administrator only
	if !CanMutate(existing, actorID, actorRole) {
		return nil, apperr.Forbidden("Only the task creator or an administrator can modify this task")
	}

	// Fold the provided attributes into the entity
	if input.Title != "" {
		existing.Title = input.Title
	}

	if input.Description != "" {
		existing.Description = input.Description
	}

	if input.Status != "" {
		status, ok := ParseStatus(input.Status)
		if !ok {
			return nil, apperr.ValidationError("Unknown status value")
		}
		existing.Status = status
	}

	if input.Priority != "" {
		priority, ok := ParsePriority(input.Priority)
		if !ok {
			return nil, apperr.ValidationError("Unknown priority value")
		}
		existing.Priority = priority
	}

	// The assignee changes only when the field was present in the request;
	// an explicit null clears the assignment.
	if input.AssigneeProvided {
		if input.AssigneeID != nil {
			if err := service.ensureAssigneeExists(context, *input.AssigneeID); err != nil {
				return nil, err
			}
		}
		existing.AssigneeID = input.AssigneeID
	}

	// Storage persistence
	if err := service.taskRepository.Update(context, existing); err != nil {
		return nil, err
	}

	service.logger.Info("task_updated",
		slog.Int64("task_id", existing.ID),
		slog.Int64("actor_id", actorID),
	)

	// Re-read to hydrate the (possibly changed) assignee projection
	return service.taskRepository.FindByID(context, existing.ID)
}

/*
DeleteTask permanently removes a task.

Description: Applies the same ownership rule as updates: only the creator
or an administrator may delete.

Parameters:
  - context: context.Context
  - actorID: int64
  - actorRole: sec.Role
  - id: int64

Returns:
  - error: NotFound, Forbidden, or deletion failures
*/
func (service *Service) DeleteTask(context context.Context, actorID int64, actorRole sec.Role, id int64) error {

	// Existence precedes authorization
	existing, err := service.taskRepository.FindByID(context, id)
	if err != nil {
		return err
	}

	// Ownership rule: creator or administrator only
	if !CanMutate(existing, actorID, actorRole) {
		return apperr.Forbidden("Only the task creator or an administrator can delete this task")
	}

	if err := service.taskRepository.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("task_deleted",
		slog.Int64("task_id", id),
		slog.Int64("actor_id", actorID),
	)

	return nil
}

// # Internal Helpers

// ensureAssigneeExists confirms the referenced account exists, converting a
// missing account into a validation failure rather than a misleading 404.
func (service *Service) ensureAssigneeExists(context context.Context, assigneeID int64) error {
	_, err := service.userDirectory.FindUser(context, assigneeID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return apperr.ValidationError("Assignee does not exist")
		}
		return err
	}
	return nil
}
