// Copyright (c) 2026 SmoothStack. All rights reserved.
// Author: vincent.owuor@smoothstack.dev

package task

import (
	"context"
)

// # Query Shapes

// Filters narrows a task listing. Nil members mean "no constraint".
type Filters struct {
	Status     *Status
	AssigneeID *int64
}

// # Task Data Access

// TaskRepository defines the data access contract for work items.
type TaskRepository interface {

	/*
		FindByID returns the task with the given ID, with its creator and
		assignee projections hydrated.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *Task: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*Task, error)

	/*
		ListFiltered returns tasks matching the filter, most recently
		updated first.

		Parameters:
		  - context: context.Context
		  - filters: Filters

		Returns:
		  - []*Task: Hydrated entities
		  - error: Database retrieval failures
	*/
	ListFiltered(context context.Context, filters Filters) ([]*Task, error)

	/*
		Create persists a brand-new task and assigns its ID.

		Parameters:
		  - context: context.Context
		  - task: *Task

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, task *Task) error

	/*
		Update persists changes to the task's mutable attributes.

		Parameters:
		  - context: context.Context
		  - task: *Task

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, task *Task) error

	/*
		Delete permanently removes the task.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, id int64) error
}
