// Copyright (c) 2026 SmoothStack. All rights reserved.
// Author: vincent.owuor@smoothstack.dev

package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/owuorvin/task-management-backend/internal/auth"
	"github.com/owuorvin/task-management-backend/internal/platform/dberr"
	"github.com/owuorvin/task-management-backend/pkg/pointer"
)

// # Task Repository

// PostgresTaskRepository implements the TaskRepository interface using pgx.
type PostgresTaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository creates a new PostgreSQL implementation of the TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *PostgresTaskRepository {
	return &PostgresTaskRepository{pool: pool}
}

// selectColumns is the shared projection for all task reads. The creator is
// a mandatory join; the assignee is optional so its columns come back NULL
// for unassigned tasks.
const selectColumns = `
	SELECT t.id, t.title, t.description, t.status, t.priority,
	       t.creatorid, t.assigneeid, t.createdat, t.updatedat,
	       c.username, c.email, c.role,
	       a.username, a.email, a.role
	FROM tasks t
	JOIN users c ON c.id = t.creatorid
	LEFT JOIN users a ON a.id = t.assigneeid`

// rowScanner abstracts over pgx.Row and pgx.Rows for the shared scan path.
type rowScanner interface {
	Scan(destinations ...any) error
}

// scanTask hydrates one task row, including the joined user projections.
func scanTask(row rowScanner) (*Task, error) {
	task := &Task{}
	creator := &auth.UserView{}

	var assigneeUsername, assigneeEmail, assigneeRole *string

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.CreatorID,
		&task.AssigneeID,
		&task.CreatedAt,
		&task.UpdatedAt,
		&creator.Username,
		&creator.Email,
		&creator.Role,
		&assigneeUsername,
		&assigneeEmail,
		&assigneeRole,
	)
	if err != nil {
		return nil, err
	}

	creator.ID = task.CreatorID
	task.Creator = creator

	if task.AssigneeID != nil && assigneeUsername != nil {
		task.Assignee = &auth.UserView{
			ID:       *task.AssigneeID,
			Username: pointer.Val(assigneeUsername),
			Email:    pointer.Val(assigneeEmail),
			Role:     pointer.Val(assigneeRole),
		}
	}

	return task, nil
}

/*
FindByID retrieves a task by its unique ID.

Description: Primary key resolution with creator and assignee hydration.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Task: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresTaskRepository) FindByID(context context.Context, id int64) (*Task, error) {
	query := selectColumns + " WHERE t.id = $1"

	task, err := scanTask(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Task")
	}

	return task, nil
}

/*
ListFiltered retrieves tasks matching the filter, most recently updated first.

Description: Builds the WHERE clause dynamically from the non-nil filter
members, always using positional arguments.

Parameters:
  - context: context.Context
  - filters: Filters

Returns:
  - []*Task: Hydrated entities
  - error: Database retrieval failures
*/
func (repository *PostgresTaskRepository) ListFiltered(context context.Context, filters Filters) ([]*Task, error) {
	query := selectColumns
	arguments := make([]any, 0, 2)
	conditions := make([]string, 0, 2)

	if filters.Status != nil {
		arguments = append(arguments, *filters.Status)
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", len(arguments)))
	}

	if filters.AssigneeID != nil {
		arguments = append(arguments, *filters.AssigneeID)
		conditions = append(conditions, fmt.Sprintf("t.assigneeid = $%d", len(arguments)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY t.updatedat DESC"

	rows, err := repository.pool.Query(context, query, arguments...)
	if err != nil {
		return nil, dberr.Wrap(err, "Task")
	}
	defer rows.Close()

	tasks := make([]*Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Task")
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Task")
	}

	return tasks, nil
}

/*
Create persists a new task record and populates the generated ID.

Description: Inserts the work item and reads back the BIGSERIAL primary key
via RETURNING.

Parameters:
  - context: context.Context
  - task: *Task

Returns:
  - error: Foreign key violations or connectivity errors
*/
func (repository *PostgresTaskRepository) Create(context context.Context, task *Task) error {
	const query = `
		INSERT INTO tasks (title, description, status, priority, creatorid, assigneeid, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	now := time.Now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	err := repository.pool.QueryRow(context, query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.CreatorID,
		task.AssigneeID,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)

	if err != nil {
		return dberr.Wrap(err, "Task")
	}

	return nil
}

/*
Update persists changes to a task's mutable attributes.

Description: Synchronizes the in-memory task state with the database,
refreshing the updatedat timestamp. The creator column is immutable.

Parameters:
  - context: context.Context
  - task: *Task

Returns:
  - error: Update failures
*/
func (repository *PostgresTaskRepository) Update(context context.Context, task *Task) error {
	const query = `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, priority = $5, assigneeid = $6, updatedat = $7
		WHERE id = $1`

	task.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.AssigneeID,
		task.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Task")
	}

	return nil
}

/*
Delete permanently removes a task by its ID.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - error: Deletion failures
*/
func (repository *PostgresTaskRepository) Delete(context context.Context, id int64) error {
	const query = "DELETE FROM tasks WHERE id = $1"

	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Task")
	}

	return nil
}
