// Copyright (c) 2026 SmoothStack. All rights reserved.
// Author: vincent.owuor@smoothstack.dev

/*
Package task provides the HTTP interface for work-item management.

It exposes endpoints for listing, inspecting, creating, updating, and
deleting tasks.

# Routing Strategy

  - All endpoints require an authenticated caller.
  - Reads are open to any authenticated user.
  - Mutations are additionally gated by the ownership rule in [CanMutate],
    enforced by the [Service].

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package task

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/owuorvin/task-management-backend/internal/platform/middleware"
	requestutil "github.com/owuorvin/task-management-backend/internal/platform/request"
	"github.com/owuorvin/task-management-backend/internal/platform/respond"
	"github.com/owuorvin/task-management-backend/internal/platform/sec"
	"github.com/owuorvin/task-management-backend/internal/platform/validate"
)

// # Handler Implementation

// Handler implements the HTTP layer for task management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new task [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with all task endpoints mounted.
//
// # Endpoints
//   - GET    /     : Lists tasks (optional status/assignee filters).
//   - POST   /     : Creates a task owned by the caller.
//   - GET    /{id} : Retrieves a single task.
//   - PUT    /{id} : Partially updates a task (ownership rule applies).
//   - DELETE /{id} : Deletes a task (ownership rule applies).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", handler.listTasks)
		r.Post("/", handler.createTask)
		r.Get("/{id}", handler.getTask)
		r.Put("/{id}", handler.updateTask)
		r.Delete("/{id}", handler.deleteTask)
	})

	return router
}

// # Request Payloads

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	AssigneeID  *int64 `json:"assignee_id"`
}

// updateTaskRequest is a partial update payload. Field presence matters for
// the assignee: omitting assignee_id leaves the assignment untouched, while
// an explicit null clears it. The custom unmarshaller records which case
// the request body expressed.
type updateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	AssigneeID  *int64 `json:"assignee_id"`

	assigneePresent bool
}

func (payload *updateTaskRequest) UnmarshalJSON(data []byte) error {
	type plain updateTaskRequest
	if err := json.Unmarshal(data, (*plain)(payload)); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	_, payload.assigneePresent = keys[FieldAssigneeID]
	return nil
}

// # Task Retrieval

/*
ListTasks returns all tasks visible to the caller.

GET /api/v1/tasks

Description: Lists every task, most recently updated first. Query parameters
narrow the listing; unrecognised filter values are silently ignored rather
than rejected.

Request:
  - status: string (TODO, IN_PROGRESS, DONE)
  - assignee: int64

Response:
  - 200: []Task: Matched tasks
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) listTasks(writer http.ResponseWriter, request *http.Request) {
	filters := Filters{}

	// Unknown status values fall through as "no filter"
	if raw := request.URL.Query().Get(FieldStatus); raw != "" {
		if status, ok := ParseStatus(raw); ok {
			filters.Status = &status
		}
	}

	// Non-numeric assignee values fall through as "no filter"
	if raw := request.URL.Query().Get("assignee"); raw != "" {
		if assigneeID, err := strconv.ParseInt(raw, 10, 64); err == nil && assigneeID > 0 {
			filters.AssigneeID = &assigneeID
		}
	}

	tasks, err := handler.service.ListTasks(request.Context(), filters)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tasks)
}

/*
GetTask returns a single task by ID.

GET /api/v1/tasks/{id}

Response:
  - 200: Task: The hydrated task
  - 404: ErrNotFound: Task does not exist
*/
func (handler *Handler) getTask(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.NumericID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	foundTask, err := handler.service.GetTask(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, foundTask)
}

// # Task Creation

/*
CreateTask opens a new task owned by the caller.

POST /api/v1/tasks

Request:
  - Body: createTaskRequest (Title, Description, Priority, AssigneeID)

Response:
  - 201: Task: Created task
  - 400: ErrInvalidJSON/Validation: Invalid payload or unknown assignee
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) createTask(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createTaskRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, TitleMaxLength).
		MaxLen(FieldDescription, input.Description, DescriptionMaxLength)

	if input.Priority != "" {
		validator.OneOf(FieldPriority, input.Priority,
			string(PriorityLow), string(PriorityMedium), string(PriorityHigh), string(PriorityUrgent))
	}

	validator.Custom(FieldAssigneeID, input.AssigneeID != nil && *input.AssigneeID < 1,
		"Must be a positive identifier")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	createdTask, err := handler.service.CreateTask(request.Context(), actorID, CreateInput{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		AssigneeID:  input.AssigneeID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, createdTask)
}

// # Task Mutation

/*
UpdateTask applies a partial update to an existing task.

PUT /api/v1/tasks/{id}

Description: Absent fields leave the stored values untouched. Only the
creator or an administrator may update.

Request:
  - Body: updateTaskRequest

Response:
  - 200: Task: Updated task
  - 400: ErrInvalidJSON/Validation: Invalid payload
  - 403: ErrForbidden: Caller is neither creator nor administrator
  - 404: ErrNotFound: Task does not exist
*/
func (handler *Handler) updateTask(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.NumericID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateTaskRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.MaxLen(FieldTitle, input.Title, TitleMaxLength).
		MaxLen(FieldDescription, input.Description, DescriptionMaxLength).
		Custom(FieldAssigneeID, input.AssigneeID != nil && *input.AssigneeID < 1,
			"Must be a positive identifier")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updatedTask, err := handler.service.UpdateTask(request.Context(), claims.UserID, sec.Role(claims.Role), id, UpdateInput{
		Title:            input.Title,
		Description:      input.Description,
		Status:           input.Status,
		Priority:         input.Priority,
		AssigneeID:       input.AssigneeID,
		AssigneeProvided: input.assigneePresent,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updatedTask)
}

/*
DeleteTask permanently removes a task.

DELETE /api/v1/tasks/{id}

Description: Only the creator or an administrator may delete.

Response:
  - 204: No Content: Task removed
  - 403: ErrForbidden: Caller is neither creator nor administrator
  - 404: ErrNotFound: Task does not exist
*/
func (handler *Handler) deleteTask(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.NumericID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTask(request.Context(), claims.UserID, sec.Role(claims.Role), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
