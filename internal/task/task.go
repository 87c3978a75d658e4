// Copyright (c) 2026 SmoothStack. All rights reserved.
// Author: vincent.owuor@smoothstack.dev

/*
Package task implements the work-item domain of the platform.

It defines the Task entity, its closed Status and Priority vocabularies, and
the ownership rule that governs who may change or remove a task.

# Architecture

This layer is the "Truth" for work items. Entities defined here have no
transport or storage dependencies and encapsulate all business rules related
to task lifecycle.
*/
package task

import (
	"time"

	"github.com/owuorvin/task-management-backend/internal/auth"
)

// # Closed Vocabularies

// Status is the lifecycle state of a task.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// ParseStatus maps a raw string onto the closed Status set.
// The second return value reports whether the input was recognised.
func ParseStatus(value string) (Status, bool) {
	switch Status(value) {
	case StatusTodo, StatusInProgress, StatusDone:
		return Status(value), true
	default:
		return "", false
	}
}

// IsValid reports whether the status is part of the closed set.
func (status Status) IsValid() bool {
	_, ok := ParseStatus(string(status))
	return ok
}

// Priority is the urgency classification of a task.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// ParsePriority maps a raw string onto the closed Priority set.
// The second return value reports whether the input was recognised.
func ParsePriority(value string) (Priority, bool) {
	switch Priority(value) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return Priority(value), true
	default:
		return "", false
	}
}

// IsValid reports whether the priority is part of the closed set.
func (priority Priority) IsValid() bool {
	_, ok := ParsePriority(string(priority))
	return ok
}

// # Domain Entities

// Task represents a single unit of work tracked by the platform.
//
// The raw foreign keys are hidden from JSON; responses carry the hydrated
// [auth.UserView] projections instead.
type Task struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      Status         `json:"status"`
	Priority    Priority       `json:"priority"`
	CreatorID   int64          `json:"-"`
	AssigneeID  *int64         `json:"-"`
	Creator     *auth.UserView `json:"creator,omitempty"`
	Assignee    *auth.UserView `json:"assignee,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the task domain.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldPriority    = "priority"
	FieldAssigneeID  = "assignee_id"
)

// # Attribute Constraints

const (
	// TitleMaxLength is the longest accepted task title.
	TitleMaxLength = 200

	// DescriptionMaxLength is the longest accepted task description.
	DescriptionMaxLength = 1000
)
