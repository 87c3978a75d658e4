// Copyright (c) 2026 SmoothStack. All rights reserved.
// Author: vincent.owuor@smoothstack.dev

package task

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/owuorvin/task-management-backend/internal/platform/sec"
)

/*
TestCanMutate covers the full ownership truth table: creators and
administrators may mutate, everyone else may not, and assignment grants
nothing.
*/
func TestCanMutate(t *testing.T) {
	assigneeID := int64(3)

	subject := &Task{
		ID:         1,
		CreatorID:  2,
		AssigneeID: &assigneeID,
	}

	tests := []struct {
		name      string
		actorID   int64
		actorRole sec.Role
		expect    bool
	}{
		{
			name:      "creator with USER role may mutate",
			actorID:   2,
			actorRole: sec.RoleUser,
			expect:    true,
		},
		{
			name:      "admin who is not the creator may mutate",
			actorID:   99,
			actorRole: sec.RoleAdmin,
			expect:    true,
		},
		{
			name:      "creator who is also admin may mutate",
			actorID:   2,
			actorRole: sec.RoleAdmin,
			expect:    true,
		},
		{
			name:      "assignee gains no mutation rights",
			actorID:   3,
			actorRole: sec.RoleUser,
			expect:    false,
		},
		{
			name:      "unrelated user may not mutate",
			actorID:   42,
			actorRole: sec.RoleUser,
			expect:    false,
		},
		{
			name:      "unknown role falls back to ownership only",
			actorID:   42,
			actorRole: sec.Role("SUPERVISOR"),
			expect:    false,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got := CanMutate(subject, testCase.actorID, testCase.actorRole)
			assert.Equal(t, testCase.expect, got)
		})
	}
}

/*
TestParseStatus verifies the closed status vocabulary.
*/
func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"TODO", "IN_PROGRESS", "DONE"} {
		status, ok := ParseStatus(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, Status(valid), status)
	}

	for _, invalid := range []string{"", "todo", "Todo", "ARCHIVED", "DONE "} {
		_, ok := ParseStatus(invalid)
		assert.False(t, ok, invalid)
	}
}

/*
TestParsePriority verifies the closed priority vocabulary.
*/
func TestParsePriority(t *testing.T) {
	for _, valid := range []string{"LOW", "MEDIUM", "HIGH", "URGENT"} {
		priority, ok := ParsePriority(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, Priority(valid), priority)
	}

	for _, invalid := range []string{"", "medium", "urgent", "CRITICAL"} {
		_, ok := ParsePriority(invalid)
		assert.False(t, ok, invalid)
	}
}
