// Copyright (c) 2026 SmoothStack. All rights reserved.
// Author: vincent.owuor@smoothstack.dev

package task

import (
	"github.com/owuorvin/task-management-backend/internal/platform/sec"
)

// # Ownership Rule

// CanMutate reports whether the acting user may update or delete the task.
//
// The rule is intentionally tiny and uniform: the creator of a task owns it,
// and administrators own everything. Assignment grants read access only and
// never confers mutation rights.
func CanMutate(task *Task, actorID int64, actorRole sec.Role) bool {
	return task.CreatorID == actorID || actorRole == sec.RoleAdmin
}
