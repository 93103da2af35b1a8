// Package authz contains the pure authorization predicates guarding project
// and task mutations. Every function decides from the structs it is handed;
// callers load the relations they need and translate a false result into a
// "Not allowed" outcome without touching the store.
package authz

import (
	"strings"

	"github.com/teamflow-app/teamflow/internal/models"
)

// legacyUnfinishedStatuses are the literal strings the original member-removal
// guard matched against. Creation writes "Not Started"/"In Progress", so these
// never match real rows; they are kept selectable for bug-compatible behavior.
var legacyUnfinishedStatuses = []string{"Not started", "In progress"}

var unfinishedStatuses = []models.TaskStatus{
	models.TaskStatusNotStarted,
	models.TaskStatusInProgress,
}

// CanViewProject reports whether the user is a member of the project.
// Project.Members must be loaded.
func CanViewProject(user models.User, project models.Project) bool {
	for _, m := range project.Members {
		if m.ID == user.ID {
			return true
		}
	}
	return false
}

// CanDeleteProject allows only the project's creator.
func CanDeleteProject(user models.User, project models.Project) bool {
	return user.ID == project.CreatedByID
}

// CanAssignTask allows only the project's creator.
func CanAssignTask(user models.User, project models.Project) bool {
	return user.ID == project.CreatedByID
}

// CanAddMember allows only the project's creator.
func CanAddMember(user models.User, project models.Project) bool {
	return user.ID == project.CreatedByID
}

// CanChangeTaskStatus allows only the task's assignee.
func CanChangeTaskStatus(user models.User, task models.Task) bool {
	return user.ID == task.AssignedToID
}

// HasUnfinishedTask reports whether any of the tasks counts as unfinished.
// legacyMatch selects the historical literal comparison; otherwise statuses
// are matched case-insensitively so the guard works as intended.
func HasUnfinishedTask(tasks []models.Task, legacyMatch bool) bool {
	for _, t := range tasks {
		if legacyMatch {
			for _, s := range legacyUnfinishedStatuses {
				if string(t.Status) == s {
					return true
				}
			}
			continue
		}
		for _, s := range unfinishedStatuses {
			if strings.EqualFold(string(t.Status), string(s)) {
				return true
			}
		}
	}
	return false
}

// CanRemoveMember allows the project's creator to remove target, provided the
// target is not the creator themselves and targetHasUnfinished is false.
// targetTasks-derived state is passed in so the predicate stays pure.
func CanRemoveMember(user models.User, project models.Project, target models.User, targetHasUnfinished bool) bool {
	if user.ID != project.CreatedByID {
		return false
	}
	if target.ID == project.CreatedByID {
		return false
	}
	return !targetHasUnfinished
}
