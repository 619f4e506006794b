// Package policy is the single source of truth for role-based authorization.
// It replaces per-endpoint role checks with one declarative table so the
// permission matrix stays auditable and testable without the transport layer.
package policy

import (
	"github.com/vannt010391/staff-management/internal/models"
)

// Action is something an actor attempts against the system.
type Action string

const (
	ActionManageProjects       Action = "manage_projects"
	ActionDeleteProject        Action = "delete_project"
	ActionManageTopics         Action = "manage_topics"
	ActionManageDesignRules    Action = "manage_design_rules"
	ActionCreateTask           Action = "create_task"
	ActionAssignTask           Action = "assign_task"
	ActionDeleteTask           Action = "delete_task"
	ActionReviewTask           Action = "review_task"
	ActionViewAllTasks         Action = "view_all_tasks"
	ActionManageUsers          Action = "manage_users"
	ActionDeleteUsers          Action = "delete_users"
	ActionManageDepartments    Action = "manage_departments"
	ActionViewAllNotifications Action = "view_all_notifications"
)

// table maps each action to the roles allowed to perform it. A superuser
// passes every rule regardless of role.
var table = map[Action][]models.Role{
	ActionManageProjects:       {models.RoleAdmin, models.RoleManager},
	ActionDeleteProject:        {models.RoleAdmin, models.RoleManager},
	ActionManageTopics:         {models.RoleAdmin, models.RoleManager},
	ActionManageDesignRules:    {models.RoleAdmin, models.RoleManager},
	ActionCreateTask:           {models.RoleAdmin, models.RoleManager, models.RoleTeamLead, models.RoleStaff},
	ActionAssignTask:           {models.RoleAdmin, models.RoleManager, models.RoleTeamLead, models.RoleStaff},
	ActionDeleteTask:           {models.RoleAdmin},
	ActionReviewTask:           {models.RoleAdmin, models.RoleManager},
	ActionViewAllTasks:         {models.RoleAdmin, models.RoleManager, models.RoleTeamLead, models.RoleStaff},
	ActionManageUsers:          {models.RoleAdmin},
	ActionDeleteUsers:          {models.RoleAdmin},
	ActionManageDepartments:    {models.RoleAdmin, models.RoleManager},
	ActionViewAllNotifications: {models.RoleAdmin},
}

// Allows reports whether the user may perform the action. Pure lookup, no
// side effects.
func Allows(user *models.User, action Action) bool {
	if user == nil {
		return false
	}
	if user.IsSuperuser {
		return true
	}
	roles, ok := table[action]
	if !ok {
		return false
	}
	for _, r := range roles {
		if user.Role == r {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user has admin-equivalent rights.
func IsAdmin(user *models.User) bool {
	return user != nil && (user.Role == models.RoleAdmin || user.IsSuperuser)
}

// CanViewTask reports whether the user may read the task. Freelancers are
// restricted to tasks assigned to them; every other role sees all tasks.
func CanViewTask(user *models.User, task *models.Task) bool {
	if user == nil || task == nil {
		return false
	}
	if Allows(user, ActionViewAllTasks) {
		return true
	}
	if user.Role == models.RoleFreelancer {
		return task.AssignedToID != nil && *task.AssignedToID == user.ID
	}
	return false
}

// CanUpdateTask reports whether the user may update the task at all. Whether
// the update is restricted to the status field is decided by
// StatusOnlyUpdate.
func CanUpdateTask(user *models.User, task *models.Task) bool {
	if user == nil || task == nil {
		return false
	}
	if IsAdmin(user) || user.Role == models.RoleManager {
		return true
	}
	if user.Role == models.RoleFreelancer {
		return task.AssignedToID != nil && *task.AssignedToID == user.ID
	}
	return false
}

// StatusOnlyUpdate reports whether updates from this user must be narrowed
// to the status field. Non-status fields from such an actor are dropped, not
// rejected.
func StatusOnlyUpdate(user *models.User) bool {
	return user != nil && !user.IsSuperuser && user.Role == models.RoleFreelancer
}

// Owner abstracts objects carrying an owning-user field (comments, files,
// notifications) for the ownership fallback.
type Owner interface {
	OwnerID() *uint64
}

// CanTouch is the ownership-based fallback used where no explicit role rule
// exists: the owner may act, an admin may act, and a manager may act when
// the object belongs to a department they administer.
func CanTouch(user *models.User, obj Owner, dept *models.Department) bool {
	if user == nil || obj == nil {
		return false
	}
	if IsAdmin(user) {
		return true
	}
	if id := obj.OwnerID(); id != nil && *id == user.ID {
		return true
	}
	if user.Role == models.RoleManager && dept != nil &&
		dept.ManagerID != nil && *dept.ManagerID == user.ID {
		return true
	}
	return false
}
