package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vannt010391/staff-management/internal/models"
)

func user(role models.Role) *models.User {
	return &models.User{ID: 1, Role: role}
}

func TestAllows_Matrix(t *testing.T) {
	cases := []struct {
		action  Action
		allowed []models.Role
	}{
		{ActionManageProjects, []models.Role{models.RoleAdmin, models.RoleManager}},
		{ActionManageDesignRules, []models.Role{models.RoleAdmin, models.RoleManager}},
		{ActionManageTopics, []models.Role{models.RoleAdmin, models.RoleManager}},
		{ActionCreateTask, []models.Role{models.RoleAdmin, models.RoleManager, models.RoleTeamLead, models.RoleStaff}},
		{ActionAssignTask, []models.Role{models.RoleAdmin, models.RoleManager, models.RoleTeamLead, models.RoleStaff}},
		{ActionViewAllTasks, []models.Role{models.RoleAdmin, models.RoleManager, models.RoleTeamLead, models.RoleStaff}},
		{ActionDeleteTask, []models.Role{models.RoleAdmin}},
		{ActionReviewTask, []models.Role{models.RoleAdmin, models.RoleManager}},
		{ActionManageUsers, []models.Role{models.RoleAdmin}},
		{ActionDeleteUsers, []models.Role{models.RoleAdmin}},
		{ActionManageDepartments, []models.Role{models.RoleAdmin, models.RoleManager}},
	}

	all := []models.Role{
		models.RoleAdmin, models.RoleManager, models.RoleTeamLead,
		models.RoleStaff, models.RoleFreelancer,
	}

	for _, tc := range cases {
		for _, role := range all {
			expected := false
			for _, r := range tc.allowed {
				if r == role {
					expected = true
				}
			}
			assert.Equal(t, expected, Allows(user(role), tc.action),
				"action=%s role=%s", tc.action, role)
		}
	}
}

func TestAllows_SuperuserOverridesRole(t *testing.T) {
	u := &models.User{ID: 2, Role: models.RoleFreelancer, IsSuperuser: true}

	assert.True(t, Allows(u, ActionDeleteTask))
	assert.True(t, Allows(u, ActionManageUsers))
	assert.True(t, Allows(u, ActionReviewTask))
}

func TestAllows_NilUser(t *testing.T) {
	assert.False(t, Allows(nil, ActionCreateTask))
}

func TestCanViewTask_FreelancerOwnTasksOnly(t *testing.T) {
	freelancer := &models.User{ID: 7, Role: models.RoleFreelancer}
	mine := uint64(7)
	other := uint64(8)

	assert.True(t, CanViewTask(freelancer, &models.Task{AssignedToID: &mine}))
	assert.False(t, CanViewTask(freelancer, &models.Task{AssignedToID: &other}))
	assert.False(t, CanViewTask(freelancer, &models.Task{}))

	assert.True(t, CanViewTask(user(models.RoleStaff), &models.Task{AssignedToID: &other}))
	assert.True(t, CanViewTask(user(models.RoleTeamLead), &models.Task{}))
}

func TestCanUpdateTask(t *testing.T) {
	mine := uint64(7)
	freelancer := &models.User{ID: 7, Role: models.RoleFreelancer}

	assert.True(t, CanUpdateTask(user(models.RoleAdmin), &models.Task{}))
	assert.True(t, CanUpdateTask(user(models.RoleManager), &models.Task{}))
	assert.False(t, CanUpdateTask(user(models.RoleStaff), &models.Task{}))
	assert.True(t, CanUpdateTask(freelancer, &models.Task{AssignedToID: &mine}))
	assert.False(t, CanUpdateTask(freelancer, &models.Task{}))
}

func TestStatusOnlyUpdate(t *testing.T) {
	assert.True(t, StatusOnlyUpdate(user(models.RoleFreelancer)))
	assert.False(t, StatusOnlyUpdate(user(models.RoleManager)))
	assert.False(t, StatusOnlyUpdate(&models.User{Role: models.RoleFreelancer, IsSuperuser: true}))
}

type ownedObj struct {
	owner *uint64
}

func (o ownedObj) OwnerID() *uint64 { return o.owner }

func TestCanTouch_OwnershipFallback(t *testing.T) {
	ownerID := uint64(3)
	managerID := uint64(4)

	ownerUser := &models.User{ID: 3, Role: models.RoleStaff}
	manager := &models.User{ID: 4, Role: models.RoleManager}
	outsider := &models.User{ID: 5, Role: models.RoleStaff}

	obj := ownedObj{owner: &ownerID}

	assert.True(t, CanTouch(ownerUser, obj, nil))
	assert.True(t, CanTouch(user(models.RoleAdmin), obj, nil))
	assert.False(t, CanTouch(outsider, obj, nil))

	dept := &models.Department{ManagerID: &managerID}
	assert.True(t, CanTouch(manager, obj, dept))
	assert.False(t, CanTouch(manager, obj, &models.Department{}))
}
