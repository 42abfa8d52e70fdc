package domain

type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleSupervisor Role = "Supervisor"
	RoleSenior     Role = "Senior"
	RoleAssociate  Role = "Associate"
)

// Roles lists every role in display order.
var Roles = []Role{RoleAdmin, RoleSupervisor, RoleSenior, RoleAssociate}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleSenior, RoleAssociate:
		return true
	}
	return false
}

// HasTeam reports whether users with this role are assigned to a team.
// Admins and supervisors work across teams.
func (r Role) HasTeam() bool {
	return r == RoleSenior || r == RoleAssociate
}

type Team string

const (
	TeamNone Team = ""
	Team1    Team = "Team 1"
	Team2    Team = "Team 2"
	Team3    Team = "Team 3"
)

var Teams = []Team{Team1, Team2, Team3}

func (t Team) Valid() bool {
	switch t {
	case TeamNone, Team1, Team2, Team3:
		return true
	}
	return false
}

type UserStatus string

const (
	UserActive   UserStatus = "Active"
	UserInactive UserStatus = "Inactive"
)

func (s UserStatus) Valid() bool {
	return s == UserActive || s == UserInactive
}

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "Planning"
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectBlocked    ProjectStatus = "Blocked"
	ProjectCompleted  ProjectStatus = "Completed"
)

var ProjectStatuses = []ProjectStatus{ProjectPlanning, ProjectInProgress, ProjectBlocked, ProjectCompleted}

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectBlocked, ProjectCompleted:
		return true
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type TaskStatus string

const (
	TaskToDo       TaskStatus = "To Do"
	TaskInProgress TaskStatus = "In Progress"
	TaskDone       TaskStatus = "Done"
)

var TaskStatuses = []TaskStatus{TaskToDo, TaskInProgress, TaskDone}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskToDo, TaskInProgress, TaskDone:
		return true
	}
	return false
}
