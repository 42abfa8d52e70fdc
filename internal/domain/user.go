package domain

// User is a person who can lead projects, belong to teams and log activities.
type User struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"-"`
	Avatar   string     `json:"avatar"`
	Role     Role       `json:"role"`
	Team     Team       `json:"team,omitempty"`
	Status   UserStatus `json:"status"`
}

func (u User) EntityID() string { return u.ID }

// Normalize fills derived and defaulted fields: the avatar follows the name,
// status defaults to Active, and roles without a team drop any team value.
func (u *User) Normalize() {
	u.Avatar = AvatarURL(u.Name)
	if u.Status == "" {
		u.Status = UserActive
	}
	if !u.Role.HasTeam() {
		u.Team = TeamNone
	}
}

// Active reports whether the user may sign in.
func (u User) Active() bool {
	return u.Status != UserInactive
}
