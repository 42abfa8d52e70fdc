package domain

type Task struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ProjectID   string     `json:"projectId"`
	UserID      string     `json:"userId,omitempty"`
	UserName    string     `json:"userName,omitempty"`
	UserAvatar  string     `json:"userAvatar,omitempty"`
	Status      TaskStatus `json:"status"`
}

func (t Task) EntityID() string { return t.ID }
