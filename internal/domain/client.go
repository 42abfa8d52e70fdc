package domain

type Client struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

func (c Client) EntityID() string { return c.ID }

// ProjectType is an entry of the project type lookup list.
type ProjectType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
