package session

// Turn is one message of a dialog, either the user's or the agent's.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
