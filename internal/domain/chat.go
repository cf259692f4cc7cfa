package domain

// ChatMessage is one community-chat entry. Messages are ephemeral and owned by
// the realtime collaborator; this type only shapes them for display.
type ChatMessage struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}
