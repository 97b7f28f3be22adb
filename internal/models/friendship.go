package models

// Friendship is a directed edge: Username added Friend.
type Friendship struct {
	Username string `json:"username"`
	Friend   string `json:"friend"`
}
