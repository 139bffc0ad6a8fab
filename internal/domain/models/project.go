package models

import "time"

// Project owns a tree of nodes, a dictionary, and everything beneath them.
type Project struct {
	ID          int64
	Name        string
	Description *string
	CreatorID   string
	CreatorName string
	EditorID    string
	EditorName  string
	CreatedAt   time.Time
	EditedAt    time.Time
}
