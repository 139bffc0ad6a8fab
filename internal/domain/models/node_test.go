package models

import (
	"errors"
	"testing"

	"dipstudio/internal/domain"
)

func TestValidateParentType(t *testing.T) {
	app := NodeTypeApplication
	page := NodeTypePage
	function := NodeTypeFunction

	tests := []struct {
		name       string
		childType  NodeType
		parentType *NodeType
		wantErr    bool
	}{
		{"application at root", NodeTypeApplication, nil, false},
		{"application under another node is invalid", NodeTypeApplication, &app, true},
		{"page under application", NodeTypePage, &app, false},
		{"page at root is invalid", NodeTypePage, nil, true},
		{"page under page is invalid", NodeTypePage, &page, true},
		{"function under page", NodeTypeFunction, &page, false},
		{"function under application is invalid", NodeTypeFunction, &app, true},
		{"function at root is invalid", NodeTypeFunction, nil, true},
		{"function under function is invalid", NodeTypeFunction, &function, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParentType(tt.childType, tt.parentType)
			if tt.wantErr && err == nil {
				t.Error("expected an error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCanHaveChildren(t *testing.T) {
	if !CanHaveChildren(NodeTypeApplication) {
		t.Error("application nodes should be able to have children")
	}
	if !CanHaveChildren(NodeTypePage) {
		t.Error("page nodes should be able to have children")
	}
	if CanHaveChildren(NodeTypeFunction) {
		t.Error("function nodes are leaves and should not have children")
	}
}

func TestProjectNode_Validate(t *testing.T) {
	tests := []struct {
		name    string
		node    ProjectNode
		wantErr bool
	}{
		{
			name:    "valid node",
			node:    ProjectNode{Name: "Login Page", ProjectID: 1, NodeType: NodeTypePage},
			wantErr: false,
		},
		{
			name:    "empty name",
			node:    ProjectNode{Name: "", ProjectID: 1, NodeType: NodeTypePage},
			wantErr: true,
		},
		{
			name:    "missing project id",
			node:    ProjectNode{Name: "Login Page", NodeType: NodeTypePage},
			wantErr: true,
		},
		{
			name:    "unknown node type",
			node:    ProjectNode{Name: "Login Page", ProjectID: 1, NodeType: "widget"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.node.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error, got nil")
				}
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("expected errors.Is(err, domain.ErrValidation), got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestProjectNode_BuildPath(t *testing.T) {
	node := ProjectNode{ID: "abc123"}

	if got, want := node.BuildPath(""), "/node_abc123"; got != want {
		t.Errorf("root path = %q, want %q", got, want)
	}

	child := ProjectNode{ID: "def456"}
	if got, want := child.BuildPath("/node_abc123"), "/node_abc123/node_def456"; got != want {
		t.Errorf("child path = %q, want %q", got, want)
	}
}

func TestDictionaryEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   DictionaryEntry
		wantErr bool
	}{
		{
			name:    "valid entry",
			entry:   DictionaryEntry{Term: "MVP", Definition: "Minimum Viable Product", ProjectID: 1},
			wantErr: false,
		},
		{
			name:    "empty term",
			entry:   DictionaryEntry{Term: "", Definition: "x", ProjectID: 1},
			wantErr: true,
		},
		{
			name:    "empty definition",
			entry:   DictionaryEntry{Term: "MVP", Definition: "", ProjectID: 1},
			wantErr: true,
		},
		{
			name:    "missing project id",
			entry:   DictionaryEntry{Term: "MVP", Definition: "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected an error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
