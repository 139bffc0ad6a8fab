package bulkimport

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"dipstudio/internal/domain/models"
	"dipstudio/internal/domain/services"
	"dipstudio/internal/service/converter"
)

// fakeEmptyTreeService is a minimal services.TreeService stand-in whose
// Tree() always returns no roots, used to exercise populateCaches' handling
// of a project with nothing (yet) to cache.
type fakeEmptyTreeService struct{}

func (fakeEmptyTreeService) CreateNode(ctx context.Context, req *services.CreateNodeRequest) (*models.ProjectNode, error) {
	panic("not implemented")
}

func (fakeEmptyTreeService) GetNode(ctx context.Context, projectID int64, id string) (*models.ProjectNode, error) {
	panic("not implemented")
}

func (fakeEmptyTreeService) UpdateNode(ctx context.Context, projectID int64, id string, req *services.UpdateNodeRequest) (*models.ProjectNode, error) {
	panic("not implemented")
}

func (fakeEmptyTreeService) MoveNode(ctx context.Context, projectID int64, id string, req *services.MoveNodeRequest) (*models.ProjectNode, error) {
	panic("not implemented")
}

func (fakeEmptyTreeService) DeleteNode(ctx context.Context, projectID int64, id string) error {
	panic("not implemented")
}

func (fakeEmptyTreeService) Tree(ctx context.Context, projectID int64) ([]*models.TreeNode, error) {
	return nil, nil
}

// buildZipEntry writes a single-entry in-memory zip archive and returns its
// *zip.File, mirroring what Import sees after opening an uploaded bundle.
func buildZipEntry(t *testing.T, name, content string) *zip.File {
	t.Helper()

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("reopen zip: %v", err)
	}
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("entry %q not found after round-trip", name)
	return nil
}

func TestImportService_convertEntry(t *testing.T) {
	s := &importService{converters: converter.NewRegistry()}

	tests := []struct {
		name           string
		archivePath    string
		wantFolderPath string
		wantName       string
	}{
		{"root-level file", "Overview.md", "", "Overview"},
		{"nested one level", "Characters/Aria.md", "Characters", "Aria"},
		{"nested two levels", "Characters/Villains/Boss.md", "Characters/Villains", "Boss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := buildZipEntry(t, tt.archivePath, "# Title\n\nSome body text.")
			conv := s.converters.GetConverter(".md")

			entry, err := s.convertEntry(context.Background(), conv, f, 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if entry.folderPath != tt.wantFolderPath {
				t.Errorf("folderPath = %q, want %q", entry.folderPath, tt.wantFolderPath)
			}
			if entry.name != tt.wantName {
				t.Errorf("name = %q, want %q", entry.name, tt.wantName)
			}
			if entry.archived != tt.archivePath {
				t.Errorf("archived = %q, want %q", entry.archived, tt.archivePath)
			}
			if entry.content["type"] != "doc" {
				t.Errorf("content[type] = %v, want doc", entry.content["type"])
			}
		})
	}
}

func TestMarshalContent(t *testing.T) {
	content := map[string]interface{}{"type": "doc", "content": []interface{}{}}

	raw, err := marshalContent(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"content":[],"type":"doc"}` {
		t.Errorf("marshalContent = %s", raw)
	}
}

func TestImportService_populateCaches_NoMatchingRoot(t *testing.T) {
	// This guards populateCaches' early-return when the requested
	// application node isn't present in the assembled tree at all (e.g. a
	// caller racing a concurrent delete), which should not panic or error.
	s := &importService{tree: fakeEmptyTreeService{}}

	pageCache := map[string]string{}
	funcCache := map[string]string{}
	if err := s.populateCaches(context.Background(), 1, "missing-app", pageCache, funcCache); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pageCache) != 0 || len(funcCache) != 0 {
		t.Error("expected caches to remain empty when the application node is absent from the tree")
	}
}
