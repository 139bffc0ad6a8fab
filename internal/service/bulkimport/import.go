// Package bulkimport populates a project's node tree from a zip archive of
// Markdown/HTML/text files, mapping the archive's directory structure onto
// page nodes and each file onto a function node's document.
package bulkimport

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"dipstudio/internal/domain"
	"dipstudio/internal/domain/models"
	"dipstudio/internal/domain/repositories"
	"dipstudio/internal/domain/services"
	"dipstudio/internal/service/converter"
)

// maxConcurrentConversions bounds how many archive entries are read and
// converted to rich-text documents at once. Conversion is CPU-bound
// (sanitization, markdown parsing); node creation that follows is kept
// sequential since it shares in-memory path caches and must preserve a
// deterministic sibling order.
const maxConcurrentConversions = 8

// importService implements services.ImportService.
type importService struct {
	nodeRepo    repositories.NodeRepository
	docRepo     repositories.FunctionDocumentRepository
	contentRepo repositories.DocumentContentRepository
	txManager   repositories.TransactionManager
	tree        services.TreeService
	document    services.DocumentService
	converters  *converter.Registry
	logger      *slog.Logger
}

// New creates a new bulk-import service.
func New(
	nodeRepo repositories.NodeRepository,
	docRepo repositories.FunctionDocumentRepository,
	contentRepo repositories.DocumentContentRepository,
	txManager repositories.TransactionManager,
	tree services.TreeService,
	document services.DocumentService,
	converters *converter.Registry,
	logger *slog.Logger,
) services.ImportService {
	return &importService{
		nodeRepo:    nodeRepo,
		docRepo:     docRepo,
		contentRepo: contentRepo,
		txManager:   txManager,
		tree:        tree,
		document:    document,
		converters:  converters,
		logger:      logger,
	}
}

// convertedEntry is an archive file after its content has been turned into
// a document, still waiting to be placed in the tree.
type convertedEntry struct {
	index      int
	folderPath string // "" for bundle root, else slash-separated page names
	name       string // file base name, extension stripped
	archived   string // original path within the archive, for reporting
	content    map[string]interface{}
}

func (s *importService) Import(ctx context.Context, projectID int64, applicationNodeID string, bundle []byte, mode services.ImportMode, callerID, callerName string) (*services.ImportResult, error) {
	appNode, err := s.nodeRepo.GetByID(ctx, projectID, applicationNodeID)
	if err != nil {
		return nil, fmt.Errorf("get application node: %w", err)
	}
	if appNode.NodeType != models.NodeTypeApplication {
		return nil, fmt.Errorf("%w: import target must be an application node", domain.ErrValidation)
	}

	if mode == services.ImportModeReplace {
		if err := s.clearSubtree(ctx, projectID, appNode); err != nil {
			return nil, fmt.Errorf("clear existing subtree: %w", err)
		}
	}

	zr, err := zip.NewReader(bytes.NewReader(bundle), int64(len(bundle)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a valid zip archive", domain.ErrValidation)
	}

	files := make([]*zip.File, 0, len(zr.File))
	for _, f := range zr.File {
		if !f.FileInfo().IsDir() {
			files = append(files, f)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	result := &services.ImportResult{}
	converted := make([]*convertedEntry, len(files))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentConversions)
	var mu sync.Mutex

	for i, f := range files {
		i, f := i, f
		result.TotalFiles++

		ext := filepath.Ext(f.Name)
		conv := s.converters.GetConverter(ext)
		if conv == nil {
			mu.Lock()
			result.Skipped++
			result.Entries = append(result.Entries, services.ImportedEntry{Path: f.Name, Action: "skipped"})
			mu.Unlock()
			continue
		}

		group.Go(func() error {
			entry, err := s.convertEntry(gctx, conv, f, i)
			if err != nil {
				mu.Lock()
				result.Failed++
				result.Failures = append(result.Failures, services.ImportFailure{Path: f.Name, Error: err.Error()})
				mu.Unlock()
				s.logger.Warn("bulk import entry failed", "path", f.Name, "error", err)
				return nil
			}
			mu.Lock()
			converted[i] = entry
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	pageCache := map[string]string{"": appNode.ID}
	funcCache := map[string]string{}
	if mode == services.ImportModeMerge {
		if err := s.populateCaches(ctx, projectID, appNode.ID, pageCache, funcCache); err != nil {
			return nil, fmt.Errorf("read existing subtree: %w", err)
		}
	}

	for _, entry := range converted {
		if entry == nil {
			continue
		}
		if err := s.place(ctx, projectID, entry, pageCache, funcCache, callerID, callerName, result); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, services.ImportFailure{Path: entry.archived, Error: err.Error()})
			s.logger.Warn("bulk import entry failed", "path", entry.archived, "error", err)
		}
	}

	s.logger.Info("bulk import complete",
		"project_id", projectID,
		"application_node_id", applicationNodeID,
		"total_files", result.TotalFiles,
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)

	return result, nil
}

func (s *importService) convertEntry(ctx context.Context, conv converter.ContentConverter, f *zip.File, index int) (*convertedEntry, error) {
	r, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open archive entry: %w", err)
	}
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read archive entry: %w", err)
	}

	content, err := conv.Convert(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("convert content: %w", err)
	}

	dir := filepath.Dir(f.Name)
	if dir == "." {
		dir = ""
	}
	base := filepath.Base(f.Name)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, "/", "-")

	return &convertedEntry{
		index:      index,
		folderPath: dir,
		name:       name,
		archived:   f.Name,
		content:    content,
	}, nil
}

// place creates or updates the page/function nodes needed to hold one
// converted entry, reusing pageCache/funcCache across calls so repeated
// folder segments only create their page node once.
func (s *importService) place(ctx context.Context, projectID int64, entry *convertedEntry, pageCache, funcCache map[string]string, callerID, callerName string, result *services.ImportResult) error {
	parentID, err := s.ensurePagePath(ctx, projectID, entry.folderPath, pageCache, callerID, callerName)
	if err != nil {
		return fmt.Errorf("create parent pages: %w", err)
	}

	docJSON, err := marshalContent(entry.content)
	if err != nil {
		return err
	}

	key := entry.folderPath + "|" + entry.name
	if existingID, ok := funcCache[key]; ok {
		if _, err := s.document.SetContent(ctx, projectID, existingID, docJSON, callerID, callerName); err != nil {
			return fmt.Errorf("update function document: %w", err)
		}
		result.Updated++
		result.Entries = append(result.Entries, services.ImportedEntry{Path: entry.archived, Action: "updated"})
		return nil
	}

	node, err := s.tree.CreateNode(ctx, &services.CreateNodeRequest{
		ProjectID:   projectID,
		ParentID:    &parentID,
		NodeType:    models.NodeTypeFunction,
		Name:        entry.name,
		CreatorID:   callerID,
		CreatorName: callerName,
	})
	if err != nil {
		return fmt.Errorf("create function node: %w", err)
	}
	if _, err := s.document.SetContent(ctx, projectID, node.ID, docJSON, callerID, callerName); err != nil {
		return fmt.Errorf("set function document content: %w", err)
	}

	funcCache[key] = node.ID
	result.Created++
	result.Entries = append(result.Entries, services.ImportedEntry{Path: entry.archived, Action: "created"})
	return nil
}

// ensurePagePath walks a "/"-joined folder path, creating any page node
// that pageCache doesn't already know about, and returns the ID of the
// deepest page (or the application node itself, for the empty path).
func (s *importService) ensurePagePath(ctx context.Context, projectID int64, folderPath string, pageCache map[string]string, callerID, callerName string) (string, error) {
	if id, ok := pageCache[folderPath]; ok {
		return id, nil
	}

	parentPath := ""
	if idx := strings.LastIndex(folderPath, "/"); idx >= 0 {
		parentPath = folderPath[:idx]
	}
	parentID, err := s.ensurePagePath(ctx, projectID, parentPath, pageCache, callerID, callerName)
	if err != nil {
		return "", err
	}

	name := folderPath
	if idx := strings.LastIndex(folderPath, "/"); idx >= 0 {
		name = folderPath[idx+1:]
	}

	node, err := s.tree.CreateNode(ctx, &services.CreateNodeRequest{
		ProjectID:   projectID,
		ParentID:    &parentID,
		NodeType:    models.NodeTypePage,
		Name:        name,
		CreatorID:   callerID,
		CreatorName: callerName,
	})
	if err != nil {
		return "", fmt.Errorf("create page %q: %w", folderPath, err)
	}

	pageCache[folderPath] = node.ID
	return node.ID, nil
}

// populateCaches seeds pageCache and funcCache from the application node's
// existing subtree, so a merge import reuses rather than duplicates them.
func (s *importService) populateCaches(ctx context.Context, projectID int64, applicationNodeID string, pageCache, funcCache map[string]string) error {
	tree, err := s.tree.Tree(ctx, projectID)
	if err != nil {
		return err
	}

	var root *models.TreeNode
	for _, r := range tree {
		if r.Node.ID == applicationNodeID {
			root = r
			break
		}
	}
	if root == nil {
		return nil
	}

	var walk func(node *models.TreeNode, path string)
	walk = func(node *models.TreeNode, path string) {
		for _, child := range node.Children {
			switch child.Node.NodeType {
			case models.NodeTypePage:
				childPath := child.Node.Name
				if path != "" {
					childPath = path + "/" + child.Node.Name
				}
				pageCache[childPath] = child.Node.ID
				walk(child, childPath)
			case models.NodeTypeFunction:
				funcCache[path+"|"+child.Node.Name] = child.Node.ID
			}
		}
	}
	walk(root, "")

	return nil
}

func marshalContent(content map[string]interface{}) ([]byte, error) {
	b, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("marshal converted document: %w", err)
	}
	return b, nil
}

// clearSubtree deletes every existing descendant of an application node
// (deepest first, so function documents and leaf nodes go before the pages
// that contain them) ahead of a replace-mode import.
func (s *importService) clearSubtree(ctx context.Context, projectID int64, appNode *models.ProjectNode) error {
	descendants, err := s.nodeRepo.GetDescendants(ctx, projectID, appNode.Path)
	if err != nil {
		return err
	}

	sort.Slice(descendants, func(i, j int) bool {
		return len(descendants[i].Path) > len(descendants[j].Path)
	})

	return s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		for _, n := range descendants {
			if n.NodeType == models.NodeTypeFunction && n.DocumentID != nil {
				if err := s.contentRepo.Delete(ctx, *n.DocumentID); err != nil {
					return fmt.Errorf("delete document content for %s: %w", n.ID, err)
				}
				if err := s.docRepo.Delete(ctx, n.ID); err != nil {
					return fmt.Errorf("delete function document for %s: %w", n.ID, err)
				}
			}
			if err := s.nodeRepo.Delete(ctx, projectID, n.ID); err != nil {
				return fmt.Errorf("delete node %s: %w", n.ID, err)
			}
		}
		return nil
	})
}
