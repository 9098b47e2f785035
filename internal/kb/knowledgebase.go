// Package kb owns the knowledge-base aggregate: the document store and the
// term index live behind one lock so a document and its index entries
// become visible to readers atomically.
package kb

import (
	"context"
	"strings"
	"time"

	"github.com/avasani/KnowledgeAPI/internal/adapter/utils"
	"github.com/avasani/KnowledgeAPI/internal/config"
	"github.com/avasani/KnowledgeAPI/internal/data/filestore"
	"github.com/avasani/KnowledgeAPI/internal/domain/kbmodel"
	"github.com/avasani/KnowledgeAPI/internal/kb/chunker"
	"github.com/avasani/KnowledgeAPI/internal/kb/extract"
	"github.com/avasani/KnowledgeAPI/internal/kb/index"
	"github.com/avasani/KnowledgeAPI/internal/kb/search"
	"github.com/avasani/KnowledgeAPI/internal/kb/store"
	"github.com/avasani/KnowledgeAPI/internal/metrics"
	"github.com/avasani/KnowledgeAPI/pkg/logger_i"

	"sync"
)

type KnowledgeBase struct {
	mu     sync.RWMutex
	docs   *store.DocumentStore
	index  *index.Index
	files  *filestore.Storage
	logger *logger_i.Logger
}

// New creates the process-wide knowledge base. It is initialized once at
// startup and threaded through as an explicit handle.
func New(files *filestore.Storage) *KnowledgeBase {
	return &KnowledgeBase{
		docs:   store.New(),
		index:  index.New(),
		files:  files,
		logger: logger_i.NewLogger("KnowledgeBase"),
	}
}

// IngestRequest describes an upload whose backing file has already been
// acquired in the file store.
type IngestRequest struct {
	DocumentID    string // optional: set when the document was pre-registered
	OwnerID       string
	FilePath      string
	FileName      string
	FileSizeBytes int64
	MediaType     kbmodel.MediaType
	Title         string
	Description   string
	Category      string
}

// Register inserts a placeholder record with status processing so the
// document id can be handed back before extraction runs. The record stays
// invisible to listing and search until processing commits.
func (kb *KnowledgeBase) Register(req IngestRequest) kbmodel.Document {
	now := time.Now()
	doc := &kbmodel.Document{
		ID:            req.DocumentID,
		OwnerID:       req.OwnerID,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		FileName:      req.FileName,
		FileSizeBytes: req.FileSizeBytes,
		MediaType:     req.MediaType,
		FilePath:      req.FilePath,
		Status:        kbmodel.StatusProcessing,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if doc.ID == "" {
		doc.ID = utils.GetNewUUID()
	}
	if doc.Title == "" {
		doc.Title = req.FileName
	}

	kb.mu.Lock()
	kb.docs.Put(doc)
	kb.mu.Unlock()
	return *doc
}

// Ingest runs the full pipeline: extract, chunk, index, commit. Extraction
// happens outside the lock so long PDF parses never block searches over
// already-indexed documents. On any failure nothing survives: no store
// entry, no index entries, and the backing file is released.
func (kb *KnowledgeBase) Ingest(ctx context.Context, req IngestRequest) (kbmodel.Document, error) {
	log := kb.logger.With("owner", req.OwnerID, "file", req.FileName)
	if trace, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		log = log.With("traceId", trace)
	}

	if !req.MediaType.IsSupported() {
		kb.discard(req)
		return kbmodel.Document{}, &kbmodel.UnsupportedMediaTypeError{MediaType: string(req.MediaType)}
	}

	start := time.Now()
	text, err := extract.Text(req.FilePath, req.MediaType)
	metrics.CaptureExtractionDuration(string(req.MediaType), time.Since(start))
	if err != nil {
		log.Error("extraction failed", "error", err)
		kb.discard(req)
		return kbmodel.Document{}, err
	}

	chunks := chunker.Chunk(text, config.ChunkWindowSize, config.ChunkOverlap)
	wordCount := len(strings.Fields(text))
	log.Debug("document processed", "words", wordCount, "chunks", len(chunks))

	kb.mu.Lock()
	doc, registered := kb.docs.Get(req.OwnerID, req.DocumentID)
	if !registered {
		now := time.Now()
		doc = &kbmodel.Document{
			ID:            req.DocumentID,
			OwnerID:       req.OwnerID,
			Title:         req.Title,
			Description:   req.Description,
			Category:      req.Category,
			FileName:      req.FileName,
			FileSizeBytes: req.FileSizeBytes,
			MediaType:     req.MediaType,
			FilePath:      req.FilePath,
			CreatedAt:     now,
		}
		if doc.ID == "" {
			doc.ID = utils.GetNewUUID()
		}
		if doc.Title == "" {
			doc.Title = req.FileName
		}
		kb.docs.Put(doc)
	}
	doc.ExtractedText = text
	doc.Chunks = chunks
	doc.WordCount = wordCount
	doc.Status = kbmodel.StatusProcessed
	doc.UpdatedAt = time.Now()
	kb.index.Add(doc)
	metrics.SetIndexTermCount(kb.index.TermCount())
	kb.mu.Unlock()

	metrics.IncrementDocumentsIndexed()
	log.Info("document indexed", "id", doc.ID)
	return *doc, nil
}

// discard rolls a failed ingestion back: the placeholder record (if any)
// and the backing file both go away.
func (kb *KnowledgeBase) discard(req IngestRequest) {
	if req.DocumentID != "" {
		kb.mu.Lock()
		kb.docs.Delete(req.OwnerID, req.DocumentID)
		kb.mu.Unlock()
	}
	if err := kb.files.Remove(req.FilePath); err != nil {
		kb.logger.Error("failed releasing backing file", "path", req.FilePath, "error", err)
	}
}

// Search runs a ranked query over the owner's processed documents.
func (kb *KnowledgeBase) Search(query, ownerID string, opts kbmodel.SearchOptions) ([]kbmodel.SearchResult, error) {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	metrics.IncrementSearches()
	return search.Run(query, ownerID, opts, kb.index, kb.docs)
}

// Get returns the full document record including extracted text and chunks.
func (kb *KnowledgeBase) Get(ownerID, documentID string) (kbmodel.Document, error) {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	doc, ok := kb.docs.Get(ownerID, documentID)
	if !ok {
		return kbmodel.Document{}, kbmodel.ErrNotFound
	}
	return *doc, nil
}

// List returns metadata summaries for the owner's processed documents.
func (kb *KnowledgeBase) List(ownerID string, opts kbmodel.ListOptions) []kbmodel.DocumentSummary {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	return kb.docs.List(ownerID, opts)
}

// Count reports how many processed documents the owner has, restricted to a
// category when one is given. Used for listing pagination.
func (kb *KnowledgeBase) Count(ownerID, category string) int {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	return kb.docs.Count(ownerID, category)
}

// Delete removes the document, all of its index entries and the backing
// file. Cross-owner ids report ErrNotFound exactly like unknown ids.
func (kb *KnowledgeBase) Delete(ownerID, documentID string) error {
	kb.mu.Lock()
	doc, ok := kb.docs.Delete(ownerID, documentID)
	if !ok {
		kb.mu.Unlock()
		return kbmodel.ErrNotFound
	}
	kb.index.Remove(documentID)
	metrics.SetIndexTermCount(kb.index.TermCount())
	kb.mu.Unlock()

	if err := kb.files.Remove(doc.FilePath); err != nil {
		kb.logger.Error("failed releasing backing file", "path", doc.FilePath, "error", err)
	}
	kb.logger.Info("document deleted", "id", documentID, "owner", ownerID)
	return nil
}

// UpdateMetadata patches the user-supplied metadata fields.
func (kb *KnowledgeBase) UpdateMetadata(ownerID, documentID string, patch kbmodel.MetadataPatch) (kbmodel.Document, error) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	doc, ok := kb.docs.Update(ownerID, documentID, patch)
	if !ok {
		return kbmodel.Document{}, kbmodel.ErrNotFound
	}
	return *doc, nil
}
