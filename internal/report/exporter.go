package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

var ErrNotFound = errors.New("report not found")

// Document is the envelope every exported result is stored in.
type Document struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload"`
}

// Exporter writes finished simulation results as JSON documents under a base URL.
type Exporter struct {
	baseURL string
	fs      afs.Service
	mu      sync.Mutex
}

func NewExporter(fs afs.Service, baseURL string) (*Exporter, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("report base URL cannot be empty")
	}
	return &Exporter{baseURL: baseURL, fs: fs}, nil
}

// Export stores payload and returns the URL of the new document.
func (e *Exporter) Export(ctx context.Context, kind string, payload interface{}) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s report: %w", kind, err)
	}
	doc := Document{
		ID:        uuid.New().String(),
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
		Payload:   data,
	}
	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report document: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	URL := e.documentURL(doc.ID)
	if err := e.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(content)); err != nil {
		return "", fmt.Errorf("failed to save report to %s: %w", URL, err)
	}
	return URL, nil
}

// Load reads the document with the given id. Ids that were never issued by Export are
// reported as ErrNotFound without touching storage.
func (e *Exporter) Load(ctx context.Context, id string) (*Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	URL := e.documentURL(id)
	exists, err := e.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check if report exists: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	data, err := e.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &doc, nil
}

func (e *Exporter) documentURL(id string) string {
	return url.Join(e.baseURL, id+".json")
}
