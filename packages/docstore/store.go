package docstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/abdul-hamid-achik/shapematch/packages/db"
	"github.com/abdul-hamid-achik/shapematch/packages/matcher"
	"github.com/goccy/go-json"
)

const (
	IDField        = "_id"
	VersionField   = "__v"
	CreatedAtField = "createdAt"
	UpdatedAtField = "updatedAt"
)

// ErrNotFound is returned when no document has the requested identifier.
var ErrNotFound = errors.New("document not found")

var collectionName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Document is a stored document.
type Document struct {
	ID        matcher.ID
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
	Fields    map[string]any
}

// Plain implements matcher.Document.
func (d *Document) Plain() map[string]any {
	out := make(map[string]any, len(d.Fields)+4)
	for k, v := range d.Fields {
		out[k] = v
	}
	out[IDField] = d.ID
	out[VersionField] = d.Version
	out[CreatedAtField] = d.CreatedAt
	out[UpdatedAtField] = d.UpdatedAt
	return out
}

// Collection is a named set of documents.
type Collection struct {
	client *db.Client
	name   string
	now    func() time.Time
}

// Open returns the collection called name, creating its table if needed.
func Open(ctx context.Context, client *db.Client, name string) (*Collection, error) {
	if !collectionName.MatchString(name) {
		return nil, fmt.Errorf("invalid collection name %q", name)
	}
	c := &Collection{
		client: client,
		name:   name,
		now:    func() time.Time { return time.Now().UTC() },
	}
	_, err := client.Exec(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		version INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		body TEXT NOT NULL
	)`, c.name))
	if err != nil {
		return nil, fmt.Errorf("failed to create collection %s: %w", name, err)
	}
	return c, nil
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// Create stores a new document. An identifier in fields[IDField] is used
// when present, otherwise a new one is generated.
func (c *Collection) Create(ctx context.Context, fields map[string]any) (*Document, error) {
	id := matcher.NewID()
	if raw, ok := fields[IDField]; ok {
		s, _ := matcher.Canonical(raw)
		parsed, err := matcher.ParseID(s)
		if err != nil {
			return nil, err
		}
		id = parsed
	}

	now := c.now()
	doc := &Document{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		Fields:    stripReserved(fields),
	}
	body, err := json.Marshal(doc.Fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	_, err = c.client.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, version, created_at, updated_at, body) VALUES (?, ?, ?, ?, ?)`, c.name),
		doc.ID.String(), doc.Version, formatTime(now), formatTime(now), string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return doc, nil
}

// FindAll returns every document in insertion order.
func (c *Collection) FindAll(ctx context.Context) ([]*Document, error) {
	result, err := c.client.Query(ctx, fmt.Sprintf(`SELECT id, version, created_at, updated_at, body FROM %s ORDER BY rowid`, c.name))
	if err != nil {
		return nil, err
	}
	docs := make([]*Document, 0, len(result.Rows))
	for _, row := range result.Rows {
		doc, err := decodeRow(row)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// FindByID returns the document with the given identifier.
func (c *Collection) FindByID(ctx context.Context, id string) (*Document, error) {
	result, err := c.client.Query(ctx, fmt.Sprintf(`SELECT id, version, created_at, updated_at, body FROM %s WHERE id = ?`, c.name), id)
	if err != nil {
		return nil, err
	}
	if len(result.Rows) == 0 {
		return nil, fmt.Errorf("%s %s: %w", c.name, id, ErrNotFound)
	}
	return decodeRow(result.Rows[0])
}

// Update merges fields onto the stored document, increments its version and
// refreshes its update timestamp.
func (c *Collection) Update(ctx context.Context, id string, fields map[string]any) (*Document, error) {
	doc, err := c.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for k, v := range stripReserved(fields) {
		doc.Fields[k] = v
	}
	doc.Version++
	doc.UpdatedAt = c.now()

	body, err := json.Marshal(doc.Fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	_, err = c.client.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET version = ?, updated_at = ?, body = ? WHERE id = ?`, c.name),
		doc.Version, formatTime(doc.UpdatedAt), string(body), doc.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}
	return doc, nil
}

// Remove deletes the document with the given identifier.
func (c *Collection) Remove(ctx context.Context, id string) error {
	n, err := c.client.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, c.name), id)
	if err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", c.name, id, ErrNotFound)
	}
	return nil
}

// RemoveAll deletes every document of the collection.
func (c *Collection) RemoveAll(ctx context.Context) error {
	if _, err := c.client.Exec(ctx, fmt.Sprintf(`DELETE FROM %s`, c.name)); err != nil {
		return fmt.Errorf("failed to clear collection: %w", err)
	}
	return nil
}

func stripReserved(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		switch k {
		case IDField, VersionField, CreatedAtField, UpdatedAtField:
			continue
		}
		out[k] = v
	}
	return out
}

func decodeRow(row map[string]any) (*Document, error) {
	idStr, _ := row["id"].(string)
	id, err := matcher.ParseID(idStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt document id: %w", err)
	}
	version, _ := row["version"].(int64)
	createdAt, err := parseTime(row["created_at"])
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseTime(row["updated_at"])
	if err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	body, _ := row["body"].(string)
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", idStr, err)
	}
	return &Document{
		ID:        id,
		Version:   int(version),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		Fields:    fields,
	}, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		t, err := time.Parse(time.RFC3339Nano, x)
		if err != nil {
			return time.Time{}, fmt.Errorf("corrupt timestamp %q: %w", x, err)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("corrupt timestamp %v", v)
}
