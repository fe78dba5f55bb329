package pgx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"lexdoc/pkg/common"
	"lexdoc/pkg/store"
)

const documentColumns = `id, title, content, summary, category, document_number, issuing_agency, issue_date, reference_numbers, date_created`

const defaultListLimit = 500

// CreateDocument inserts a document, generating a public ID when none is set.
func (s *DocumentDBStorage) CreateDocument(ctx context.Context, doc common.Document) (common.Document, error) {
	if doc.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return common.Document{}, err
		}
		doc.ID = id
	}
	if doc.DateCreated.IsZero() {
		doc.DateCreated = time.Now().UTC()
	}
	doc.References = store.DedupeStrings(doc.References)

	_, err := s.conn.Exec(ctx, `
		INSERT INTO documents (id, title, content, summary, category, document_number, issuing_agency, issue_date, reference_numbers, date_created)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		doc.ID, doc.Title, doc.Content, doc.Summary, doc.Category,
		doc.DocumentNumber, doc.IssuingAgency, nullableTime(doc.IssueDate),
		doc.References, doc.DateCreated,
	)
	if err != nil {
		return common.Document{}, fmt.Errorf("insert document: %w", err)
	}
	return doc, nil
}

func (s *DocumentDBStorage) GetDocument(ctx context.Context, id string) (common.Document, error) {
	row := s.conn.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.Document{}, store.ErrNotFound
		}
		return common.Document{}, err
	}
	return doc, nil
}

func (s *DocumentDBStorage) ListDocuments(ctx context.Context, filter store.DocumentFilter) ([]common.Document, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `SELECT ` + documentColumns + ` FROM documents WHERE 1=1`
	args := []any{}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if !filter.Since.IsZero() {
		args = append(args, filter.Since)
		query += fmt.Sprintf(" AND issue_date >= $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY date_created DESC LIMIT $%d", len(args))

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []common.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// DeleteDocument removes a document; its chunks go with it via the foreign
// key cascade.
func (s *DocumentDBStorage) DeleteDocument(ctx context.Context, id string) error {
	tag, err := s.conn.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanDocument(row pgx.Row) (common.Document, error) {
	var doc common.Document
	var summary, category, documentNumber, issuingAgency *string
	var issueDate *time.Time
	var references []string

	err := row.Scan(
		&doc.ID, &doc.Title, &doc.Content, &summary, &category,
		&documentNumber, &issuingAgency, &issueDate, &references, &doc.DateCreated,
	)
	if err != nil {
		return common.Document{}, err
	}

	doc.Summary = deref(summary)
	doc.Category = deref(category)
	doc.DocumentNumber = deref(documentNumber)
	doc.IssuingAgency = deref(issuingAgency)
	doc.References = references
	if issueDate != nil {
		doc.IssueDate = *issueDate
	}
	return doc, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
