package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const documentsTable = "documents"

// Document is one stored JSON body.
type Document struct {
	Collection string
	Key        string
	SortKey    string
	Body       []byte
	UpdatedAt  time.Time
}

// QueryOpts configures document queries with filtering and pagination.
type QueryOpts struct {
	Field string // top-level JSON field to filter on (empty = no filter)
	Value any    // value Field must equal
	Limit int    // max results (0 = unlimited)
	Desc  bool   // newest sort key first
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// Get returns the body of a document, or ErrNotFound.
func (s *Store) Get(ctx context.Context, collection, key string) ([]byte, error) {
	b := builder()
	query, args := b.Select("body").
		From(b.Table(documentsTable)).
		Where(entsql.And(
			entsql.EQ("collection", collection),
			entsql.EQ("doc_key", key),
		)).
		Limit(1).
		Query()

	rows := &entsql.Rows{}
	if err := s.conn.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get %s/%s: %w", collection, key, err)
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, key, ErrNotFound)
	}
	var body string
	if err := rows.Scan(&body); err != nil {
		return nil, fmt.Errorf("scan %s/%s: %w", collection, key, err)
	}
	return []byte(body), nil
}

// Put inserts or replaces a document.
func (s *Store) Put(ctx context.Context, doc Document) error {
	updated := doc.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	query, args := builder().Insert(documentsTable).
		Columns("collection", "doc_key", "sort_key", "body", "updated_at").
		Values(doc.Collection, doc.Key, doc.SortKey, string(doc.Body), updated.UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("collection", "doc_key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := s.conn.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("put %s/%s: %w", doc.Collection, doc.Key, err)
	}
	return nil
}

// Delete removes a document. Deleting a missing document is not an error.
func (s *Store) Delete(ctx context.Context, collection, key string) error {
	query, args := builder().Delete(documentsTable).
		Where(entsql.And(
			entsql.EQ("collection", collection),
			entsql.EQ("doc_key", key),
		)).
		Query()

	if err := s.conn.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, key, err)
	}
	return nil
}

// DeleteCollection removes every document of a collection.
func (s *Store) DeleteCollection(ctx context.Context, collection string) error {
	query, args := builder().Delete(documentsTable).
		Where(entsql.EQ("collection", collection)).
		Query()

	if err := s.conn.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete collection %s: %w", collection, err)
	}
	return nil
}

// Query lists the documents of a collection ordered by sort key.
func (s *Store) Query(ctx context.Context, collection string, opts QueryOpts) ([]Document, error) {
	b := builder()
	preds := []*entsql.Predicate{entsql.EQ("collection", collection)}
	if opts.Field != "" {
		preds = append(preds, entsql.ExprP("json_extract(body, ?) = ?", "$."+opts.Field, opts.Value))
	}

	order := entsql.Asc("sort_key")
	if opts.Desc {
		order = entsql.Desc("sort_key")
	}
	sel := b.Select("collection", "doc_key", "sort_key", "body", "updated_at").
		From(b.Table(documentsTable)).
		Where(entsql.And(preds...)).
		OrderBy(order)
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows := &entsql.Rows{}
	if err := s.conn.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var (
			d       Document
			body    string
			updated int64
		)
		if err := rows.Scan(&d.Collection, &d.Key, &d.SortKey, &body, &updated); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		d.Body = []byte(body)
		d.UpdatedAt = time.UnixMilli(updated)
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	return docs, nil
}

// Count returns the number of documents in a collection, optionally filtered
// by opts.Field.
func (s *Store) Count(ctx context.Context, collection string, opts QueryOpts) (int, error) {
	b := builder()
	preds := []*entsql.Predicate{entsql.EQ("collection", collection)}
	if opts.Field != "" {
		preds = append(preds, entsql.ExprP("json_extract(body, ?) = ?", "$."+opts.Field, opts.Value))
	}
	query, args := b.Select(entsql.Count("*")).
		From(b.Table(documentsTable)).
		Where(entsql.And(preds...)).
		Query()

	rows := &entsql.Rows{}
	if err := s.conn.Query(ctx, query, args, rows); err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	defer rows.Close()

	n, err := entsql.ScanInt(rows)
	if err != nil {
		return 0, fmt.Errorf("scan count %s: %w", collection, err)
	}
	return n, nil
}
