// Package pg implements the row feed contracts over Postgres. Rows are
// stored exactly as they travel on the wire (ordered string cells) so the
// rest of the pipeline cannot tell this backend from the spreadsheet one.
// It exists for deployments without Sheets credentials and as the
// integration-test backend.
package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jimmeey/expiry-dashboard/internal/domain"
	"github.com/jimmeey/expiry-dashboard/internal/rowfeed"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn, and
// pgx.Tx. Accepting this instead of the pool directly lets integration
// tests pass a transaction that is rolled back after each test, giving free
// per-test isolation without manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store is the Postgres implementation of rowfeed.Store.
type Store struct {
	db db
}

// NewStore constructs a Store backed by the provided connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx.
func NewStore(db db) *Store {
	return &Store{db: db}
}

var _ rowfeed.Store = (*Store)(nil)

// MemberRows returns the member feed rows in position order, header
// included. A feed never seeded yields an empty result.
func (s *Store) MemberRows(ctx context.Context) ([][]string, error) {
	rows, err := s.selectCells(ctx, "member_rows")
	if err != nil {
		return nil, fmt.Errorf("pg.Store.MemberRows: %w: %w", domain.ErrFetch, err)
	}
	return rows, nil
}

// AnnotationRows returns the annotation rows in position order. An empty
// table is the "store does not exist yet" case and comes back header-only.
func (s *Store) AnnotationRows(ctx context.Context) ([][]string, error) {
	rows, err := s.selectCells(ctx, "annotation_rows")
	if err != nil {
		return nil, fmt.Errorf("pg.Store.AnnotationRows: %w: %w", domain.ErrFetch, err)
	}
	if len(rows) == 0 {
		return [][]string{rowfeed.AnnotationHeader()}, nil
	}
	return rows, nil
}

// WriteAnnotationRows atomically replaces the full annotation store.
// Whole-store replacement mirrors the spreadsheet backend's values PUT, so
// the upsert-by-uniqueId semantics live above both backends, not in SQL.
func (s *Store) WriteAnnotationRows(ctx context.Context, rows [][]string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pg.Store.WriteAnnotationRows: %w: %w", domain.ErrWrite, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx, `DELETE FROM annotation_rows`); err != nil {
		return fmt.Errorf("pg.Store.WriteAnnotationRows: clear: %w: %w", domain.ErrWrite, err)
	}

	const q = `INSERT INTO annotation_rows (position, cells) VALUES (@position, @cells)`
	for i, row := range rows {
		args := pgx.NamedArgs{"position": i, "cells": row}
		if _, err := tx.Exec(ctx, q, args); err != nil {
			return fmt.Errorf("pg.Store.WriteAnnotationRows: insert row %d: %w: %w", i, domain.ErrWrite, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("pg.Store.WriteAnnotationRows: commit: %w: %w", domain.ErrWrite, err)
	}
	return nil
}

// SeedMemberRows replaces the member feed contents. Not part of the
// rowfeed contracts (the pipeline treats the member feed as read-only)
// but needed to load data into this backend and by integration tests.
func (s *Store) SeedMemberRows(ctx context.Context, rows [][]string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pg.Store.SeedMemberRows: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM member_rows`); err != nil {
		return fmt.Errorf("pg.Store.SeedMemberRows: clear: %w", err)
	}

	const q = `INSERT INTO member_rows (position, cells) VALUES (@position, @cells)`
	for i, row := range rows {
		if _, err := tx.Exec(ctx, q, pgx.NamedArgs{"position": i, "cells": row}); err != nil {
			return fmt.Errorf("pg.Store.SeedMemberRows: insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("pg.Store.SeedMemberRows: commit: %w", err)
	}
	return nil
}

// selectCells reads all rows of one feed table ordered by position.
func (s *Store) selectCells(ctx context.Context, table string) ([][]string, error) {
	rows, err := s.db.Query(ctx,
		`SELECT cells FROM `+table+` ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := [][]string{}
	for rows.Next() {
		var cells []string
		if err := rows.Scan(&cells); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}
