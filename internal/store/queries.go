// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"time"
)

// Queries wraps a database handle with typed accessors.
type Queries struct {
	db DBTX
}

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// New returns a Queries bound to db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// CaseStudyRow is the persisted form of a case study.
type CaseStudyRow struct {
	ID        int64
	Slug      string
	Title     string
	Subtitle  string
	Status    string
	Timeline  string
	Impact    string
	Problem   string
	Solution  string
	Outcome   string
	MdxPath   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateCaseStudyParams holds the insertable fields of a case study.
type CreateCaseStudyParams struct {
	Slug      string
	Title     string
	Subtitle  string
	Status    string
	Timeline  string
	Impact    string
	Problem   string
	Solution  string
	Outcome   string
	MdxPath   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const createCaseStudy = `
INSERT INTO case_studies (slug, title, subtitle, status, timeline, impact, problem, solution, outcome, mdx_path, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, slug, title, subtitle, status, timeline, impact, problem, solution, outcome, mdx_path, created_at, updated_at
`

// CreateCaseStudy inserts a case study and returns the stored row.
func (q *Queries) CreateCaseStudy(ctx context.Context, arg CreateCaseStudyParams) (CaseStudyRow, error) {
	row := q.db.QueryRowContext(ctx, createCaseStudy,
		arg.Slug, arg.Title, arg.Subtitle, arg.Status, arg.Timeline, arg.Impact,
		arg.Problem, arg.Solution, arg.Outcome, arg.MdxPath, arg.CreatedAt, arg.UpdatedAt,
	)
	var cs CaseStudyRow
	err := row.Scan(&cs.ID, &cs.Slug, &cs.Title, &cs.Subtitle, &cs.Status, &cs.Timeline,
		&cs.Impact, &cs.Problem, &cs.Solution, &cs.Outcome, &cs.MdxPath, &cs.CreatedAt, &cs.UpdatedAt)
	return cs, err
}

const getCaseStudyBySlug = `
SELECT id, slug, title, subtitle, status, timeline, impact, problem, solution, outcome, mdx_path, created_at, updated_at
FROM case_studies WHERE slug = ?
`

// GetCaseStudyBySlug returns the case study with the given slug, or sql.ErrNoRows.
func (q *Queries) GetCaseStudyBySlug(ctx context.Context, slug string) (CaseStudyRow, error) {
	row := q.db.QueryRowContext(ctx, getCaseStudyBySlug, slug)
	var cs CaseStudyRow
	err := row.Scan(&cs.ID, &cs.Slug, &cs.Title, &cs.Subtitle, &cs.Status, &cs.Timeline,
		&cs.Impact, &cs.Problem, &cs.Solution, &cs.Outcome, &cs.MdxPath, &cs.CreatedAt, &cs.UpdatedAt)
	return cs, err
}

const listCaseStudies = `
SELECT id, slug, title, subtitle, status, timeline, impact, problem, solution, outcome, mdx_path, created_at, updated_at
FROM case_studies ORDER BY id
`

// ListCaseStudies returns all case studies in insertion order.
func (q *Queries) ListCaseStudies(ctx context.Context) ([]CaseStudyRow, error) {
	rows, err := q.db.QueryContext(ctx, listCaseStudies)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CaseStudyRow
	for rows.Next() {
		var cs CaseStudyRow
		if err := rows.Scan(&cs.ID, &cs.Slug, &cs.Title, &cs.Subtitle, &cs.Status, &cs.Timeline,
			&cs.Impact, &cs.Problem, &cs.Solution, &cs.Outcome, &cs.MdxPath, &cs.CreatedAt, &cs.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, cs)
	}
	return items, rows.Err()
}

const countCaseStudies = `SELECT COUNT(*) FROM case_studies`

// CountCaseStudies returns the number of stored case studies.
func (q *Queries) CountCaseStudies(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countCaseStudies).Scan(&n)
	return n, err
}

const deleteAllCaseStudies = `DELETE FROM case_studies`

// DeleteAllCaseStudies empties the catalog, used by forced reseeding.
func (q *Queries) DeleteAllCaseStudies(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllCaseStudies)
	return err
}

// CreateEventParams holds an application event log entry.
type CreateEventParams struct {
	Level     string
	Message   string
	Meta      string
	CreatedAt time.Time
}

const createEvent = `INSERT INTO events (level, message, meta, created_at) VALUES (?, ?, ?, ?)`

// CreateEvent appends a row to the event log.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	_, err := q.db.ExecContext(ctx, createEvent, arg.Level, arg.Message, arg.Meta, arg.CreatedAt)
	return err
}

const listRecentEvents = `
SELECT id, level, message, meta, created_at FROM events ORDER BY id DESC LIMIT ?
`

// EventRow is a persisted event log entry.
type EventRow struct {
	ID        int64
	Level     string
	Message   string
	Meta      string
	CreatedAt time.Time
}

// ListRecentEvents returns the newest limit entries from the event log.
func (q *Queries) ListRecentEvents(ctx context.Context, limit int64) ([]EventRow, error) {
	rows, err := q.db.QueryContext(ctx, listRecentEvents, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []EventRow
	for rows.Next() {
		var e EventRow
		if err := rows.Scan(&e.ID, &e.Level, &e.Message, &e.Meta, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
