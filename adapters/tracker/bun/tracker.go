// Package trackerbun stores export run progress in a Bun-backed database.
package trackerbun

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-dataset/dataset"
	"github.com/goliatone/go-dataset/sqlexport"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Tracker is a sqlexport.RunTracker persisted through Bun.
type Tracker struct {
	DB          *bun.DB
	Now         func() time.Time
	IDGenerator func() string
}

// NewTracker creates a Bun-backed run tracker.
func NewTracker(db *bun.DB) *Tracker {
	return &Tracker{DB: db, Now: time.Now, IDGenerator: uuid.NewString}
}

// CreateTable creates the run table when it does not exist.
func (t *Tracker) CreateTable(ctx context.Context) error {
	if t == nil || t.DB == nil {
		return dataset.NewError(dataset.KindNotImpl, "tracker database not configured", nil)
	}
	_, err := t.DB.NewCreateTable().Model((*runModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

// Start creates a new run record.
func (t *Tracker) Start(ctx context.Context, record sqlexport.RunRecord) (string, error) {
	if t == nil || t.DB == nil {
		return "", dataset.NewError(dataset.KindNotImpl, "tracker database not configured", nil)
	}
	if record.ID == "" {
		record.ID = t.nextID()
	}
	if record.State == "" {
		record.State = sqlexport.StateQueued
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = t.now()
	}

	model := modelFromRecord(record)
	if _, err := t.DB.NewInsert().Model(&model).Exec(ctx); err != nil {
		return "", err
	}
	return record.ID, nil
}

// Advance adds rows to a run and moves queued runs to running.
func (t *Tracker) Advance(ctx context.Context, id string, rows int64) error {
	if t == nil || t.DB == nil {
		return dataset.NewError(dataset.KindNotImpl, "tracker database not configured", nil)
	}
	if id == "" {
		return dataset.NewError(dataset.KindValidation, "run ID is required", nil)
	}

	res, err := t.DB.NewUpdate().Model((*runModel)(nil)).
		Set("rows = rows + ?", rows).
		Set("state = CASE WHEN state = ? THEN ? ELSE state END", sqlexport.StateQueued, sqlexport.StateRunning).
		Set("started_at = COALESCE(started_at, ?)", t.now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	return t.checkAffected(res, id)
}

// Complete marks the run as completed with a final row count.
func (t *Tracker) Complete(ctx context.Context, id string, rows int64) error {
	if t == nil || t.DB == nil {
		return dataset.NewError(dataset.KindNotImpl, "tracker database not configured", nil)
	}
	if id == "" {
		return dataset.NewError(dataset.KindValidation, "run ID is required", nil)
	}

	res, err := t.DB.NewUpdate().Model((*runModel)(nil)).
		Set("state = ?", sqlexport.StateCompleted).
		Set("rows = ?", rows).
		Set("completed_at = COALESCE(completed_at, ?)", t.now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	return t.checkAffected(res, id)
}

// Fail marks the run as failed.
func (t *Tracker) Fail(ctx context.Context, id string, cause error) error {
	_ = cause
	if t == nil || t.DB == nil {
		return dataset.NewError(dataset.KindNotImpl, "tracker database not configured", nil)
	}
	if id == "" {
		return dataset.NewError(dataset.KindValidation, "run ID is required", nil)
	}

	res, err := t.DB.NewUpdate().Model((*runModel)(nil)).
		Set("state = ?", sqlexport.StateFailed).
		Set("completed_at = COALESCE(completed_at, ?)", t.now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	return t.checkAffected(res, id)
}

// Status returns a record by ID.
func (t *Tracker) Status(ctx context.Context, id string) (sqlexport.RunRecord, error) {
	if t == nil || t.DB == nil {
		return sqlexport.RunRecord{}, dataset.NewError(dataset.KindNotImpl, "tracker database not configured", nil)
	}
	if id == "" {
		return sqlexport.RunRecord{}, dataset.NewError(dataset.KindValidation, "run ID is required", nil)
	}

	model := new(runModel)
	err := t.DB.NewSelect().Model(model).Where("id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sqlexport.RunRecord{}, dataset.NewError(dataset.KindNotFound, fmt.Sprintf("run %q not found", id), nil)
		}
		return sqlexport.RunRecord{}, err
	}
	return model.toRecord(), nil
}

// List returns records matching a filter, newest first.
func (t *Tracker) List(ctx context.Context, filter sqlexport.RunFilter) ([]sqlexport.RunRecord, error) {
	if t == nil || t.DB == nil {
		return nil, dataset.NewError(dataset.KindNotImpl, "tracker database not configured", nil)
	}

	models := make([]runModel, 0)
	query := t.DB.NewSelect().Model(&models)
	if filter.Table != "" {
		query = query.Where("table_name = ?", filter.Table)
	}
	if filter.State != "" {
		query = query.Where("state = ?", filter.State)
	}
	if !filter.Since.IsZero() {
		query = query.Where("created_at >= ?", filter.Since)
	}
	if !filter.Until.IsZero() {
		query = query.Where("created_at <= ?", filter.Until)
	}
	if err := query.Order("created_at DESC").Scan(ctx); err != nil {
		return nil, err
	}

	records := make([]sqlexport.RunRecord, 0, len(models))
	for _, model := range models {
		records = append(records, model.toRecord())
	}
	return records, nil
}

// Delete removes a record from the tracker.
func (t *Tracker) Delete(ctx context.Context, id string) error {
	if t == nil || t.DB == nil {
		return dataset.NewError(dataset.KindNotImpl, "tracker database not configured", nil)
	}
	if id == "" {
		return dataset.NewError(dataset.KindValidation, "run ID is required", nil)
	}

	res, err := t.DB.NewDelete().Model((*runModel)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	return t.checkAffected(res, id)
}

type runModel struct {
	bun.BaseModel `bun:"table:export_runs,alias:export_runs"`

	ID          string    `bun:",pk"`
	TableName   string    `bun:"table_name,notnull"`
	Dialect     string    `bun:"dialect"`
	State       string    `bun:"state,notnull"`
	Rows        int64     `bun:"rows"`
	CreatedAt   time.Time `bun:"created_at"`
	StartedAt   time.Time `bun:"started_at,nullzero"`
	CompletedAt time.Time `bun:"completed_at,nullzero"`
}

func modelFromRecord(record sqlexport.RunRecord) runModel {
	return runModel{
		ID:          record.ID,
		TableName:   record.Table,
		Dialect:     record.Dialect,
		State:       string(record.State),
		Rows:        record.Rows,
		CreatedAt:   record.CreatedAt,
		StartedAt:   record.StartedAt,
		CompletedAt: record.CompletedAt,
	}
}

func (m runModel) toRecord() sqlexport.RunRecord {
	return sqlexport.RunRecord{
		ID:          m.ID,
		Table:       m.TableName,
		Dialect:     m.Dialect,
		State:       sqlexport.RunState(m.State),
		Rows:        m.Rows,
		CreatedAt:   m.CreatedAt,
		StartedAt:   m.StartedAt,
		CompletedAt: m.CompletedAt,
	}
}

func (t *Tracker) checkAffected(res sql.Result, id string) error {
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return dataset.NewError(dataset.KindNotFound, fmt.Sprintf("run %q not found", id), nil)
	}
	return nil
}

func (t *Tracker) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func (t *Tracker) nextID() string {
	if t.IDGenerator != nil {
		return t.IDGenerator()
	}
	return uuid.NewString()
}
