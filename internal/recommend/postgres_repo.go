package recommend

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) CreateRun(ctx context.Context, run *Run) (string, error) {
	const sql = `
		INSERT INTO fetch_runs (genre, status, started_at)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id string
	err := r.db.QueryRow(ctx, sql, run.Genre, run.Status, run.StartedAt).Scan(&id)
	return id, err
}

func (r *PostgresRepo) FinishRun(ctx context.Context, run *Run) error {
	const sql = `
		UPDATE fetch_runs SET
			finished_at = $1,
			status = $2,
			pages = $3,
			books = $4,
			error = $5
		WHERE id = $6`

	_, err := r.db.Exec(ctx, sql, run.FinishedAt, run.Status, run.Pages, run.Books, run.Error, run.ID)
	return err
}

func (r *PostgresRepo) ListRecent(ctx context.Context, limit int) ([]Run, error) {
	const sql = `
		SELECT id, genre, status, pages, books, error, started_at, finished_at
		FROM fetch_runs
		ORDER BY started_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, sql, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Run, error) {
		var run Run
		err := row.Scan(&run.ID, &run.Genre, &run.Status, &run.Pages, &run.Books, &run.Error, &run.StartedAt, &run.FinishedAt)
		return run, err
	})
}
