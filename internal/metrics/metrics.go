// Package metrics analyzes training-metric CSV logs with DuckDB.
// A log has one row per logged step with the columns
// step, epoch, train_loss, val_score, lr.
package metrics

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// Analyzer runs queries against metric logs through an in-memory
// DuckDB instance; the CSV files stay on disk.
type Analyzer struct {
	db *sql.DB
}

// NewAnalyzer opens an in-memory DuckDB instance.
func NewAnalyzer(ctx context.Context) (*Analyzer, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}
	return &Analyzer{db: db}, nil
}

// Close releases the DuckDB instance.
func (a *Analyzer) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Summary aggregates one metrics log.
type Summary struct {
	Rows      int
	Epochs    int
	BestScore float64
	BestStep  int
	FinalLoss float64
	FinalLR   float64
}

// Summarize computes the run summary for a metrics CSV.
func (a *Analyzer) Summarize(ctx context.Context, csvPath string) (*Summary, error) {
	s := &Summary{}

	err := a.db.QueryRowContext(ctx, `
		WITH m AS (SELECT * FROM read_csv_auto(?))
		SELECT
			count(*),
			coalesce(max(epoch), 0),
			coalesce(max(val_score), 0),
			coalesce(arg_max(step, val_score), 0),
			coalesce(arg_max(train_loss, step), 0),
			coalesce(arg_max(lr, step), 0)
		FROM m`, csvPath,
	).Scan(&s.Rows, &s.Epochs, &s.BestScore, &s.BestStep, &s.FinalLoss, &s.FinalLR)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize %s: %w", csvPath, err)
	}

	return s, nil
}

// Point is one logged value of a metric.
type Point struct {
	Step  int
	Value float64
}

// Curve returns the per-step values of one metric column.
// The column name is checked against the known schema before being
// interpolated into the query.
func (a *Analyzer) Curve(ctx context.Context, csvPath, metric string) ([]Point, error) {
	switch metric {
	case "train_loss", "val_score", "lr", "epoch":
	default:
		return nil, fmt.Errorf("unknown metric %q (known: train_loss, val_score, lr, epoch)", metric)
	}

	rows, err := a.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT step, %s FROM read_csv_auto(?) WHERE %s IS NOT NULL ORDER BY step`, metric, metric,
	), csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curve from %s: %w", csvPath, err)
	}
	defer rows.Close()

	var points []Point
	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.Step, &p.Value); err != nil {
			return nil, fmt.Errorf("failed to scan metric row: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
