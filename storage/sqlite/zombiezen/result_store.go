package zombiezen

import (
	"context"
	"fmt"
	"time"

	"github.com/revelaction/entail/score"
	sent "github.com/revelaction/entail/sentence"
	"github.com/revelaction/entail/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// ResultStore persists pair scores.
type ResultStore struct {
	pool *sqlitex.Pool
}

var _ storage.ResultWriter = (*ResultStore)(nil)
var _ storage.ResultReader = (*ResultStore)(nil)

func NewResultStore(pool *sqlitex.Pool) *ResultStore {
	return &ResultStore{pool: pool}
}

const resultColumns = "pair_id, task, gold, general, weighted, directional, baseline, normalized, verdict"

func (h *ResultStore) WriteResult(r score.Result) error {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	var weighted interface{}
	if r.Weighted != nil {
		weighted = *r.Weighted
	}

	err = sqlitex.Execute(conn, "INSERT OR REPLACE INTO results ("+resultColumns+", scored_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{
			r.PairId, r.Task, string(r.Gold),
			r.General, weighted, r.Directional, r.Baseline, r.Normalized,
			string(r.Verdict), time.Now().Unix(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write result of pair %s: %w", r.PairId, err)
	}

	return nil
}

func (h *ResultStore) Results() ([]score.Result, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var results []score.Result
	err = sqlitex.Execute(conn, "SELECT "+resultColumns+" FROM results ORDER BY rowid", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			r := score.Result{
				PairId:      stmt.ColumnText(0),
				Task:        stmt.ColumnText(1),
				Gold:        sent.Judgment(stmt.ColumnText(2)),
				General:     stmt.ColumnFloat(3),
				Directional: stmt.ColumnFloat(5),
				Baseline:    stmt.ColumnFloat(6),
				Normalized:  stmt.ColumnFloat(7),
				Verdict:     score.Verdict(stmt.ColumnText(8)),
			}
			if stmt.ColumnType(4) != sqlite.TypeNull {
				w := stmt.ColumnFloat(4)
				r.Weighted = &w
			}
			results = append(results, r)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}
