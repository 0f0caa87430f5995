package zombiezen

import (
	"context"
	"fmt"

	"github.com/revelaction/entail/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// FrequencyStore persists the lemma counts of a corpus.
type FrequencyStore struct {
	pool *sqlitex.Pool
}

var _ storage.FrequencyReader = (*FrequencyStore)(nil)
var _ storage.FrequencyWriter = (*FrequencyStore)(nil)

func NewFrequencyStore(pool *sqlitex.Pool) *FrequencyStore {
	return &FrequencyStore{pool: pool}
}

func (h *FrequencyStore) Counts() (map[string]int, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	counts := map[string]int{}
	err = sqlitex.Execute(conn, "SELECT lemma, count FROM lemma_counts", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			counts[stmt.ColumnText(0)] = stmt.ColumnInt(1)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	if len(counts) == 0 {
		return nil, fmt.Errorf("lemma counts: %w", storage.ErrNotFound)
	}

	return counts, nil
}

// WriteCounts replaces the stored counts in a single transaction.
func (h *FrequencyStore) WriteCounts(counts map[string]int) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	if err = sqlitex.Execute(conn, "DELETE FROM lemma_counts", nil); err != nil {
		return fmt.Errorf("failed to clear lemma counts: %w", err)
	}

	for lemma, n := range counts {
		err = sqlitex.Execute(conn, "INSERT INTO lemma_counts (lemma, count) VALUES (?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{lemma, n},
		})
		if err != nil {
			return fmt.Errorf("failed to insert count of %q: %w", lemma, err)
		}
	}

	return nil
}
