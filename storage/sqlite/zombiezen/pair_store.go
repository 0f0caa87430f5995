package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sent "github.com/revelaction/entail/sentence"
	"github.com/revelaction/entail/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type PairStore struct {
	pool *sqlitex.Pool
}

var _ storage.PairRepository = (*PairStore)(nil)
var _ storage.LemmaFinder = (*PairStore)(nil)

func NewPairStore(pool *sqlitex.Pool) *PairStore {
	return &PairStore{pool: pool}
}

const pairColumns = "id, task, entailment, text, hypothesis"

func scanPair(stmt *sqlite.Stmt) (sent.Pair, error) {
	p := sent.Pair{
		Id:         stmt.ColumnText(0),
		Task:       stmt.ColumnText(1),
		Entailment: sent.Judgment(stmt.ColumnText(2)),
	}
	if err := json.Unmarshal([]byte(stmt.ColumnText(3)), &p.Text); err != nil {
		return p, fmt.Errorf("pair %s: text: %w", p.Id, err)
	}
	if err := json.Unmarshal([]byte(stmt.ColumnText(4)), &p.Hypothesis); err != nil {
		return p, fmt.Errorf("pair %s: hypothesis: %w", p.Id, err)
	}
	return p, nil
}

func (h *PairStore) List() (sent.Corpus, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	corpus := sent.Corpus{}
	err = sqlitex.Execute(conn, "SELECT "+pairColumns+" FROM pairs ORDER BY pk", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			p, err := scanPair(stmt)
			if err != nil {
				return err
			}
			corpus = append(corpus, p)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return corpus, nil
}

func (h *PairStore) Read(id string) (sent.Pair, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return sent.Pair{}, err
	}
	defer h.pool.Put(conn)

	var p sent.Pair
	found := false

	err = sqlitex.Execute(conn, "SELECT "+pairColumns+" FROM pairs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			var err error
			p, err = scanPair(stmt)
			return err
		},
	})
	if err != nil {
		return sent.Pair{}, err
	}
	if !found {
		return sent.Pair{}, fmt.Errorf("pair %q: %w", id, storage.ErrNotFound)
	}

	return p, nil
}

// Write inserts the pair and indexes its lemmas. Writing an existing id
// fails.
func (h *PairStore) Write(p sent.Pair) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	text, err := json.Marshal(p.Text)
	if err != nil {
		return err
	}
	hypothesis, err := json.Marshal(p.Hypothesis)
	if err != nil {
		return err
	}

	err = sqlitex.Execute(conn, "INSERT INTO pairs ("+pairColumns+") VALUES (?, ?, ?, ?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{p.Id, p.Task, string(p.Entailment), string(text), string(hypothesis)},
	})
	if err != nil {
		return fmt.Errorf("failed to insert pair %s: %w", p.Id, err)
	}
	pairPK := conn.LastInsertRowID()

	// Extract unique lemmas
	uniqueLemmas := make(map[string]bool)
	p.Lemmas(func(lemma string) {
		uniqueLemmas[lemma] = true
	})

	for lemma := range uniqueLemmas {
		err = sqlitex.Execute(conn, "INSERT INTO pair_lemmas (lemma, pair_pk) VALUES (?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{lemma, pairPK},
		})
		if err != nil {
			return fmt.Errorf("failed to insert lemma: %w", err)
		}
	}

	return nil
}

// FindByLemmas returns the ids of the pairs containing ALL given lemmas,
// in corpus order.
func (h *PairStore) FindByLemmas(lemmas []string) ([]string, error) {
	if len(lemmas) == 0 {
		return nil, nil
	}

	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	// INTERSECT keeps the pairs that contain ALL lemmas, each once.
	var queryBuilder strings.Builder
	var args []interface{}

	queryBuilder.WriteString("SELECT id FROM pairs WHERE pk IN (")
	for i, lemma := range lemmas {
		if i > 0 {
			queryBuilder.WriteString(" INTERSECT ")
		}
		queryBuilder.WriteString("SELECT pair_pk FROM pair_lemmas WHERE lemma = ?")
		args = append(args, lemma)
	}
	queryBuilder.WriteString(") ORDER BY pk")

	var ids []string
	err = sqlitex.Execute(conn, queryBuilder.String(), &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			ids = append(ids, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}
