package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"hellomart-dashboard/internal/models"
)

const (
	chunkSize  = 10000
	maxWorkers = 10
)

// LoadResult is the outcome of one load-and-normalize pass.
type LoadResult struct {
	Table *Table
	Stats CoercionStats
}

// LoadCSV reads a delimited file and normalizes it into the canonical
// table. Header mapping and row coercion follow the Schema Normalizer
// contract: a missing required column fails the load, a bad value never
// does. Rows are coerced in parallel chunks, each worker writing a
// disjoint index range of the output slice.
func LoadCSV(ctx context.Context, path string) (*LoadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	return Load(ctx, file)
}

// Load normalizes delimited rows from r into a canonical Table.
func Load(ctx context.Context, r io.Reader) (*LoadResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols, err := MapColumns(headers)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed lines are skipped, matching the coercion policy
			// of defaulting instead of aborting mid-load.
			continue
		}
		rows = append(rows, row)
	}

	txs := make([]models.Transaction, len(rows))
	var (
		mu    sync.Mutex
		stats CoercionStats
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	for start := 0; start < len(rows); start += chunkSize {
		end := min(start+chunkSize, len(rows))
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			var local CoercionStats
			for i := start; i < end; i++ {
				txs[i] = NormalizeRow(cols, rows[i], &local)
			}

			mu.Lock()
			stats.add(local)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &LoadResult{Table: NewTable(txs), Stats: stats}, nil
}
