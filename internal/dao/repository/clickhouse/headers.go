package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"
)

const headerColumns = `
	hash,
	number,
	epoch,
	dao_c,
	dao_ar,
	dao_s,
	dao_u,
	timestamp`

// HeaderByHash returns the stored header with the given hash.
func (r *Repository) HeaderByHash(ctx context.Context, hash common.Hash) (model.Header, bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("header_by_hash", r.network, err, start)
	}()

	const query = `
SELECT` + headerColumns + `
FROM dao_headers
WHERE network = ? AND hash = ?
ORDER BY updated_at DESC
LIMIT 1`

	rows, err := r.conn.Query(ctx, query, string(r.network), hash.Hex())
	if err != nil {
		return model.Header{}, false, fmt.Errorf("query header by hash: %w", err)
	}
	header, found, err := scanHeader(rows)
	if err != nil {
		return model.Header{}, false, fmt.Errorf("read header by hash: %w", err)
	}
	return header, found, nil
}

// HeaderByNumber returns the most recently stored header at number.
func (r *Repository) HeaderByNumber(ctx context.Context, number uint64) (model.Header, bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("header_by_number", r.network, err, start)
	}()

	const query = `
SELECT` + headerColumns + `
FROM dao_headers
WHERE network = ? AND number = ?
ORDER BY updated_at DESC
LIMIT 1`

	rows, err := r.conn.Query(ctx, query, string(r.network), number)
	if err != nil {
		return model.Header{}, false, fmt.Errorf("query header by number: %w", err)
	}
	header, found, err := scanHeader(rows)
	if err != nil {
		return model.Header{}, false, fmt.Errorf("read header by number: %w", err)
	}
	return header, found, nil
}

// scanHeader reads at most one header row and closes rows.
func scanHeader(rows driver.Rows) (header model.Header, found bool, err error) {
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.Header{}, false, fmt.Errorf("iterate header: %w", err)
		}
		return model.Header{}, false, nil
	}

	var (
		hash  string
		epoch uint64
	)
	if err = rows.Scan(
		&hash,
		&header.Number,
		&epoch,
		&header.Dao.C,
		&header.Dao.AR,
		&header.Dao.S,
		&header.Dao.U,
		&header.Timestamp,
	); err != nil {
		return model.Header{}, false, fmt.Errorf("scan header: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.Header{}, false, fmt.Errorf("iterate header: %w", err)
	}

	header.Hash = common.HexToHash(hash)
	header.Epoch = model.ParseEpoch(epoch)
	header.Timestamp = header.Timestamp.UTC()
	return header, true, nil
}

// InsertHeaders stores header rows. Rows for an existing hash replace it on merge.
func (r *Repository) InsertHeaders(ctx context.Context, headers []model.Header) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_headers", r.network, err, start)
	}()

	if len(headers) == 0 {
		return nil
	}

	const query = `
INSERT INTO dao_headers (
	network,
	hash,
	number,
	epoch,
	dao_c,
	dao_ar,
	dao_s,
	dao_u,
	timestamp
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare headers batch: %w", err)
	}

	for _, header := range headers {
		if err = batch.Append(
			string(r.network),
			header.Hash.Hex(),
			header.Number,
			header.Epoch.Packed(),
			header.Dao.C,
			header.Dao.AR,
			header.Dao.S,
			header.Dao.U,
			header.Timestamp,
		); err != nil {
			return fmt.Errorf("append header %s: %w", header.Hash.Hex(), err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert headers: %w", err)
	}
	return nil
}
