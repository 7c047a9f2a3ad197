package sqlite

import "time"

// KVRow is one row of the kv_store table.
type KVRow struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}
