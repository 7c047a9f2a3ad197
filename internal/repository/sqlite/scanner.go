package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanKVRow scans a single key-value row
func ScanKVRow(scanner Scanner) (*KVRow, error) {
	row := &KVRow{}
	var value, updatedAt string

	if err := scanner.Scan(&row.Key, &value, &updatedAt); err != nil {
		return nil, err
	}

	row.Value = []byte(value)
	if updatedAt != "" {
		t, err := ParseTimeFromDB(updatedAt)
		if err != nil {
			return nil, err
		}
		row.UpdatedAt = t
	}

	return row, nil
}

// ScanKVRows scans multiple key-value rows
func ScanKVRows(rows Rows) ([]*KVRow, error) {
	var result []*KVRow
	for rows.Next() {
		row, err := ScanKVRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
