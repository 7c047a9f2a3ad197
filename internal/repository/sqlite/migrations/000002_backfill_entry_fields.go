package migrations

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"workclock/internal/clock"
)

func init() {
	RegisterGoMigration(2, Up_000002_backfill_entry_fields, nil)
}

const entryKeyPrefix = "time_entry_"

// Up_000002_backfill_entry_fields fills in fields older clients left out of
// time entry records:
// - id, rebuilt as {userId}_{date}
// - totalHours on completed records, recomputed from checkIn and checkOut
// Records that are not JSON objects are left untouched.
func Up_000002_backfill_entry_fields(tx *sql.Tx) error {
	type row struct {
		key   string
		value string
	}
	var rowsToCheck []row

	rows, err := tx.Query("SELECT key, value FROM kv_store WHERE substr(key, 1, length(?)) = ?", entryKeyPrefix, entryKeyPrefix)
	if err != nil {
		return fmt.Errorf("failed to query time entries: %w", err)
	}
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.key, &r.value); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan row %s: %w", r.key, err)
		}
		rowsToCheck = append(rowsToCheck, r)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating time entries: %w", err)
	}
	rows.Close()

	stmt, err := tx.Prepare("UPDATE kv_store SET value = ? WHERE key = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range rowsToCheck {
		updated, changed := backfillEntry([]byte(r.value))
		if !changed {
			continue
		}
		if _, err := stmt.Exec(string(updated), r.key); err != nil {
			return fmt.Errorf("failed to update %s: %w", r.key, err)
		}
	}

	return nil
}

func backfillEntry(value []byte) ([]byte, bool) {
	var record map[string]interface{}
	if err := json.Unmarshal(value, &record); err != nil {
		return nil, false
	}

	changed := false
	if _, ok := record["id"]; !ok {
		userID, _ := record["userId"].(string)
		date, _ := record["date"].(string)
		if userID != "" && date != "" {
			record["id"] = userID + "_" + date
			changed = true
		}
	}

	if status, _ := record["status"].(string); status == "completed" {
		if _, ok := record["totalHours"]; !ok {
			if hours, ok := recomputeHours(record); ok {
				record["totalHours"] = hours
				changed = true
			}
		}
	}

	if !changed {
		return nil, false
	}
	out, err := json.Marshal(record)
	if err != nil {
		return nil, false
	}
	return out, true
}

func recomputeHours(record map[string]interface{}) (float64, bool) {
	checkInText, _ := record["checkIn"].(string)
	checkOutText, _ := record["checkOut"].(string)
	checkIn, err := time.Parse(time.RFC3339Nano, checkInText)
	if err != nil {
		return 0, false
	}
	checkOut, err := time.Parse(time.RFC3339Nano, checkOutText)
	if err != nil || !checkOut.After(checkIn) {
		return 0, false
	}
	return clock.HoursBetween(checkIn, checkOut), true
}
