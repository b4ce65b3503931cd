// Package stats computes aggregate session statistics straight from the
// history log with DuckDB, without building the full report model.
package stats

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/clsung/codex-log/internal/db"
)

// SessionStats is one row of the per-session aggregate.
type SessionStats struct {
	SessionID  string
	EntryCount int
	FirstEntry time.Time
	LastEntry  time.Time
}

// FetchSessionStats aggregates entry counts and activity ranges per session
// from the history log, ordered by first activity.
func FetchSessionStats(historyPath string) ([]SessionStats, error) {
	if _, err := os.Stat(historyPath); err != nil {
		return nil, fmt.Errorf("failed to open history log: %w", err)
	}

	database, err := db.GetDB()
	if err != nil {
		return nil, err
	}
	// Don't close the singleton connection.

	query := fmt.Sprintf(`
		SELECT
			CAST(session_id AS VARCHAR) as session_id,
			COUNT(*) as entry_count,
			MIN(ts) as first_ts,
			MAX(ts) as last_ts
		FROM read_json('%s',
			format = 'newline_delimited',
			union_by_name = true
		)
		WHERE session_id IS NOT NULL
		AND ts IS NOT NULL
		GROUP BY session_id
		ORDER BY MIN(ts) ASC
	`, historyPath)

	rows, err := database.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute stats query: %w", err)
	}
	defer rows.Close()

	var stats []SessionStats
	for rows.Next() {
		var row SessionStats
		var first, last sql.NullInt64

		if err := rows.Scan(&row.SessionID, &row.EntryCount, &first, &last); err != nil {
			continue
		}
		if first.Valid {
			row.FirstEntry = time.UnixMilli(first.Int64)
		}
		if last.Valid {
			row.LastEntry = time.UnixMilli(last.Int64)
		}
		stats = append(stats, row)
	}

	return stats, rows.Err()
}
