package repository

import "strings"

// isRetryableConflict reports whether the database aborted a transaction
// because of a concurrent write, in which case the whole operation may be
// retried. Matches the wording of the MySQL, PostgreSQL, and SQLite drivers.
func isRetryableConflict(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())

	patterns := []string{
		"deadlock",                // MySQL 1213, Postgres 40P01
		"lock wait timeout",       // MySQL 1205
		"could not serialize",     // Postgres 40001
		"serialization failure",   // Postgres 40001 wording variant
		"database is locked",      // SQLite busy
		"database table is locked",
	}

	for _, p := range patterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
