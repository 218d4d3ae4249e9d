// Package db holds small database/sql helpers shared by persistence code.
package db

import (
	"database/sql"
)

// NullStringValue returns the string value or empty string if not valid.
func NullStringValue(n sql.NullString) string {
	if !n.Valid {
		return ""
	}
	return n.String
}
