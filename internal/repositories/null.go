package repositories

import "database/sql"

// nullString maps an empty string to SQL NULL so optional unique columns
// (badge numbers, contact fields) do not collide on empty values.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
