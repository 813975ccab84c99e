// file: internals/helpers/dberr.go
package helper

import "strings"

// IsUniqueViolation matches the driver's duplicate-key error text (SQLSTATE
// 23505 on Postgres) without tying the controllers to a specific driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "violates unique constraint") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "sqlstate 23505")
}
