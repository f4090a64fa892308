// Package repository defines error types that are reused across
// multiple repositories. These sentinel values allow higher layers
// to distinguish between failure scenarios: a missing row, a write
// blocked by conflicting state, or a permission failure on a
// dependent view that should trigger the manual fallback instead of
// a retry.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write cannot proceed because of
// conflicting state, such as deleting a group that still has
// participants attached through a foreign key.
var ErrConflict = errors.New("conflict")

// ErrPermission is returned when the database rejects an operation
// for lack of privileges, typically on a view or stored procedure a
// migration has not granted yet. Callers switch to the manual
// fallback path rather than retrying.
var ErrPermission = errors.New("permission denied")

// MySQL privilege error numbers: command denied, table access
// denied, view lacks SQL SECURITY rights, no such grant.
var permissionCodes = map[uint16]bool{1142: true, 1143: true, 1356: true, 1370: true}

// IsPermissionDenied reports whether err is a privilege failure from
// the store. It recognizes both driver error codes and the sentinel.
func IsPermissionDenied(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrPermission) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && permissionCodes[myErr.Number] {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "command denied") || strings.Contains(msg, "permission denied")
}
