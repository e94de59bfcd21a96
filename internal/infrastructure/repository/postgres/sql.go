package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// Epoch seconds are the storage format for domain timestamps; created_at and
// friends stay native TIMESTAMPTZ because only the database touches them.

func unixToTime(value int64) time.Time {
	if value == 0 {
		return time.Time{}
	}
	return time.Unix(value, 0).UTC()
}

func timeToUnix(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.Unix()
}

func nullUnixToTimePtr(value sql.NullInt64) *time.Time {
	if !value.Valid || value.Int64 == 0 {
		return nil
	}
	t := time.Unix(value.Int64, 0).UTC()
	return &t
}

func timePtrToUnixPtr(value *time.Time) *int64 {
	if value == nil || value.IsZero() {
		return nil
	}
	v := value.Unix()
	return &v
}

func nullInt64ToIntPtr(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	v := int(value.Int64)
	return &v
}

func intPtrToInt64Ptr(value *int) *int64 {
	if value == nil {
		return nil
	}
	v := int64(*value)
	return &v
}

func nullStringToStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}

func pqStringArray(values []string) pq.StringArray {
	return pq.StringArray(values)
}
