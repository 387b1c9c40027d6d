package memstore

import (
	"strconv"
	"time"
)

// SequentialID returns a generator yielding max(existing)+1, or 1 for an
// empty collection.
func SequentialID[T any](of func(*T) int64) func([]T) int64 {
	return func(existing []T) int64 {
		var max int64
		for i := range existing {
			if id := of(&existing[i]); id > max {
				max = id
			}
		}
		return max + 1
	}
}

// MilliID returns a generator yielding the current Unix time in
// milliseconds, bumped by one until it is unused.
func MilliID[T any](now func() time.Time, of func(*T) int64) func([]T) int64 {
	if now == nil {
		now = time.Now
	}
	return func(existing []T) int64 {
		used := make(map[int64]struct{}, len(existing))
		for i := range existing {
			used[of(&existing[i])] = struct{}{}
		}
		id := now().UnixMilli()
		for {
			if _, ok := used[id]; !ok {
				return id
			}
			id++
		}
	}
}

// TimestampID returns a generator yielding the current Unix time in
// milliseconds as a decimal string, bumped by one until it is unused.
func TimestampID[T any](now func() time.Time, of func(*T) string) func([]T) string {
	if now == nil {
		now = time.Now
	}
	return func(existing []T) string {
		used := make(map[string]struct{}, len(existing))
		for i := range existing {
			used[of(&existing[i])] = struct{}{}
		}
		ms := now().UnixMilli()
		for {
			id := strconv.FormatInt(ms, 10)
			if _, ok := used[id]; !ok {
				return id
			}
			ms++
		}
	}
}
