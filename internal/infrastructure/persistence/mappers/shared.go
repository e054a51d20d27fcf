package mappers

import (
	"time"

	"helpdesk/internal/shared/biztime"
)

func optionalTime(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := biztime.FromUnixMilli(*ms)
	return &t
}

func optionalMilli(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}
