package contract

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vlanet/vridge/internal/domain"
)

func TestNewCalendarRequest_SetsWindow(t *testing.T) {
	req := NewCalendarRequest(time.Date(2025, 1, 6, 15, 0, 0, 0, time.UTC), 2)

	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), req.From)
	assert.Equal(t, time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC), req.To)
	assert.Nil(t, req.ProjectScope)
	assert.Nil(t, req.SensitiveTypes)
	assert.False(t, req.IncludeClosed)
}

func TestNewCalendarRequest_DefaultsToFourWeeks(t *testing.T) {
	req := NewCalendarRequest(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 0)
	assert.Equal(t, 27, int(req.To.Sub(req.From).Hours()/24))
}

func TestCalendarResponse_ConflictingEvents(t *testing.T) {
	resp := &CalendarResponse{Events: []domain.CalendarEvent{
		{ID: "a", IsConflicting: true},
		{ID: "b"},
	}}
	got := resp.ConflictingEvents()
	assert.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestCalendarError(t *testing.T) {
	var err error = &CalendarError{Code: CalendarErrInvalidWindow, Message: "to is before from"}
	var ce *CalendarError
	assert.True(t, errors.As(err, &ce))
	assert.Equal(t, "INVALID_WINDOW: to is before from", err.Error())
}
