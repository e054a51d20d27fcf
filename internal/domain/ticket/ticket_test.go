package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/authorization"
)

// newValidTicket creates a ticket with sensible defaults for testing.
func newValidTicket(t *testing.T) *Ticket {
	t.Helper()
	tk, err := NewTicket("Test ticket", "Detailed description", vo.PriorityMedium, 1, 10)
	require.NoError(t, err)
	return tk
}

// reconstructedTicket builds a persisted-style ticket via ReconstructTicket.
func reconstructedTicket(t *testing.T, status vo.TicketStatus) *Ticket {
	t.Helper()
	now := time.Now().UTC()
	tk, err := ReconstructTicket(
		1, "TKT-0001",
		"Persisted ticket", "desc",
		vo.PriorityHigh,
		status,
		2,    // baseID
		10,   // creatorID
		nil,  // assigneeID
		nil,  // attachments
		1,    // version
		now, now,
		nil, nil,
	)
	require.NoError(t, err)
	return tk
}

func TestNewTicket_ValidInput(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		desc    string
		pri     vo.Priority
		baseID  uint
		creator uint
	}{
		{
			name:  "all valid fields - low",
			title: "Printer offline", desc: "Second floor printer unreachable",
			pri: vo.PriorityLow, baseID: 1, creator: 1,
		},
		{
			name:  "all valid fields - critical",
			title: "Network down", desc: "Whole base lost connectivity",
			pri: vo.PriorityCritical, baseID: 3, creator: 42,
		},
		{
			name:  "boundary title length 200",
			title: strings.Repeat("a", 200), desc: "desc",
			pri: vo.PriorityMedium, baseID: 1, creator: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk, err := NewTicket(tt.title, tt.desc, tt.pri, tt.baseID, tt.creator)
			require.NoError(t, err)
			assert.Equal(t, tt.title, tk.Title())
			assert.Equal(t, vo.StatusOpen, tk.Status())
			assert.Equal(t, tt.baseID, tk.BaseID())
			assert.Equal(t, tt.creator, tk.CreatorID())
			assert.Nil(t, tk.AssigneeID())
			assert.Equal(t, 1, tk.Version())
		})
	}
}

func TestNewTicket_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		desc    string
		pri     vo.Priority
		baseID  uint
		creator uint
	}{
		{name: "empty title", title: "", desc: "d", pri: vo.PriorityLow, baseID: 1, creator: 1},
		{name: "title too long", title: strings.Repeat("a", 201), desc: "d", pri: vo.PriorityLow, baseID: 1, creator: 1},
		{name: "empty description", title: "t", desc: "", pri: vo.PriorityLow, baseID: 1, creator: 1},
		{name: "invalid priority", title: "t", desc: "d", pri: vo.Priority("urgent-ish"), baseID: 1, creator: 1},
		{name: "zero base", title: "t", desc: "d", pri: vo.PriorityLow, baseID: 0, creator: 1},
		{name: "zero creator", title: "t", desc: "d", pri: vo.PriorityLow, baseID: 1, creator: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTicket(tt.title, tt.desc, tt.pri, tt.baseID, tt.creator)
			assert.Error(t, err)
		})
	}
}

func TestTicket_ChangeStatus_Transitions(t *testing.T) {
	tests := []struct {
		name      string
		from      vo.TicketStatus
		to        vo.TicketStatus
		shouldErr bool
	}{
		{name: "open to in_progress", from: vo.StatusOpen, to: vo.StatusInProgress},
		{name: "open to resolved", from: vo.StatusOpen, to: vo.StatusResolved},
		{name: "in_progress to resolved", from: vo.StatusInProgress, to: vo.StatusResolved},
		{name: "resolved to closed", from: vo.StatusResolved, to: vo.StatusClosed},
		{name: "resolved reopened", from: vo.StatusResolved, to: vo.StatusInProgress},
		{name: "closed reopened", from: vo.StatusClosed, to: vo.StatusInProgress},
		{name: "closed to resolved rejected", from: vo.StatusClosed, to: vo.StatusResolved, shouldErr: true},
		{name: "open to closed", from: vo.StatusOpen, to: vo.StatusClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := reconstructedTicket(t, tt.from)
			err := tk.ChangeStatus(tt.to)
			if tt.shouldErr {
				assert.Error(t, err)
				assert.Equal(t, tt.from, tk.Status())
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.to, tk.Status())
			}
		})
	}
}

func TestTicket_ChangeStatus_Timestamps(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusInProgress)

	require.NoError(t, tk.ChangeStatus(vo.StatusResolved))
	require.NotNil(t, tk.ResolvedAt())

	require.NoError(t, tk.ChangeStatus(vo.StatusClosed))
	require.NotNil(t, tk.ClosedAt())

	// Reopening clears terminal timestamps.
	require.NoError(t, tk.ChangeStatus(vo.StatusInProgress))
	assert.Nil(t, tk.ResolvedAt())
	assert.Nil(t, tk.ClosedAt())
}

func TestTicket_ChangeStatus_SameStatusIsNoop(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusOpen)
	version := tk.Version()

	require.NoError(t, tk.ChangeStatus(vo.StatusOpen))
	assert.Equal(t, version, tk.Version())
}

func TestTicket_UpdateDetails(t *testing.T) {
	tk := newValidTicket(t)
	version := tk.Version()

	require.NoError(t, tk.UpdateDetails("New title", "New description"))
	assert.Equal(t, "New title", tk.Title())
	assert.Equal(t, version+1, tk.Version())

	assert.Error(t, tk.UpdateDetails("", "desc"))
	assert.Error(t, tk.UpdateDetails("title", ""))
}

func TestTicket_ChangePriority(t *testing.T) {
	tk := newValidTicket(t)

	require.NoError(t, tk.ChangePriority(vo.PriorityCritical))
	assert.Equal(t, vo.PriorityCritical, tk.Priority())

	assert.Error(t, tk.ChangePriority(vo.Priority("bogus")))
}

func TestTicket_AssignTo(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusOpen)

	require.NoError(t, tk.AssignTo(7))
	require.NotNil(t, tk.AssigneeID())
	assert.Equal(t, uint(7), *tk.AssigneeID())
	// Assigning an open ticket moves it to in_progress.
	assert.Equal(t, vo.StatusInProgress, tk.Status())

	assert.Error(t, tk.AssignTo(0))
}

func TestTicket_CanBeViewedBy(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusOpen)
	require.NoError(t, tk.AssignTo(7))

	tests := []struct {
		name   string
		userID uint
		role   authorization.UserRole
		want   bool
	}{
		{name: "admin sees everything", userID: 99, role: authorization.RoleAdmin, want: true},
		{name: "his sees everything", userID: 99, role: authorization.RoleHIS, want: true},
		{name: "creator sees own", userID: 10, role: authorization.RoleUser, want: true},
		{name: "assignee sees assigned", userID: 7, role: authorization.RoleUser, want: true},
		{name: "stranger denied", userID: 55, role: authorization.RoleUser, want: false},
		{name: "viewer denied on others", userID: 55, role: authorization.RoleViewer, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tk.CanBeViewedBy(tt.userID, tt.role))
		})
	}
}

func TestTicket_AddEntry(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusOpen)

	entry, err := NewComment(tk.ID(), 10, "looking into it")
	require.NoError(t, err)
	require.NoError(t, tk.AddEntry(entry))
	assert.Len(t, tk.Entries(), 1)

	other, err := NewComment(999, 10, "wrong ticket")
	require.NoError(t, err)
	assert.Error(t, tk.AddEntry(other))
}
