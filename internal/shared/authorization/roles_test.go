package authorization

import "testing"

func TestCanManageTickets(t *testing.T) {
	tests := []struct {
		role UserRole
		want bool
	}{
		{RoleAdmin, true},
		{RoleHIS, true},
		{RoleUser, false},
		{RoleViewer, false},
	}

	for _, tt := range tests {
		if got := tt.role.CanManageTickets(); got != tt.want {
			t.Errorf("%s.CanManageTickets() = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestParseUserRole(t *testing.T) {
	if got := ParseUserRole("admin"); got != RoleAdmin {
		t.Errorf("ParseUserRole(admin) = %s", got)
	}
	if got := ParseUserRole("bogus"); got != RoleUser {
		t.Errorf("ParseUserRole(bogus) = %s, want fallback to user", got)
	}
}
