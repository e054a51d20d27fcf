package authorization

// CanAccessResourceByOwnerID reports whether userID may act on a resource
// owned by resourceOwnerID. Manage-capable roles see everything; everyone
// else only their own.
func CanAccessResourceByOwnerID(userID uint, userRole UserRole, resourceOwnerID uint) bool {
	if userRole.CanManageTickets() {
		return true
	}
	return userID == resourceOwnerID
}
