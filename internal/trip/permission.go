package trip

// RoleOf maps (trip, user) to the user's effective role. The owner wins
// regardless of any member records; otherwise the highest role found in
// the members list applies.
//
// Every mutation path goes through the predicates below rather than
// re-implementing the role rules inline.
func RoleOf(t *Trip, userID int64) Role {
	if t.OwnerID == userID {
		return RoleOwner
	}

	best := RoleNone
	for _, m := range t.Members {
		if m.UserID != userID {
			continue
		}
		if rolePrecedence(m.Role) > rolePrecedence(best) {
			best = m.Role
		}
	}
	return best
}

func rolePrecedence(r Role) int {
	switch r {
	case RoleOwner:
		return 3
	case RoleEditor:
		return 2
	case RoleViewer:
		return 1
	default:
		return 0
	}
}

// CanManageMembership reports whether the user may add/remove members,
// delete the trip, or toggle public sharing
func CanManageMembership(t *Trip, userID int64) bool {
	return RoleOf(t, userID) == RoleOwner
}

// CanEditContent reports whether the user may mutate itinerary, comments,
// expenses, receipts, budget, the favorite flag, or trip metadata
func CanEditContent(t *Trip, userID int64) bool {
	switch RoleOf(t, userID) {
	case RoleOwner, RoleEditor:
		return true
	default:
		return false
	}
}

// CanRead reports whether the user may read the trip through the
// authenticated API. Anonymous access via a share token is handled
// separately by ResolvePublic.
func CanRead(t *Trip, userID int64) bool {
	return RoleOf(t, userID) != RoleNone
}
