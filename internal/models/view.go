package models

type View string

const (
	ViewDashboard View = "dashboard"
	ViewBuyData   View = "buy-data"
	ViewHistory   View = "history"
	ViewAdmin     View = "admin"
	ViewSettings  View = "settings"
)

func (v View) Valid() bool {
	switch v {
	case ViewDashboard, ViewBuyData, ViewHistory, ViewAdmin, ViewSettings:
		return true
	}
	return false
}

// CanAccess is the single authorization predicate consulted by the view
// router: the admin console requires the admin role, the buy screen is for
// end users only, everything else is open to any authenticated principal.
func CanAccess(v View, role Role) bool {
	switch v {
	case ViewAdmin:
		return role == RoleAdmin
	case ViewBuyData:
		return role != RoleAdmin
	}
	return true
}
