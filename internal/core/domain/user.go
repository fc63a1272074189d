package domain

import "time"

const (
	RoleGlobalManager  = "global_manager"
	RoleStoreManager   = "store_manager"
	RoleWarehouseStaff = "warehouse_staff"
	RoleCarrier        = "carrier"
)

// ValidRole reports whether role is one of the four known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleGlobalManager, RoleStoreManager, RoleWarehouseStaff, RoleCarrier:
		return true
	}
	return false
}

// User models an authenticated actor in the system.
//
// Scope is the warehouse/store identifier the user acts on behalf of; for a
// carrier it is the user's own id. Global managers carry no scope.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Scope        string    `json:"scope,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
