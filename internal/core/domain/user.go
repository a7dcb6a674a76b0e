package domain

import "time"

// UserRole defines the access level of a user.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleManager  UserRole = "manager"
	RoleEmployee UserRole = "employee"
)

// User represents an employee of the application in the domain.
// DefaultWorkDays holds weekday indices (0=Sunday..6=Saturday) in the
// user's declared priority order; the allocator books the first
// RequiredDaysPerWeek of them.
type User struct {
	UserID              string   `json:"userID"` // Primary Key (UUID)
	Username            string   `json:"username"`
	Email               string   `json:"email"`
	PasswordHash        string   `json:"-"`
	FullName            string   `json:"fullName"`
	Department          string   `json:"department"`
	Role                UserRole `json:"role"`
	IsActive            bool     `json:"isActive"`
	DefaultWorkDays     []int    `json:"defaultWorkDays"`
	RequiredDaysPerWeek int      `json:"requiredDaysPerWeek"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete

	// Refresh token state for the web login flow.
	RefreshTokenHash       *string    `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// HasValidPreferences reports whether the user carries the preference data
// the auto-booking allocator needs.
func (u User) HasValidPreferences() bool {
	if len(u.DefaultWorkDays) == 0 || u.RequiredDaysPerWeek <= 0 {
		return false
	}
	for _, d := range u.DefaultWorkDays {
		if d < 0 || d > 6 {
			return false
		}
	}
	return true
}
