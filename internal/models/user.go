package models

import (
	"database/sql"
	"time"
)

// User represents an employee account as stored in the users table.
// DefaultWorkDays is persisted as an int[] column (0=Sunday .. 6=Saturday).
type User struct {
	UserID              string `db:"user_id"`
	Username            string `db:"username"`
	Email               string `db:"email"`
	PasswordHash        string `db:"password_hash"`
	FullName            string `db:"full_name"`
	Department          string `db:"department"`
	Role                string `db:"role"`
	IsActive            bool   `db:"is_active"`
	DefaultWorkDays     []int  `db:"default_work_days"`
	RequiredDaysPerWeek int    `db:"required_days_per_week"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
