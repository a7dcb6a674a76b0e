package mapping

import (
	"database/sql"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	"github.com/SeatLogix/desk_booking_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:              d.UserID,
		Username:            d.Username,
		Email:               d.Email,
		PasswordHash:        d.PasswordHash,
		FullName:            d.FullName,
		Department:          d.Department,
		Role:                string(d.Role),
		IsActive:            d.IsActive,
		DefaultWorkDays:     d.DefaultWorkDays,
		RequiredDaysPerWeek: d.RequiredDaysPerWeek,
		AuditFields:         ToModelAuditFields(d.AuditFields),
		DeletedAt:           d.DeletedAt,
	}
	if d.RefreshTokenHash != nil {
		m.RefreshTokenHash = sql.NullString{String: *d.RefreshTokenHash, Valid: true}
	}
	if d.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	return m
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:              m.UserID,
		Username:            m.Username,
		Email:               m.Email,
		PasswordHash:        m.PasswordHash,
		FullName:            m.FullName,
		Department:          m.Department,
		Role:                domain.UserRole(m.Role),
		IsActive:            m.IsActive,
		DefaultWorkDays:     m.DefaultWorkDays,
		RequiredDaysPerWeek: m.RequiredDaysPerWeek,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
		DeletedAt:           m.DeletedAt,
	}
	if m.RefreshTokenHash.Valid {
		d.RefreshTokenHash = &m.RefreshTokenHash.String
	}
	if m.RefreshTokenExpiryTime.Valid {
		d.RefreshTokenExpiryTime = &m.RefreshTokenExpiryTime.Time
	}
	return d
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
