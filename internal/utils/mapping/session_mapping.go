package mapping

import (
	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	"github.com/SeatLogix/desk_booking_app/internal/models"
)

// ToModelDesktopSession converts a domain DesktopSession to a model DesktopSession
func ToModelDesktopSession(d domain.DesktopSession) models.DesktopSession {
	return models.DesktopSession{
		SessionID:      d.SessionID,
		UserID:         d.UserID,
		MacAddress:     d.MacAddress,
		SSID:           d.SSID,
		Token:          d.Token,
		IsActive:       d.IsActive,
		LastActivityAt: d.LastActivityAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDesktopSession converts a model DesktopSession to a domain DesktopSession
func ToDomainDesktopSession(m models.DesktopSession) domain.DesktopSession {
	return domain.DesktopSession{
		SessionID:      m.SessionID,
		UserID:         m.UserID,
		MacAddress:     m.MacAddress,
		SSID:           m.SSID,
		Token:          m.Token,
		IsActive:       m.IsActive,
		LastActivityAt: m.LastActivityAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAttendanceRecord converts a domain AttendanceRecord to a model AttendanceRecord
func ToModelAttendanceRecord(d domain.AttendanceRecord) models.AttendanceRecord {
	return models.AttendanceRecord{
		RecordID:              d.RecordID,
		UserID:                d.UserID,
		MacAddress:            d.MacAddress,
		SSID:                  d.SSID,
		IPAddress:             d.IPAddress,
		ComputerName:          d.ComputerName,
		ConnectionStartTime:   d.ConnectionStartTime,
		ConnectionEndTime:     d.ConnectionEndTime,
		ConnectionDurationSec: d.ConnectionDurationSecs,
		IsActive:              d.IsActive,
		CreatedAt:             d.CreatedAt,
	}
}

// ToDomainAttendanceRecord converts a model AttendanceRecord to a domain AttendanceRecord
func ToDomainAttendanceRecord(m models.AttendanceRecord) domain.AttendanceRecord {
	return domain.AttendanceRecord{
		RecordID:               m.RecordID,
		UserID:                 m.UserID,
		MacAddress:             m.MacAddress,
		SSID:                   m.SSID,
		IPAddress:              m.IPAddress,
		ComputerName:           m.ComputerName,
		ConnectionStartTime:    m.ConnectionStartTime,
		ConnectionEndTime:      m.ConnectionEndTime,
		ConnectionDurationSecs: m.ConnectionDurationSec,
		IsActive:               m.IsActive,
		CreatedAt:              m.CreatedAt,
	}
}

// ToDomainAttendanceRecordSlice converts a slice of model AttendanceRecords to domain ones
func ToDomainAttendanceRecordSlice(ms []models.AttendanceRecord) []domain.AttendanceRecord {
	ds := make([]domain.AttendanceRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAttendanceRecord(m)
	}
	return ds
}
