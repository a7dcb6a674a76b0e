package dto

import (
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
)

// DesktopLoginRequest carries credentials plus the device identity the agent
// runs on. MAC address is the exclusivity key for desktop sessions.
type DesktopLoginRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	MacAddress string `json:"macAddress" binding:"required,mac"`
	SSID       string `json:"ssid"`
}

// DesktopLoginResponse returns the long-lived agent token and session identity.
type DesktopLoginResponse struct {
	Token     string       `json:"token"`
	SessionID string       `json:"sessionID"`
	User      UserResponse `json:"user"`
}

// DeviceEventRequest is the payload for connect, heartbeat and disconnect
// events reported by the desktop agent.
type DeviceEventRequest struct {
	MacAddress   string `json:"macAddress" binding:"required,mac"`
	SSID         string `json:"ssid"`
	IPAddress    string `json:"ipAddress" binding:"omitempty,ip"`
	ComputerName string `json:"computerName"`
}

// SessionResponse defines the data returned for a desktop session.
type SessionResponse struct {
	SessionID      string    `json:"sessionID"`
	UserID         string    `json:"userID"`
	MacAddress     string    `json:"macAddress"`
	SSID           string    `json:"ssid"`
	IsActive       bool      `json:"isActive"`
	LastActivityAt time.Time `json:"lastActivityAt"`
}

// AttendanceRecordResponse defines the data returned for one connection interval.
type AttendanceRecordResponse struct {
	RecordID              string     `json:"recordID"`
	UserID                string     `json:"userID"`
	MacAddress            string     `json:"macAddress"`
	SSID                  string     `json:"ssid"`
	IPAddress             string     `json:"ipAddress"`
	ComputerName          string     `json:"computerName"`
	ConnectionStartTime   time.Time  `json:"connectionStartTime"`
	ConnectionEndTime     *time.Time `json:"connectionEndTime,omitempty"`
	ConnectionDurationSec float64    `json:"connectionDurationSeconds"`
	IsActive              bool       `json:"isActive"`
}

// AttendanceHistoryParams defines the query parameters for paging through
// attendance records.
type AttendanceHistoryParams struct {
	Limit     int    `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// AttendanceHistoryResponse wraps a page of attendance records.
type AttendanceHistoryResponse struct {
	Records   []AttendanceRecordResponse `json:"records"`
	NextToken string                     `json:"nextToken,omitempty"`
}

// ListSessionsResponse wraps the active sessions across all users.
type ListSessionsResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// AdminAttendanceParams extends the attendance paging parameters with the
// target user for admin lookups.
type AdminAttendanceParams struct {
	UserID    string `form:"userID" binding:"required,uuid"`
	Limit     int    `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// ToSessionResponse converts a domain.DesktopSession to SessionResponse DTO
func ToSessionResponse(s *domain.DesktopSession) SessionResponse {
	return SessionResponse{
		SessionID:      s.SessionID,
		UserID:         s.UserID,
		MacAddress:     s.MacAddress,
		SSID:           s.SSID,
		IsActive:       s.IsActive,
		LastActivityAt: s.LastActivityAt,
	}
}

// ToListSessionsResponse converts a slice of domain.DesktopSession to its DTO.
func ToListSessionsResponse(sessions []domain.DesktopSession) ListSessionsResponse {
	responses := make([]SessionResponse, len(sessions))
	for i := range sessions {
		responses[i] = ToSessionResponse(&sessions[i])
	}
	return ListSessionsResponse{Sessions: responses}
}

// ToAttendanceRecordResponse converts a domain.AttendanceRecord to its DTO.
func ToAttendanceRecordResponse(r *domain.AttendanceRecord) AttendanceRecordResponse {
	return AttendanceRecordResponse{
		RecordID:              r.RecordID,
		UserID:                r.UserID,
		MacAddress:            r.MacAddress,
		SSID:                  r.SSID,
		IPAddress:             r.IPAddress,
		ComputerName:          r.ComputerName,
		ConnectionStartTime:   r.ConnectionStartTime,
		ConnectionEndTime:     r.ConnectionEndTime,
		ConnectionDurationSec: r.ConnectionDurationSecs,
		IsActive:              r.IsActive,
	}
}

// ToAttendanceHistoryResponse builds a history page with its continuation token.
func ToAttendanceHistoryResponse(records []domain.AttendanceRecord, nextToken string) AttendanceHistoryResponse {
	responses := make([]AttendanceRecordResponse, len(records))
	for i := range records {
		responses[i] = ToAttendanceRecordResponse(&records[i])
	}
	return AttendanceHistoryResponse{
		Records:   responses,
		NextToken: nextToken,
	}
}
