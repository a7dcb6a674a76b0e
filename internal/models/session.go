package models

import "time"

// DesktopSession is the single active-device row per user. MAC exclusivity
// is enforced at the service layer against this record.
type DesktopSession struct {
	SessionID      string    `db:"session_id"`
	UserID         string    `db:"user_id"`
	MacAddress     string    `db:"mac_address"`
	SSID           string    `db:"ssid"`
	Token          string    `db:"token"`
	IsActive       bool      `db:"is_active"`
	LastActivityAt time.Time `db:"last_activity_at"`
	AuditFields
}

// AttendanceRecord is one connection interval reported by the desktop agent.
type AttendanceRecord struct {
	RecordID              string     `db:"record_id"`
	UserID                string     `db:"user_id"`
	MacAddress            string     `db:"mac_address"`
	SSID                  string     `db:"ssid"`
	IPAddress             string     `db:"ip_address"`
	ComputerName          string     `db:"computer_name"`
	ConnectionStartTime   time.Time  `db:"connection_start_time"`
	ConnectionEndTime     *time.Time `db:"connection_end_time"`
	ConnectionDurationSec float64    `db:"connection_duration_seconds"`
	IsActive              bool       `db:"is_active"`
	CreatedAt             time.Time  `db:"created_at"`
}
