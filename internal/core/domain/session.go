package domain

import "time"

// DesktopSession is a device-level authenticated connection from the desktop
// agent, tied to a MAC address. A user holds at most one active session; a
// login from a different MAC while one is active is rejected rather than
// silently replacing it.
type DesktopSession struct {
	SessionID      string    `json:"sessionID"` // Primary Key (UUID)
	UserID         string    `json:"userID"`
	MacAddress     string    `json:"macAddress"`
	SSID           string    `json:"ssid"`
	Token          string    `json:"-"`
	IsActive       bool      `json:"isActive"`
	LastActivityAt time.Time `json:"lastActivityAt"`
	AuditFields

	// Populated on joined reads only.
	User *User `json:"user,omitempty"`
}

// AttendanceRecord is a timed connect/disconnect interval derived from
// device network presence. At most one active record per (user, macAddress).
type AttendanceRecord struct {
	RecordID               string     `json:"recordID"` // Primary Key (UUID)
	UserID                 string     `json:"userID"`
	MacAddress             string     `json:"macAddress"`
	SSID                   string     `json:"ssid"`
	IPAddress              string     `json:"ipAddress"`
	ComputerName           string     `json:"computerName"`
	ConnectionStartTime    time.Time  `json:"connectionStartTime"`
	ConnectionEndTime      *time.Time `json:"connectionEndTime,omitempty"`
	ConnectionDurationSecs float64    `json:"connectionDurationSecs"`
	IsActive               bool       `json:"isActive"`
	CreatedAt              time.Time  `json:"createdAt"`

	// Populated on joined reads only.
	User *User `json:"user,omitempty"`
}
