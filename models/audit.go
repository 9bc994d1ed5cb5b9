package models

import (
	"time"
)

// AuditLog records who did what to which resource. RequestID correlates
// entries produced by the same HTTP request.
type AuditLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    *uint     `json:"user_id"`
	User      *User     `json:"user" gorm:"foreignKey:UserID"`
	RequestID string    `json:"request_id" gorm:"index"`
	Action    string    `json:"action" gorm:"not null"`
	Resource  string    `json:"resource" gorm:"not null"`
	Details   string    `json:"details"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}
