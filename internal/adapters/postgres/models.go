package postgres

import (
	"time"

	"github.com/google/uuid"
)

type userModel struct {
	UserID             uuid.UUID  `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email              string     `gorm:"column:email"`
	EmailNormalized    string     `gorm:"column:email_normalized"`
	PasswordHash       string     `gorm:"column:password_hash"`
	FailedAttempts     int        `gorm:"column:failed_login_attempts"`
	LockedUntil        *time.Time `gorm:"column:locked_until"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	PasswordChangedAt  time.Time  `gorm:"column:password_changed_at"`
	LastLoginAt        *time.Time `gorm:"column:last_login_at"`
	LastLoginIP        *string    `gorm:"column:last_login_ip"`
	LastLoginUserAgent *string    `gorm:"column:last_login_user_agent"`
}

func (userModel) TableName() string { return "users" }

type loginAttemptModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	UserID        *uuid.UUID `gorm:"column:user_id"`
	AttemptAt     time.Time  `gorm:"column:attempt_at"`
	IPAddress     *string    `gorm:"column:ip_address"`
	Status        string     `gorm:"column:status"`
	FailureReason string     `gorm:"column:failure_reason"`
	UserAgent     string     `gorm:"column:user_agent"`
}

func (loginAttemptModel) TableName() string { return "login_attempts" }
