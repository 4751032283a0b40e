package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/gatehouse/gatehouse/internal/domain"
)

func toDomainUser(row userModel) domain.User {
	ip := ""
	if row.LastLoginIP != nil {
		ip = *row.LastLoginIP
	}
	ua := ""
	if row.LastLoginUserAgent != nil {
		ua = *row.LastLoginUserAgent
	}
	return domain.User{
		UserID:             row.UserID,
		Email:              row.Email,
		EmailNormalized:    row.EmailNormalized,
		PasswordHash:       row.PasswordHash,
		FailedAttempts:     row.FailedAttempts,
		LockedUntil:        row.LockedUntil,
		CreatedAt:          row.CreatedAt,
		PasswordChangedAt:  row.PasswordChangedAt,
		LastLoginAt:        row.LastLoginAt,
		LastLoginIP:        ip,
		LastLoginUserAgent: ua,
	}
}

func toDomainLoginAttempt(row loginAttemptModel) domain.LoginAttempt {
	ip := ""
	if row.IPAddress != nil {
		ip = *row.IPAddress
	}
	return domain.LoginAttempt{
		ID:            row.ID,
		UserID:        row.UserID,
		AttemptAt:     row.AttemptAt,
		IPAddress:     ip,
		Status:        row.Status,
		FailureReason: row.FailureReason,
		UserAgent:     row.UserAgent,
	}
}

func nullableString(v string) *string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
