package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gatehouse/gatehouse/internal/domain"
	"github.com/gatehouse/gatehouse/internal/ports"
)

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) Create(ctx context.Context, params ports.CreateUserParams) (domain.User, error) {
	rec := userModel{
		Email:             params.Email,
		EmailNormalized:   params.EmailNormalized,
		PasswordHash:      params.PasswordHash,
		CreatedAt:         params.RegisteredAt,
		PasswordChangedAt: params.RegisteredAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, err
	}
	return toDomainUser(rec), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, emailNormalized string) (domain.User, error) {
	var rec userModel
	if err := r.db.WithContext(ctx).Where("email_normalized = ?", emailNormalized).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return toDomainUser(rec), nil
}

func (r *userRepository) GetByID(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	var rec userModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return toDomainUser(rec), nil
}

// RecordLoginFailure increments the counter and flips locked_until once the
// threshold is reached. Done in one transaction so concurrent failures
// cannot lose increments.
func (r *userRepository) RecordLoginFailure(ctx context.Context, userID uuid.UUID, now time.Time, threshold int, lockFor time.Duration) (domain.User, error) {
	var result domain.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&userModel{}).
			Where("user_id = ?", userID).
			Update("failed_login_attempts", gorm.Expr("failed_login_attempts + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		var rec userModel
		if err := tx.Where("user_id = ?", userID).Take(&rec).Error; err != nil {
			return err
		}
		if threshold > 0 && rec.FailedAttempts >= threshold {
			lockedUntil := now.Add(lockFor)
			if err := tx.Model(&userModel{}).
				Where("user_id = ?", userID).
				Update("locked_until", lockedUntil).Error; err != nil {
				return err
			}
			rec.LockedUntil = &lockedUntil
		}
		result = toDomainUser(rec)
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return result, nil
}

func (r *userRepository) RecordLoginSuccess(ctx context.Context, userID uuid.UUID, stamp ports.LoginStamp) error {
	res := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"failed_login_attempts": 0,
			"locked_until":          nil,
			"last_login_at":         stamp.At,
			"last_login_ip":         nullableString(stamp.IPAddress),
			"last_login_user_agent": nullableString(stamp.UserAgent),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
