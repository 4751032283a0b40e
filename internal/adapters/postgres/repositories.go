package postgres

import (
	"gorm.io/gorm"

	"github.com/gatehouse/gatehouse/internal/ports"
)

type Repositories struct {
	Users    ports.UserRepository
	Attempts ports.LoginAttemptRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:    &userRepository{db: db},
		Attempts: &loginAttemptRepository{db: db},
	}
}
