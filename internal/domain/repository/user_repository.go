package repository

import "github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios (autenticación).
type UserRepository interface {
	Create(user *entity.User) error
	GetByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
}
