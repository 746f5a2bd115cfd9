package repo

import "github.com/rogerio-castellano/pos-tracker/internal/models"

type UserRepository interface {
	GetByUsername(username string) (models.User, error)
	CreateUser(u models.User) (models.User, error)
	ListIDs() ([]int, error)
}
