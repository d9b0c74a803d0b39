package repo

import "github.com/hendrawijaya/managestock/internal/models"

type UserRepository interface {
	GetByUsername(username string) (models.User, error)
	Create(u models.User) (models.User, error)
}
