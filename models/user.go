package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User est un compte du tableau de bord. Les préférences (vues épinglées,
// unités d'affichage) restent un blob JSON libre côté frontend.
type User struct {
	gorm.Model
	Name         string            `json:"name"`
	Email        string            `gorm:"uniqueIndex" json:"email"`
	Password     string            `json:"-"`
	Organization string            `json:"organization"`
	Preferences  datatypes.JSONMap `json:"preferences"`
}
