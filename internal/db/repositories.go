package db

import "gorm.io/gorm"

type Repositories struct {
	Credentials *CredentialRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Credentials: NewCredentialRepository(database),
	}
}
