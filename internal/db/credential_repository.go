package db

import (
	"time"

	"github.com/terraincognita07/hushline/internal/models"
	"gorm.io/gorm"
)

type CredentialRepository struct {
	database *gorm.DB
}

func NewCredentialRepository(database *gorm.DB) *CredentialRepository {
	return &CredentialRepository{database: database}
}

func (repo *CredentialRepository) FindByNormalizedName(name string) (models.Credential, error) {
	var credential models.Credential
	if err := repo.database.Where("normalized_name = ?", name).First(&credential).Error; err != nil {
		return models.Credential{}, err
	}
	return credential, nil
}

func (repo *CredentialRepository) ExistsByNormalizedName(name string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Credential{}).
		Where("normalized_name = ?", name).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// Create derives NormalizedName from Name before inserting.
func (repo *CredentialRepository) Create(credential *models.Credential) error {
	credential.NormalizedName = models.NormalizeCredentialName(credential.Name)
	return repo.database.Create(credential).Error
}

func (repo *CredentialRepository) UpdatePassword(credentialID uint, passwordHash string, mustChangePassword bool) error {
	return repo.database.Model(&models.Credential{}).Where("id = ?", credentialID).Updates(map[string]any{
		"password_hash":        passwordHash,
		"must_change_password": mustChangePassword,
	}).Error
}

func (repo *CredentialRepository) MarkVerified(credentialID uint, at time.Time) error {
	return repo.database.Model(&models.Credential{}).Where("id = ?", credentialID).Update("last_verified_at", at).Error
}

// SyncNormalizedNames rewrites normalized_name for rows whose stored value
// differs from the Go normalization, such as rows backfilled by SQL.
func (repo *CredentialRepository) SyncNormalizedNames() (int, error) {
	var rows []models.Credential
	if err := repo.database.Select("id", "name", "normalized_name").Find(&rows).Error; err != nil {
		return 0, err
	}

	updated := 0
	for _, row := range rows {
		normalized := models.NormalizeCredentialName(row.Name)
		if row.NormalizedName == normalized {
			continue
		}
		if err := repo.database.Model(&models.Credential{}).
			Where("id = ?", row.ID).
			UpdateColumn("normalized_name", normalized).Error; err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}
