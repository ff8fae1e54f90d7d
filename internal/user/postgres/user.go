package postgres

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	userDatamodel "github.com/docvault/docvault/internal/core/datamodel/user"
)

// UserRepository is the gorm implementation of the user repository. It
// operates on the transaction handle supplied by the unit of work and never
// commits on its own.
type UserRepository struct {
	tx *gorm.DB
}

func NewUserRepository(tx *gorm.DB) *UserRepository {
	return &UserRepository{tx: tx}
}

func (r *UserRepository) Create(u *userDatamodel.User) (uuid.UUID, error) {
	if err := r.tx.Create(u).Error; err != nil {
		return uuid.Nil, err
	}
	return u.ID, nil
}

func (r *UserRepository) ReadById(id uuid.UUID) (*userDatamodel.User, error) {
	var u userDatamodel.User
	if err := r.tx.Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ReadByEmail(email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	if err := r.tx.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ReadAll() ([]userDatamodel.User, error) {
	var users []userDatamodel.User
	err := r.tx.Order("date_created ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdateById(id uuid.UUID, changes map[string]any) (bool, error) {
	res := r.tx.Model(&userDatamodel.User{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *UserRepository) DeleteById(id uuid.UUID) (bool, error) {
	res := r.tx.Where("id = ?", id).Delete(&userDatamodel.User{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *UserRepository) CountByColumnValue(column string, value any) (int64, error) {
	var count int64
	err := r.tx.Model(&userDatamodel.User{}).Where(column+" = ?", value).Count(&count).Error
	return count, err
}
