package postgres

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	groupDatamodel "github.com/docvault/docvault/internal/core/datamodel/group"
)

// GroupRepository is the gorm implementation of the group repository.
type GroupRepository struct {
	tx *gorm.DB
}

func NewGroupRepository(tx *gorm.DB) *GroupRepository {
	return &GroupRepository{tx: tx}
}

func (r *GroupRepository) Create(g *groupDatamodel.Group) (uuid.UUID, error) {
	if err := r.tx.Create(g).Error; err != nil {
		return uuid.Nil, err
	}
	return g.ID, nil
}

func (r *GroupRepository) ReadById(id uuid.UUID) (*groupDatamodel.Group, error) {
	var g groupDatamodel.Group
	if err := r.tx.Where("id = ?", id).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepository) ReadAll() ([]groupDatamodel.Group, error) {
	var groups []groupDatamodel.Group
	err := r.tx.Order("name ASC").Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) UpdateById(id uuid.UUID, changes map[string]any) (bool, error) {
	res := r.tx.Model(&groupDatamodel.Group{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GroupRepository) DeleteById(id uuid.UUID) (bool, error) {
	res := r.tx.Where("id = ?", id).Delete(&groupDatamodel.Group{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GroupRepository) CountByColumnValue(column string, value any) (int64, error) {
	var count int64
	err := r.tx.Model(&groupDatamodel.Group{}).Where(column+" = ?", value).Count(&count).Error
	return count, err
}
