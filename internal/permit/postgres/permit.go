package postgres

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	permitDatamodel "github.com/docvault/docvault/internal/core/datamodel/permit"
)

// PermitRepository is the gorm implementation of the permit repository.
type PermitRepository struct {
	tx *gorm.DB
}

func NewPermitRepository(tx *gorm.DB) *PermitRepository {
	return &PermitRepository{tx: tx}
}

func (r *PermitRepository) Create(p *permitDatamodel.Permit) (uuid.UUID, error) {
	if err := r.tx.Create(p).Error; err != nil {
		return uuid.Nil, err
	}
	return p.ID, nil
}

func (r *PermitRepository) ReadById(id uuid.UUID) (*permitDatamodel.Permit, error) {
	var p permitDatamodel.Permit
	if err := r.tx.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PermitRepository) ReadAll() ([]permitDatamodel.Permit, error) {
	var permits []permitDatamodel.Permit
	err := r.tx.Order("date_created ASC").Find(&permits).Error
	return permits, err
}

func (r *PermitRepository) ReadByGroupId(groupID uuid.UUID) ([]permitDatamodel.Permit, error) {
	var permits []permitDatamodel.Permit
	err := r.tx.Where("group_id = ?", groupID).Find(&permits).Error
	return permits, err
}

func (r *PermitRepository) DeleteById(id uuid.UUID) (bool, error) {
	res := r.tx.Where("id = ?", id).Delete(&permitDatamodel.Permit{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PermitRepository) DeleteByGroupId(groupID uuid.UUID) (int64, error) {
	res := r.tx.Where("group_id = ?", groupID).Delete(&permitDatamodel.Permit{})
	return res.RowsAffected, res.Error
}

func (r *PermitRepository) DeleteByDocumentId(documentID uuid.UUID) (int64, error) {
	res := r.tx.Where("document_id = ?", documentID).Delete(&permitDatamodel.Permit{})
	return res.RowsAffected, res.Error
}

func (r *PermitRepository) CountByColumnValue(column string, value any) (int64, error) {
	var count int64
	err := r.tx.Model(&permitDatamodel.Permit{}).Where(column+" = ?", value).Count(&count).Error
	return count, err
}

func (r *PermitRepository) CountByGroupAndDocument(groupID, documentID uuid.UUID) (int64, error) {
	var count int64
	err := r.tx.Model(&permitDatamodel.Permit{}).
		Where("group_id = ? AND document_id = ?", groupID, documentID).
		Count(&count).Error
	return count, err
}

func (r *PermitRepository) CountForUserAndDocument(userID, documentID uuid.UUID) (int64, error) {
	var count int64
	err := r.tx.Model(&permitDatamodel.Permit{}).
		Joins("JOIN memberships ON memberships.group_id = permits.group_id").
		Where("memberships.user_id = ? AND permits.document_id = ?", userID, documentID).
		Count(&count).Error
	return count, err
}
