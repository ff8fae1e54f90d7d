package postgres

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	membershipDatamodel "github.com/docvault/docvault/internal/core/datamodel/membership"
)

// MembershipRepository is the gorm implementation of the membership
// repository. The bulk deletes exist for cascading group and user deletion
// and report affected rows rather than success, since removing zero rows is
// a valid cascade result.
type MembershipRepository struct {
	tx *gorm.DB
}

func NewMembershipRepository(tx *gorm.DB) *MembershipRepository {
	return &MembershipRepository{tx: tx}
}

func (r *MembershipRepository) Create(m *membershipDatamodel.Membership) (uuid.UUID, error) {
	if err := r.tx.Create(m).Error; err != nil {
		return uuid.Nil, err
	}
	return m.ID, nil
}

func (r *MembershipRepository) ReadById(id uuid.UUID) (*membershipDatamodel.Membership, error) {
	var m membershipDatamodel.Membership
	if err := r.tx.Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MembershipRepository) ReadAll() ([]membershipDatamodel.Membership, error) {
	var memberships []membershipDatamodel.Membership
	err := r.tx.Order("date_created ASC").Find(&memberships).Error
	return memberships, err
}

func (r *MembershipRepository) ReadByGroupId(groupID uuid.UUID) ([]membershipDatamodel.Membership, error) {
	var memberships []membershipDatamodel.Membership
	err := r.tx.Where("group_id = ?", groupID).Find(&memberships).Error
	return memberships, err
}

func (r *MembershipRepository) ReadByUserId(userID uuid.UUID) ([]membershipDatamodel.Membership, error) {
	var memberships []membershipDatamodel.Membership
	err := r.tx.Where("user_id = ?", userID).Find(&memberships).Error
	return memberships, err
}

func (r *MembershipRepository) DeleteById(id uuid.UUID) (bool, error) {
	res := r.tx.Where("id = ?", id).Delete(&membershipDatamodel.Membership{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *MembershipRepository) DeleteByGroupId(groupID uuid.UUID) (int64, error) {
	res := r.tx.Where("group_id = ?", groupID).Delete(&membershipDatamodel.Membership{})
	return res.RowsAffected, res.Error
}

func (r *MembershipRepository) DeleteByUserId(userID uuid.UUID) (int64, error) {
	res := r.tx.Where("user_id = ?", userID).Delete(&membershipDatamodel.Membership{})
	return res.RowsAffected, res.Error
}

func (r *MembershipRepository) CountByColumnValue(column string, value any) (int64, error) {
	var count int64
	err := r.tx.Model(&membershipDatamodel.Membership{}).Where(column+" = ?", value).Count(&count).Error
	return count, err
}

func (r *MembershipRepository) CountByUserAndGroup(userID, groupID uuid.UUID) (int64, error) {
	var count int64
	err := r.tx.Model(&membershipDatamodel.Membership{}).
		Where("user_id = ? AND group_id = ?", userID, groupID).
		Count(&count).Error
	return count, err
}
