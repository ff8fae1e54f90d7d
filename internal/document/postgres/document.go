package postgres

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	documentDatamodel "github.com/docvault/docvault/internal/core/datamodel/document"
)

// DocumentRepository is the gorm implementation of the document repository.
type DocumentRepository struct {
	tx *gorm.DB
}

func NewDocumentRepository(tx *gorm.DB) *DocumentRepository {
	return &DocumentRepository{tx: tx}
}

func (r *DocumentRepository) Create(d *documentDatamodel.Document) (uuid.UUID, error) {
	if err := r.tx.Create(d).Error; err != nil {
		return uuid.Nil, err
	}
	return d.ID, nil
}

func (r *DocumentRepository) ReadById(id uuid.UUID) (*documentDatamodel.Document, error) {
	var d documentDatamodel.Document
	if err := r.tx.Where("id = ?", id).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepository) ReadAll() ([]documentDatamodel.Document, error) {
	var documents []documentDatamodel.Document
	err := r.tx.Order("date_posted ASC").Find(&documents).Error
	return documents, err
}

func (r *DocumentRepository) ReadAllForUser(userID uuid.UUID) ([]documentDatamodel.Document, error) {
	var documents []documentDatamodel.Document
	err := r.tx.
		Joins("JOIN permits ON permits.document_id = documents.id").
		Joins("JOIN memberships ON memberships.group_id = permits.group_id").
		Where("memberships.user_id = ?", userID).
		Distinct("documents.*").
		Order("documents.date_posted ASC").
		Find(&documents).Error
	return documents, err
}

func (r *DocumentRepository) UpdateById(id uuid.UUID, changes map[string]any) (bool, error) {
	res := r.tx.Model(&documentDatamodel.Document{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *DocumentRepository) DeleteById(id uuid.UUID) (bool, error) {
	res := r.tx.Where("id = ?", id).Delete(&documentDatamodel.Document{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *DocumentRepository) CountByColumnValue(column string, value any) (int64, error) {
	var count int64
	err := r.tx.Model(&documentDatamodel.Document{}).Where(column+" = ?", value).Count(&count).Error
	return count, err
}
