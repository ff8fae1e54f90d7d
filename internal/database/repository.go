package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	documentDatamodel "github.com/docvault/docvault/internal/core/datamodel/document"
	groupDatamodel "github.com/docvault/docvault/internal/core/datamodel/group"
	membershipDatamodel "github.com/docvault/docvault/internal/core/datamodel/membership"
	permitDatamodel "github.com/docvault/docvault/internal/core/datamodel/permit"
	userDatamodel "github.com/docvault/docvault/internal/core/datamodel/user"
)

// ErrNotFound is returned by ReadById when no row matches the id.
var ErrNotFound = gorm.ErrRecordNotFound

// Changes is the sparse-update payload for UpdateById: only the columns
// present in the map are written, everything else is left untouched.
type Changes = map[string]any

// UserRepository is point data access for user rows. All methods run inside
// the transaction owned by the UnitOfWork that exposed the repository; none
// of them commit.
type UserRepository interface {
	Create(u *userDatamodel.User) (uuid.UUID, error)
	ReadById(id uuid.UUID) (*userDatamodel.User, error)
	// ReadByEmail exists for session authentication, the one lookup that
	// starts from a credential instead of an id.
	ReadByEmail(email string) (*userDatamodel.User, error)
	ReadAll() ([]userDatamodel.User, error)
	UpdateById(id uuid.UUID, changes Changes) (bool, error)
	DeleteById(id uuid.UUID) (bool, error)
	CountByColumnValue(column string, value any) (int64, error)
}

type GroupRepository interface {
	Create(g *groupDatamodel.Group) (uuid.UUID, error)
	ReadById(id uuid.UUID) (*groupDatamodel.Group, error)
	ReadAll() ([]groupDatamodel.Group, error)
	UpdateById(id uuid.UUID, changes Changes) (bool, error)
	DeleteById(id uuid.UUID) (bool, error)
	CountByColumnValue(column string, value any) (int64, error)
}

// MembershipRepository adds the bulk deletes used by cascading group and
// user deletion. Bulk deletes report the number of rows removed; zero is a
// valid result.
type MembershipRepository interface {
	Create(m *membershipDatamodel.Membership) (uuid.UUID, error)
	ReadById(id uuid.UUID) (*membershipDatamodel.Membership, error)
	ReadAll() ([]membershipDatamodel.Membership, error)
	ReadByGroupId(groupID uuid.UUID) ([]membershipDatamodel.Membership, error)
	ReadByUserId(userID uuid.UUID) ([]membershipDatamodel.Membership, error)
	DeleteById(id uuid.UUID) (bool, error)
	DeleteByGroupId(groupID uuid.UUID) (int64, error)
	DeleteByUserId(userID uuid.UUID) (int64, error)
	CountByColumnValue(column string, value any) (int64, error)
	CountByUserAndGroup(userID, groupID uuid.UUID) (int64, error)
}

type PermitRepository interface {
	Create(p *permitDatamodel.Permit) (uuid.UUID, error)
	ReadById(id uuid.UUID) (*permitDatamodel.Permit, error)
	ReadAll() ([]permitDatamodel.Permit, error)
	ReadByGroupId(groupID uuid.UUID) ([]permitDatamodel.Permit, error)
	DeleteById(id uuid.UUID) (bool, error)
	DeleteByGroupId(groupID uuid.UUID) (int64, error)
	DeleteByDocumentId(documentID uuid.UUID) (int64, error)
	CountByColumnValue(column string, value any) (int64, error)
	CountByGroupAndDocument(groupID, documentID uuid.UUID) (int64, error)
	// CountForUserAndDocument counts permits on the document held by any
	// group the user is a member of. Nonzero means the user may read it.
	CountForUserAndDocument(userID, documentID uuid.UUID) (int64, error)
}

type DocumentRepository interface {
	Create(d *documentDatamodel.Document) (uuid.UUID, error)
	ReadById(id uuid.UUID) (*documentDatamodel.Document, error)
	ReadAll() ([]documentDatamodel.Document, error)
	// ReadAllForUser returns the documents permitted to the user through
	// their group memberships.
	ReadAllForUser(userID uuid.UUID) ([]documentDatamodel.Document, error)
	UpdateById(id uuid.UUID, changes Changes) (bool, error)
	DeleteById(id uuid.UUID) (bool, error)
	CountByColumnValue(column string, value any) (int64, error)
}
