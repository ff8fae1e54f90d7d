package database

import (
	"errors"

	"gorm.io/gorm"

	documentPostgres "github.com/docvault/docvault/internal/document/postgres"
	groupPostgres "github.com/docvault/docvault/internal/group/postgres"
	membershipPostgres "github.com/docvault/docvault/internal/membership/postgres"
	permitPostgres "github.com/docvault/docvault/internal/permit/postgres"
	userPostgres "github.com/docvault/docvault/internal/user/postgres"
)

// ErrUnitFinished is returned when Commit or Rollback is called on a unit
// of work that has already reached a terminal state. One terminal
// transition per unit is the contract; a second call is a programming
// defect, not a recoverable condition.
var ErrUnitFinished = errors.New("unit of work already committed or rolled back")

// UnitOfWork owns exactly one open transaction and exposes the repositories
// bound to it. Lifecycle: created per operation, committed or rolled back
// exactly once, then disposed. Never reused.
type UnitOfWork interface {
	Users() UserRepository
	Groups() GroupRepository
	Memberships() MembershipRepository
	Permits() PermitRepository
	Documents() DocumentRepository

	Commit() error
	Rollback() error
	// Dispose releases the unit on any exit path. If the unit is still
	// open it is rolled back, so partial writes can never leak out of a
	// failed operation. Safe to call more than once and after Commit.
	Dispose()
}

// Opener begins units of work. Services depend on this rather than on a
// concrete *gorm.DB so tests can substitute failing units.
type Opener interface {
	Begin(readOnly bool) (UnitOfWork, error)
}

// Manager opens gorm-backed units of work against one database handle. The
// manager itself is stateless and safe for concurrent use; every Begin
// yields an isolated transaction.
type Manager struct {
	db *gorm.DB
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db}
}

func (m *Manager) Begin(readOnly bool) (UnitOfWork, error) {
	tx := m.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	// Read-only is an isolation hint, not a contract change. Only postgres
	// understands it; on other dialects (sqlite in tests) it is advisory.
	if readOnly && tx.Dialector.Name() == "postgres" {
		if err := tx.Exec("SET TRANSACTION READ ONLY").Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	return &gormUnit{
		tx:          tx,
		readOnly:    readOnly,
		users:       userPostgres.NewUserRepository(tx),
		groups:      groupPostgres.NewGroupRepository(tx),
		memberships: membershipPostgres.NewMembershipRepository(tx),
		permits:     permitPostgres.NewPermitRepository(tx),
		documents:   documentPostgres.NewDocumentRepository(tx),
	}, nil
}

type unitState int

const (
	stateOpen unitState = iota
	stateCommitted
	stateRolledBack
	stateDisposed
)

type gormUnit struct {
	tx       *gorm.DB
	readOnly bool
	state    unitState

	users       UserRepository
	groups      GroupRepository
	memberships MembershipRepository
	permits     PermitRepository
	documents   DocumentRepository
}

func (u *gormUnit) Users() UserRepository             { return u.users }
func (u *gormUnit) Groups() GroupRepository           { return u.groups }
func (u *gormUnit) Memberships() MembershipRepository { return u.memberships }
func (u *gormUnit) Permits() PermitRepository         { return u.permits }
func (u *gormUnit) Documents() DocumentRepository     { return u.documents }

func (u *gormUnit) Commit() error {
	if u.state != stateOpen {
		return ErrUnitFinished
	}
	if err := u.tx.Commit().Error; err != nil {
		u.state = stateRolledBack
		return err
	}
	u.state = stateCommitted
	return nil
}

func (u *gormUnit) Rollback() error {
	if u.state != stateOpen {
		return ErrUnitFinished
	}
	u.state = stateRolledBack
	return u.tx.Rollback().Error
}

func (u *gormUnit) Dispose() {
	if u.state == stateOpen {
		u.tx.Rollback()
	}
	u.state = stateDisposed
}
