package permit_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/docvault/docvault/internal/core"
	permitDatamodel "github.com/docvault/docvault/internal/core/datamodel/permit"
	"github.com/docvault/docvault/internal/database"
	"github.com/docvault/docvault/internal/permit"
)

func TestPermitService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Permit Service Suite")
}

type MockGroupRepository struct {
	database.GroupRepository
	existingIds map[uuid.UUID]bool
}

func (m *MockGroupRepository) CountByColumnValue(column string, value any) (int64, error) {
	if column == "id" && m.existingIds[value.(uuid.UUID)] {
		return 1, nil
	}
	return 0, nil
}

type MockDocumentRepository struct {
	database.DocumentRepository
	existingIds map[uuid.UUID]bool
}

func (m *MockDocumentRepository) CountByColumnValue(column string, value any) (int64, error) {
	if column == "id" && m.existingIds[value.(uuid.UUID)] {
		return 1, nil
	}
	return 0, nil
}

type MockPermitRepository struct {
	database.PermitRepository
	permits map[uuid.UUID]*permitDatamodel.Permit
	failErr error
}

func NewMockPermitRepository() *MockPermitRepository {
	return &MockPermitRepository{permits: make(map[uuid.UUID]*permitDatamodel.Permit)}
}

func (m *MockPermitRepository) Create(p *permitDatamodel.Permit) (uuid.UUID, error) {
	if m.failErr != nil {
		return uuid.Nil, m.failErr
	}
	m.permits[p.ID] = p
	return p.ID, nil
}

func (m *MockPermitRepository) ReadById(id uuid.UUID) (*permitDatamodel.Permit, error) {
	p, ok := m.permits[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return p, nil
}

func (m *MockPermitRepository) ReadAll() ([]permitDatamodel.Permit, error) {
	var out []permitDatamodel.Permit
	for _, p := range m.permits {
		out = append(out, *p)
	}
	return out, nil
}

func (m *MockPermitRepository) DeleteById(id uuid.UUID) (bool, error) {
	if _, ok := m.permits[id]; !ok {
		return false, nil
	}
	delete(m.permits, id)
	return true, nil
}

func (m *MockPermitRepository) DeleteByGroupId(groupID uuid.UUID) (int64, error) {
	var affected int64
	for id, p := range m.permits {
		if p.GroupID == groupID {
			delete(m.permits, id)
			affected++
		}
	}
	return affected, nil
}

func (m *MockPermitRepository) DeleteByDocumentId(documentID uuid.UUID) (int64, error) {
	var affected int64
	for id, p := range m.permits {
		if p.DocumentID == documentID {
			delete(m.permits, id)
			affected++
		}
	}
	return affected, nil
}

func (m *MockPermitRepository) CountByGroupAndDocument(groupID, documentID uuid.UUID) (int64, error) {
	var count int64
	for _, p := range m.permits {
		if p.GroupID == groupID && p.DocumentID == documentID {
			count++
		}
	}
	return count, nil
}

type MockUnit struct {
	database.UnitOfWork
	groups    *MockGroupRepository
	documents *MockDocumentRepository
	permits   *MockPermitRepository
	commits   int
	rollbacks int
}

func (m *MockUnit) Groups() database.GroupRepository       { return m.groups }
func (m *MockUnit) Documents() database.DocumentRepository { return m.documents }
func (m *MockUnit) Permits() database.PermitRepository     { return m.permits }
func (m *MockUnit) Commit() error                          { m.commits++; return nil }
func (m *MockUnit) Rollback() error                        { m.rollbacks++; return nil }
func (m *MockUnit) Dispose()                               {}

type MockOpener struct {
	unit   *MockUnit
	begins int
}

func (m *MockOpener) Begin(readOnly bool) (database.UnitOfWork, error) {
	m.begins++
	return m.unit, nil
}

var _ = Describe("Permit Service", func() {
	var (
		repo       *MockPermitRepository
		unit       *MockUnit
		opener     *MockOpener
		service    *permit.Service
		manager    core.Principal
		basic      core.Principal
		groupId    uuid.UUID
		documentId uuid.UUID
	)

	BeforeEach(func() {
		groupId = uuid.New()
		documentId = uuid.New()
		repo = NewMockPermitRepository()
		unit = &MockUnit{
			groups:    &MockGroupRepository{existingIds: map[uuid.UUID]bool{groupId: true}},
			documents: &MockDocumentRepository{existingIds: map[uuid.UUID]bool{documentId: true}},
			permits:   repo,
		}
		opener = &MockOpener{unit: unit}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = permit.NewService(opener, logger)
		manager = core.Principal{ID: uuid.New(), Role: core.RoleManager}
		basic = core.Principal{ID: uuid.New(), Role: core.RoleBasic}
	})

	addStoredPermit := func(gid, did uuid.UUID) *permitDatamodel.Permit {
		p := &permitDatamodel.Permit{
			ID:          uuid.New(),
			GroupID:     gid,
			DocumentID:  did,
			DateCreated: time.Now().UTC(),
		}
		repo.permits[p.ID] = p
		return p
	}

	Describe("Create", func() {
		It("should reject a basic caller", func() {
			res := service.Create(permit.Request{
				Principal: basic,
				Item:      &permit.PermitDto{GroupId: &groupId, DocumentId: &documentId},
			})
			Expect(res.Outcome).To(Equal(core.OutcomeFail))
			Expect(opener.begins).To(BeZero())
		})

		It("should fail when the group does not exist", func() {
			unknown := uuid.New()
			res := service.Create(permit.Request{
				Principal: manager,
				Item:      &permit.PermitDto{GroupId: &unknown, DocumentId: &documentId},
			})
			Expect(res.Outcome).To(Equal(core.OutcomeFail))
			Expect(res.ErrorMessage).To(Equal("requested permit group does not exist"))
		})

		It("should fail when the document does not exist", func() {
			unknown := uuid.New()
			res := service.Create(permit.Request{
				Principal: manager,
				Item:      &permit.PermitDto{GroupId: &groupId, DocumentId: &unknown},
			})
			Expect(res.Outcome).To(Equal(core.OutcomeFail))
			Expect(res.ErrorMessage).To(Equal("requested permit document does not exist"))
		})

		It("should fail when the grant already exists", func() {
			addStoredPermit(groupId, documentId)
			res := service.Create(permit.Request{
				Principal: manager,
				Item:      &permit.PermitDto{GroupId: &groupId, DocumentId: &documentId},
			})
			Expect(res.Outcome).To(Equal(core.OutcomeFail))
			Expect(res.ErrorMessage).To(Equal("requested permit already exists for the group and document"))
			Expect(unit.commits).To(BeZero())
		})

		It("should store the permit and echo only the new id", func() {
			res := service.Create(permit.Request{
				Principal: manager,
				Item:      &permit.PermitDto{GroupId: &groupId, DocumentId: &documentId},
			})
			Expect(res.Outcome).To(Equal(core.OutcomeSuccess))
			Expect(res.Item.Id).NotTo(BeNil())
			Expect(unit.commits).To(Equal(1))
		})
	})

	Describe("ReadById", func() {
		It("should fail for an unknown id", func() {
			id := uuid.New()
			res := service.ReadById(permit.Request{Principal: manager, Id: &id})
			Expect(res.Outcome).To(Equal(core.OutcomeFail))
			Expect(res.ErrorMessage).To(Equal("permit was not found"))
		})

		It("should return the stored permit", func() {
			p := addStoredPermit(groupId, documentId)
			res := service.ReadById(permit.Request{Principal: manager, Id: &p.ID})
			Expect(res.Outcome).To(Equal(core.OutcomeSuccess))
			Expect(*res.Item.GroupId).To(Equal(groupId))
			Expect(*res.Item.DocumentId).To(Equal(documentId))
		})
	})

	Describe("DeleteByGroupId", func() {
		It("should remove every permit of the group and succeed on zero matches", func() {
			addStoredPermit(groupId, documentId)
			addStoredPermit(groupId, uuid.New())
			addStoredPermit(uuid.New(), documentId)

			res := service.DeleteByGroupId(permit.Request{Principal: manager, Id: &groupId})
			Expect(res.Outcome).To(Equal(core.OutcomeSuccess))
			Expect(repo.permits).To(HaveLen(1))

			res = service.DeleteByGroupId(permit.Request{Principal: manager, Id: &groupId})
			Expect(res.Outcome).To(Equal(core.OutcomeSuccess))
		})
	})

	Describe("DeleteByDocumentId", func() {
		It("should remove every permit on the document", func() {
			addStoredPermit(groupId, documentId)
			addStoredPermit(uuid.New(), documentId)

			res := service.DeleteByDocumentId(permit.Request{Principal: manager, Id: &documentId})
			Expect(res.Outcome).To(Equal(core.OutcomeSuccess))
			Expect(repo.permits).To(BeEmpty())
		})
	})
})
