package core_test

import (
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/docvault/docvault/internal/core"
)

func TestCore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Core Suite")
}

var _ = Describe("Principal", func() {
	It("should treat an admin as a manager", func() {
		p := core.Principal{ID: uuid.New(), Role: core.RoleAdmin}
		Expect(p.IsAdmin()).To(BeTrue())
		Expect(p.IsManager()).To(BeTrue())
	})

	It("should not treat a manager as an admin", func() {
		p := core.Principal{ID: uuid.New(), Role: core.RoleManager}
		Expect(p.IsAdmin()).To(BeFalse())
		Expect(p.IsManager()).To(BeTrue())
	})

	It("should grant a basic user neither right", func() {
		p := core.Principal{ID: uuid.New(), Role: core.RoleBasic}
		Expect(p.IsAdmin()).To(BeFalse())
		Expect(p.IsManager()).To(BeFalse())
	})

	It("should report zero for an unauthenticated principal", func() {
		Expect(core.Principal{}.IsZero()).To(BeTrue())
	})

	It("should never match self for a zero principal", func() {
		Expect(core.Principal{}.IsSelf(uuid.Nil)).To(BeFalse())
	})

	It("should match self only on the same id", func() {
		id := uuid.New()
		p := core.Principal{ID: id, Role: core.RoleBasic}
		Expect(p.IsSelf(id)).To(BeTrue())
		Expect(p.IsSelf(uuid.New())).To(BeFalse())
	})
})

var _ = Describe("Response", func() {
	It("should carry the generic message on Error", func() {
		res := core.Errored[struct{}]()
		Expect(res.Outcome).To(Equal(core.OutcomeError))
		Expect(res.ErrorMessage).To(Equal(core.GenericErrorMessage))
	})

	It("should carry the supplied message on Fail", func() {
		res := core.Fail[struct{}]("no such thing")
		Expect(res.Outcome).To(Equal(core.OutcomeFail))
		Expect(res.ErrorMessage).To(Equal("no such thing"))
	})

	It("should carry no message on Success", func() {
		res := core.Done[struct{}]()
		Expect(res.Outcome).To(Equal(core.OutcomeSuccess))
		Expect(res.ErrorMessage).To(BeEmpty())
	})
})
