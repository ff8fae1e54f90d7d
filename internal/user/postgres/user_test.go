package postgres_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	userDatamodel "github.com/docvault/docvault/internal/core/datamodel/user"
	"github.com/docvault/docvault/internal/database"
	userPostgres "github.com/docvault/docvault/internal/user/postgres"
)

func TestUserPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Postgres Suite")
}

var _ = Describe("User Repository", func() {
	var (
		db   *gorm.DB
		repo *userPostgres.UserRepository
	)

	makeUser := func(name, email string) *userDatamodel.User {
		return &userDatamodel.User{
			ID:          uuid.New(),
			Name:        name,
			Password:    "$2a$10$hash",
			Email:       email,
			Role:        "basic",
			DateCreated: time.Now().UTC(),
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&userDatamodel.User{})
		Expect(err).NotTo(HaveOccurred())

		repo = userPostgres.NewUserRepository(db)
	})

	Describe("Create", func() {
		It("should store a user and return its id", func() {
			u := makeUser("geoff", "geoff@example.com")
			id, err := repo.Create(u)
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal(u.ID))
		})

		It("should reject a duplicate name", func() {
			_, err := repo.Create(makeUser("geoff", "geoff@example.com"))
			Expect(err).NotTo(HaveOccurred())

			_, err = repo.Create(makeUser("geoff", "other@example.com"))
			Expect(err).To(HaveOccurred())
		})

		It("should reject a duplicate email", func() {
			_, err := repo.Create(makeUser("geoff", "geoff@example.com"))
			Expect(err).NotTo(HaveOccurred())

			_, err = repo.Create(makeUser("other", "geoff@example.com"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ReadById", func() {
		It("should return the stored user", func() {
			u := makeUser("geoff", "geoff@example.com")
			_, err := repo.Create(u)
			Expect(err).NotTo(HaveOccurred())

			stored, err := repo.ReadById(u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Name).To(Equal("geoff"))
			Expect(stored.Email).To(Equal("geoff@example.com"))
		})

		It("should return ErrNotFound for an unknown id", func() {
			_, err := repo.ReadById(uuid.New())
			Expect(err).To(MatchError(database.ErrNotFound))
		})
	})

	Describe("ReadByEmail", func() {
		It("should find a user by email", func() {
			u := makeUser("geoff", "geoff@example.com")
			_, err := repo.Create(u)
			Expect(err).NotTo(HaveOccurred())

			stored, err := repo.ReadByEmail("geoff@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.ID).To(Equal(u.ID))
		})

		It("should return ErrNotFound for an unknown email", func() {
			_, err := repo.ReadByEmail("nobody@example.com")
			Expect(err).To(MatchError(database.ErrNotFound))
		})
	})

	Describe("ReadAll", func() {
		It("should return users ordered by creation date", func() {
			first := makeUser("first", "first@example.com")
			first.DateCreated = time.Now().UTC().Add(-time.Hour)
			second := makeUser("second", "second@example.com")

			_, err := repo.Create(second)
			Expect(err).NotTo(HaveOccurred())
			_, err = repo.Create(first)
			Expect(err).NotTo(HaveOccurred())

			users, err := repo.ReadAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(2))
			Expect(users[0].Name).To(Equal("first"))
			Expect(users[1].Name).To(Equal("second"))
		})

		It("should return an empty slice for an empty table", func() {
			users, err := repo.ReadAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(BeEmpty())
		})
	})

	Describe("UpdateById", func() {
		var u *userDatamodel.User

		BeforeEach(func() {
			u = makeUser("geoff", "geoff@example.com")
			_, err := repo.Create(u)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should write only the supplied columns", func() {
			updated, err := repo.UpdateById(u.ID, database.Changes{"email": "new@example.com"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated).To(BeTrue())

			stored, err := repo.ReadById(u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Email).To(Equal("new@example.com"))
			Expect(stored.Name).To(Equal("geoff"))
			Expect(stored.Role).To(Equal("basic"))
		})

		It("should report false for an unknown id", func() {
			updated, err := repo.UpdateById(uuid.New(), database.Changes{"email": "new@example.com"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated).To(BeFalse())
		})
	})

	Describe("DeleteById", func() {
		It("should remove the row and report true", func() {
			u := makeUser("geoff", "geoff@example.com")
			_, err := repo.Create(u)
			Expect(err).NotTo(HaveOccurred())

			deleted, err := repo.DeleteById(u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())

			_, err = repo.ReadById(u.ID)
			Expect(err).To(MatchError(database.ErrNotFound))
		})

		It("should report false for an unknown id", func() {
			deleted, err := repo.DeleteById(uuid.New())
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeFalse())
		})
	})

	Describe("CountByColumnValue", func() {
		It("should count matching rows", func() {
			_, err := repo.Create(makeUser("geoff", "geoff@example.com"))
			Expect(err).NotTo(HaveOccurred())

			count, err := repo.CountByColumnValue("name", "geoff")
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))

			count, err = repo.CountByColumnValue("name", "nobody")
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})
	})
})
