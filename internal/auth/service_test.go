package auth_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/docvault/docvault/internal/auth"
	userDatamodel "github.com/docvault/docvault/internal/core/datamodel/user"
	"github.com/docvault/docvault/internal/database"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

type MockUserRepository struct {
	database.UserRepository
	usersByEmail map[string]*userDatamodel.User
	lastChanges  database.Changes
}

func (m *MockUserRepository) ReadByEmail(email string) (*userDatamodel.User, error) {
	u, ok := m.usersByEmail[email]
	if !ok {
		return nil, database.ErrNotFound
	}
	return u, nil
}

func (m *MockUserRepository) UpdateById(id uuid.UUID, changes database.Changes) (bool, error) {
	m.lastChanges = changes
	return true, nil
}

type MockUnit struct {
	database.UnitOfWork
	users     *MockUserRepository
	commits   int
	rollbacks int
}

func (m *MockUnit) Users() database.UserRepository { return m.users }
func (m *MockUnit) Commit() error                  { m.commits++; return nil }
func (m *MockUnit) Rollback() error                { m.rollbacks++; return nil }
func (m *MockUnit) Dispose()                       {}

type MockOpener struct {
	unit *MockUnit
}

func (m *MockOpener) Begin(readOnly bool) (database.UnitOfWork, error) {
	return m.unit, nil
}

var _ = Describe("Auth Service", func() {
	var (
		repo     *MockUserRepository
		unit     *MockUnit
		tokenGen *auth.JWTTokenGenerator
		service  *auth.Service
		stored   *userDatamodel.User
	)

	BeforeEach(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())

		stored = &userDatamodel.User{
			ID:          uuid.New(),
			Name:        "geoff",
			Password:    string(hash),
			Email:       "geoff@example.com",
			Role:        "manager",
			DateCreated: time.Now().UTC(),
		}
		repo = &MockUserRepository{usersByEmail: map[string]*userDatamodel.User{stored.Email: stored}}
		unit = &MockUnit{users: repo}
		tokenGen = auth.NewJWTTokenGenerator("unit-test-secret-key-of-decent-length", time.Hour)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = auth.NewService(&MockOpener{unit: unit}, tokenGen, logger)
	})

	Describe("Authenticate", func() {
		It("should reject an empty email", func() {
			_, err := service.Authenticate(auth.SessionDto{Password: "x"})
			Expect(err).To(BeAssignableToTypeOf(auth.ValidationError{}))
		})

		It("should reject an unknown email with invalid credentials", func() {
			_, err := service.Authenticate(auth.SessionDto{Email: "nobody@example.com", Password: "x"})
			Expect(err).To(MatchError(auth.ErrInvalidCredentials))
		})

		It("should reject a wrong password with invalid credentials", func() {
			_, err := service.Authenticate(auth.SessionDto{Email: stored.Email, Password: "wrong-password"})
			Expect(err).To(MatchError(auth.ErrInvalidCredentials))
		})

		It("should issue a token carrying the user's identity and role", func() {
			token, err := service.Authenticate(auth.SessionDto{Email: stored.Email, Password: "correct-password"})
			Expect(err).NotTo(HaveOccurred())
			Expect(token.Token).NotTo(BeEmpty())

			claims, err := tokenGen.ValidateToken(token.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal(stored.ID.String()))
			Expect(claims.Name).To(Equal("geoff"))
			Expect(claims.Role).To(Equal("manager"))
		})

		It("should stamp the last login and first activation in one committed unit", func() {
			_, err := service.Authenticate(auth.SessionDto{Email: stored.Email, Password: "correct-password"})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastChanges).To(HaveKey("date_last_login"))
			Expect(repo.lastChanges).To(HaveKey("date_activated"))
			Expect(unit.commits).To(Equal(1))
		})

		It("should not stamp activation again for an already active user", func() {
			activated := time.Now().UTC().Add(-24 * time.Hour)
			stored.DateActivated = &activated

			_, err := service.Authenticate(auth.SessionDto{Email: stored.Email, Password: "correct-password"})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastChanges).NotTo(HaveKey("date_activated"))
		})
	})

	Describe("ValidateToken", func() {
		It("should reject garbage", func() {
			_, err := service.ValidateToken("not-a-token")
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})

		It("should reject a token signed with a different secret", func() {
			other := auth.NewJWTTokenGenerator("some-entirely-different-secret-key", time.Hour)
			token, err := other.GenerateToken(stored.ID.String(), stored.Name, stored.Role)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateToken(token)
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})

		It("should reject an expired token", func() {
			expired := auth.NewJWTTokenGenerator("unit-test-secret-key-of-decent-length", -time.Minute)
			token, err := expired.GenerateToken(stored.ID.String(), stored.Name, stored.Role)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateToken(token)
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})
	})
})
