package user_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/go-chi/chi"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/docvault/docvault/internal"
	"github.com/docvault/docvault/internal/core"
	documentDatamodel "github.com/docvault/docvault/internal/core/datamodel/document"
	groupDatamodel "github.com/docvault/docvault/internal/core/datamodel/group"
	membershipDatamodel "github.com/docvault/docvault/internal/core/datamodel/membership"
	permitDatamodel "github.com/docvault/docvault/internal/core/datamodel/permit"
	userDatamodel "github.com/docvault/docvault/internal/core/datamodel/user"
	"github.com/docvault/docvault/internal/database"
	"github.com/docvault/docvault/internal/user"
)

var handlerDBSequence int

var _ = Describe("User Handler Integration", func() {
	var (
		router  *chi.Mux
		handler *user.Handler
		admin   core.Principal
	)

	asPrincipal := func(req *http.Request, p core.Principal) *http.Request {
		return req.WithContext(internal.ContextWithPrincipal(req.Context(), p))
	}

	BeforeEach(func() {
		handlerDBSequence++
		dsn := fmt.Sprintf("file:user_handler_%d?mode=memory&cache=shared", handlerDBSequence)
		db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&userDatamodel.User{},
			&groupDatamodel.Group{},
			&membershipDatamodel.Membership{},
			&permitDatamodel.Permit{},
			&documentDatamodel.Document{},
		)
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := user.NewService(database.NewManager(db), bcrypt.MinCost, slogger)
		handler = user.NewHandler(service, slogger)

		router = chi.NewRouter()
		router.Post("/users", handler.Create)
		router.Get("/users", handler.List)
		router.Get("/users/{id}", handler.Get)
		router.Delete("/users/{id}", handler.Delete)

		admin = core.Principal{ID: uuid.New(), Role: core.RoleAdmin}
	})

	Describe("POST /users", func() {
		It("should create a user and respond 201 with the new id", func() {
			body, _ := json.Marshal(map[string]string{
				"name":     "geoff",
				"email":    "geoff@example.com",
				"password": "passwordfoo",
			})
			req := asPrincipal(httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body)), admin)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusCreated))

			var res core.Response[user.UserDto]
			Expect(json.Unmarshal(rec.Body.Bytes(), &res)).To(Succeed())
			Expect(res.Outcome).To(Equal(core.OutcomeSuccess))
			Expect(res.Item.Id).NotTo(BeNil())
			Expect(res.Item.Password).To(BeNil())
		})

		It("should respond 400 with a Fail envelope for a duplicate name", func() {
			body, _ := json.Marshal(map[string]string{
				"name":     "geoff",
				"email":    "geoff@example.com",
				"password": "passwordfoo",
			})
			req := asPrincipal(httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body)), admin)
			router.ServeHTTP(httptest.NewRecorder(), req)

			body, _ = json.Marshal(map[string]string{
				"name":     "geoff",
				"email":    "other@example.com",
				"password": "passwordfoo",
			})
			req = asPrincipal(httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body)), admin)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var res core.Response[user.UserDto]
			Expect(json.Unmarshal(rec.Body.Bytes(), &res)).To(Succeed())
			Expect(res.Outcome).To(Equal(core.OutcomeFail))
			Expect(res.ErrorMessage).To(Equal("requested new user name already in use"))
		})

		It("should respond 400 for a caller without admin rights", func() {
			body, _ := json.Marshal(map[string]string{
				"name":     "geoff",
				"email":    "geoff@example.com",
				"password": "passwordfoo",
			})
			caller := core.Principal{ID: uuid.New(), Role: core.RoleBasic}
			req := asPrincipal(httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body)), caller)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /users/{id}", func() {
		It("should respond 400 for a malformed id", func() {
			req := asPrincipal(httptest.NewRequest(http.MethodGet, "/users/not-a-uuid", nil), admin)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should round-trip a created user without password material", func() {
			body, _ := json.Marshal(map[string]string{
				"name":     "geoff",
				"email":    "geoff@example.com",
				"password": "passwordfoo",
			})
			req := asPrincipal(httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body)), admin)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			var created core.Response[user.UserDto]
			Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())

			req = asPrincipal(httptest.NewRequest(http.MethodGet, "/users/"+created.Item.Id.String(), nil), admin)
			rec = httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var res core.Response[user.UserDto]
			Expect(json.Unmarshal(rec.Body.Bytes(), &res)).To(Succeed())
			Expect(*res.Item.Name).To(Equal("geoff"))
			Expect(res.Item.Password).To(BeNil())
		})
	})

	Describe("DELETE /users/{id}", func() {
		It("should respond 400 with a Fail envelope for an unknown user", func() {
			req := asPrincipal(httptest.NewRequest(http.MethodDelete, "/users/"+uuid.NewString(), nil), admin)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var res core.Response[user.UserDto]
			Expect(json.Unmarshal(rec.Body.Bytes(), &res)).To(Succeed())
			Expect(res.ErrorMessage).To(Equal("user was not deleted"))
		})
	})
})
