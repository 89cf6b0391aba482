package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gin-gonic/gin"

	"github.com/verigate/verigate/internal/models"
	"github.com/verigate/verigate/internal/services"
	"github.com/verigate/verigate/internal/store"
	"github.com/verigate/verigate/pkg/mail"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testDBSeq atomic.Int64

type routerEnv struct {
	router *gin.Engine
	db     *gorm.DB
	store  *store.GormAccountStore
	mailer *mail.MemoryMailer
	svc    *services.AccountService
}

func newRouterEnv(t *testing.T) *routerEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:api_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Account{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	accounts, err := store.NewGormAccountStore(db)
	require.NoError(t, err)

	mailer := mail.NewMemoryMailer()
	svc, err := services.NewAccountService(accounts, mailer,
		services.WithBaseURL("http://localhost:3000"),
		services.WithBcryptCost(bcrypt.MinCost),
	)
	require.NoError(t, err)

	router, err := NewRouter(db, svc)
	require.NoError(t, err)

	return &routerEnv{router: router, db: db, store: accounts, mailer: mailer, svc: svc}
}

func (e *routerEnv) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *routerEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (e *routerEnv) signUpAlice(t *testing.T) {
	t.Helper()

	rec := e.postForm(t, "/", url.Values{
		"userName":  {"Alice"},
		"userPass":  {"Secr3t!"},
		"userEmail": {"alice@example.com"},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/verify/email-sent", rec.Header().Get("Location"))

	// Signup persistence is detached from the response; settle it before
	// asserting on state.
	e.svc.Drain()
}

func (e *routerEnv) aliceToken(t *testing.T) string {
	t.Helper()

	var account models.Account
	require.NoError(t, e.db.First(&account, "email = ?", "alice@example.com").Error)
	require.NotEmpty(t, account.VerificationToken)
	return account.VerificationToken
}

func TestStaticPages(t *testing.T) {
	env := newRouterEnv(t)

	for path, marker := range map[string]string{
		"/":                  "userName",
		"/verify/email-sent": "verification link",
		"/login":             "loginEmail",
		"/success":           "Success",
	} {
		rec := env.get(t, path)
		require.Equal(t, http.StatusOK, rec.Code, "path %s", path)
		require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		require.Contains(t, rec.Body.String(), marker, "path %s", path)
	}
}

func TestSignupVerifyLoginScenario(t *testing.T) {
	env := newRouterEnv(t)

	env.signUpAlice(t)

	var account models.Account
	require.NoError(t, env.db.First(&account, "email = ?", "alice@example.com").Error)
	require.False(t, account.IsVerified)
	require.NotEqual(t, "Secr3t!", account.PasswordHash)
	require.Len(t, account.VerificationToken, 64)

	msg, ok := env.mailer.Last()
	require.True(t, ok)
	require.Contains(t, msg.Body, "/verify/users/"+account.VerificationToken)

	rec := env.get(t, "/verify/users/"+account.VerificationToken)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/success", rec.Header().Get("Location"))

	require.NoError(t, env.db.First(&account, "email = ?", "alice@example.com").Error)
	require.True(t, account.IsVerified)
	require.Empty(t, account.VerificationToken)

	rec = env.postForm(t, "/login", url.Values{
		"loginEmail":    {"alice@example.com"},
		"loginPassword": {"Secr3t!"},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/success", rec.Header().Get("Location"))

	rec = env.postForm(t, "/login", url.Values{
		"loginEmail":    {"alice@example.com"},
		"loginPassword": {"wrong"},
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Incorrect password", rec.Body.String())

	// Failed login changes nothing.
	require.NoError(t, env.db.First(&account, "email = ?", "alice@example.com").Error)
	require.True(t, account.IsVerified)
}

func TestSignupAlwaysRedirectsToPendingPage(t *testing.T) {
	env := newRouterEnv(t)

	// Even an empty form lands on the pending page; the flow gives no
	// synchronous feedback about persistence.
	rec := env.postForm(t, "/", url.Values{})
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/verify/email-sent", rec.Header().Get("Location"))
}

func TestVerifyUnknownTokenReturnsPlainTextNotFound(t *testing.T) {
	env := newRouterEnv(t)

	rec := env.get(t, "/verify/users/deadbeef")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestVerifyTokenReplay(t *testing.T) {
	env := newRouterEnv(t)
	env.signUpAlice(t)
	token := env.aliceToken(t)

	rec := env.get(t, "/verify/users/"+token)
	require.Equal(t, http.StatusFound, rec.Code)

	rec = env.get(t, "/verify/users/"+token)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginBeforeVerification(t *testing.T) {
	env := newRouterEnv(t)
	env.signUpAlice(t)

	rec := env.postForm(t, "/login", url.Values{
		"loginEmail":    {"alice@example.com"},
		"loginPassword": {"Secr3t!"},
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "not verified")
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newRouterEnv(t)

	rec := env.postForm(t, "/login", url.Values{
		"loginEmail":    {"nobody@example.com"},
		"loginPassword": {"whatever"},
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	env := newRouterEnv(t)

	rec := env.get(t, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "up")
}

func TestMetricsEndpoint(t *testing.T) {
	env := newRouterEnv(t)

	rec := env.get(t, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "go_goroutines")
}
