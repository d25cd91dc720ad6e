package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authhttp "authapi/internal/auth/adapters/http"
	"authapi/internal/auth/adapters/http/handlers"
	"authapi/internal/auth/adapters/http/response"
	"authapi/internal/auth/adapters/memory"
	"authapi/internal/auth/adapters/ratelimit"
	"authapi/internal/auth/adapters/services"
	"authapi/internal/auth/app"
	"authapi/internal/auth/domain/entities"
	"authapi/internal/auth/ports/api"
	"authapi/internal/auth/ports/repositories"
)

//nolint:gosec
const (
	testSecret   = "router-test-secret"
	testEmail    = "jane@example.com"
	testPassword = "Str0ng!Pass"
	testName     = "Jane"
)

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

type envelope struct {
	Success   bool              `json:"success"`
	Data      map[string]any    `json:"data"`
	Error     string            `json:"error"`
	Details   []response.Detail `json:"details"`
	Timestamp string            `json:"timestamp"`
}

type options struct {
	repo        repositories.UserRepository
	auth        api.AuthUseCase
	authLimit   int
	devMode     bool
	readyChecks []handlers.ReadyCheck
	corsOrigin  string
	bodyLimit   int
}

type testServer struct {
	app  *fiber.App
	repo *memory.UserRepository
	jwt  *services.ServiceJWT
}

func newServer(t *testing.T, opts options) *testServer {
	t.Helper()

	memRepo := memory.NewUserRepository()
	var repo repositories.UserRepository = memRepo
	if opts.repo != nil {
		repo = opts.repo
	}

	jwtService, err := services.NewJWT(testSecret, time.Hour, services.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	auth := opts.auth
	if auth == nil {
		auth = app.NewAuthUseCase(repo, services.NewBcrypt(bcrypt.MinCost), jwtService)
	}

	authLimit := opts.authLimit
	if authLimit == 0 {
		authLimit = 1000
	}

	shaper := response.NewShaper(
		response.WithClock(func() time.Time { return fixedNow }),
		response.WithErrorDetails(opts.devMode),
	)

	fiberApp := authhttp.NewApp(authhttp.ServerConfig{BodyLimit: opts.bodyLimit}, shaper)
	authhttp.SetupRouter(fiberApp, authhttp.Dependencies{
		Auth:        auth,
		Users:       app.NewUserUseCase(repo, jwtService),
		Shaper:      shaper,
		Limiter:     ratelimit.NewMemoryLimiter(),
		APIRule:     ratelimit.Rule{Name: "api", Limit: 1000, Window: 15 * time.Minute},
		AuthRule:    ratelimit.Rule{Name: "auth", Limit: authLimit, Window: 15 * time.Minute},
		CORSOrigin:  opts.corsOrigin,
		ReadyChecks: opts.readyChecks,
	})

	return &testServer{app: fiberApp, repo: memRepo, jwt: jwtService}
}

func (s *testServer) do(t *testing.T, method, path string, body io.Reader, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.app.Test(req, fiber.TestConfig{Timeout: 5 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

// listen обслуживает приложение на свободном локальном порту и возвращает базовый URL.
// Ошибки чтения запроса (например, слишком большое тело) fasthttp обрабатывает только
// на настоящем соединении, app.Test их не оформляет.
func (s *testServer) listen(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		_ = s.app.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true})
	}()
	t.Cleanup(func() { _ = s.app.Shutdown() })

	return "http://" + ln.Addr().String()
}

func (s *testServer) postJSON(t *testing.T, path string, payload any) (*http.Response, []byte) {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	return s.do(t, http.MethodPost, path, bytes.NewReader(b), nil)
}

func decode(t *testing.T, raw []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return env
}

func signupBody() map[string]any {
	return map[string]any{"email": testEmail, "password": testPassword, "name": testName}
}

type unavailableRepo struct {
	*memory.UserRepository
}

func (unavailableRepo) FindByEmail(context.Context, string) (*entities.User, error) {
	return nil, errors.New("dial tcp 10.0.0.5:5432: connection refused")
}

type panickingAuth struct{}

func (panickingAuth) Signup(context.Context, map[string]any) (*entities.AuthResult, error) {
	panic("boom")
}

func (panickingAuth) Login(context.Context, map[string]any) (*entities.AuthResult, error) {
	return nil, errors.New("secret internal detail")
}
