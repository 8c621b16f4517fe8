package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/wa-group-directory/internal/api/dto"
	"github.com/spec-kit/wa-group-directory/internal/api/http/handlers"
	"github.com/spec-kit/wa-group-directory/internal/auth"
	"github.com/spec-kit/wa-group-directory/internal/config"
	"github.com/spec-kit/wa-group-directory/internal/domain"
	"github.com/spec-kit/wa-group-directory/internal/events"
	"github.com/spec-kit/wa-group-directory/internal/observability"
	"github.com/spec-kit/wa-group-directory/internal/persistence"
	"github.com/spec-kit/wa-group-directory/internal/repository"
	"github.com/spec-kit/wa-group-directory/internal/service"
)

type stubGroupRepo struct {
	nextID int64
	rows   map[int64]*domain.Group
}

func newStubGroupRepo() *stubGroupRepo {
	return &stubGroupRepo{nextID: 1, rows: make(map[int64]*domain.Group)}
}

func (r *stubGroupRepo) Create(_ context.Context, group *domain.Group) error {
	group.ID = r.nextID
	r.nextID++
	group.CreatedAt = time.Now()
	copied := *group
	r.rows[group.ID] = &copied
	return nil
}

func (r *stubGroupRepo) GetByID(_ context.Context, id int64) (*domain.Group, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *row
	return &copied, nil
}

func (r *stubGroupRepo) Update(_ context.Context, id int64, update repository.GroupUpdate) (*domain.Group, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if update.Nama != nil {
		row.Nama = *update.Nama
	}
	if update.Link != nil {
		row.Link = *update.Link
	}
	if update.Jenis != nil {
		row.Jenis = *update.Jenis
	}
	if update.Status != nil {
		row.Status = *update.Status
	}
	copied := *row
	return &copied, nil
}

func (r *stubGroupRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.rows, id)
	return nil
}

func (r *stubGroupRepo) SetStatus(_ context.Context, id int64, status domain.GroupStatus) (*domain.Group, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	row.Status = status
	copied := *row
	return &copied, nil
}

func (r *stubGroupRepo) ListWithFilter(_ context.Context, filter repository.GroupFilter) ([]domain.Group, error) {
	var result []domain.Group
	for _, row := range r.rows {
		if filter.Search != nil && !strings.Contains(strings.ToLower(row.Nama), strings.ToLower(strings.TrimSpace(*filter.Search))) {
			continue
		}
		if filter.Jenis != nil && row.Jenis != *filter.Jenis {
			continue
		}
		if filter.Status != nil && row.Status != *filter.Status {
			continue
		}
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (r *stubGroupRepo) DistinctJenis(_ context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	var result []string
	for _, row := range r.rows {
		if _, ok := seen[row.Jenis]; !ok {
			seen[row.Jenis] = struct{}{}
			result = append(result, row.Jenis)
		}
	}
	sort.Strings(result)
	return result, nil
}

type stubUserRepo struct {
	user *domain.User
}

func (r *stubUserRepo) Upsert(_ context.Context, user *domain.User) error {
	r.user = user
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.user != nil && r.user.Username == username {
		return r.user, nil
	}
	return nil, pgx.ErrNoRows
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	hash, err := auth.HashPassword("raka20", 4)
	require.NoError(t, err)

	userRepo := &stubUserRepo{user: &domain.User{ID: 1, Username: "raka20", PasswordHash: hash}}
	groupRepo := newStubGroupRepo()

	authCfg := config.AuthConfig{JWTSecret: "test-secret", TokenTTLHours: 24}
	authService := service.NewAuthService(authCfg, userRepo)
	groupService := service.NewGroupService(groupRepo, events.NewInMemoryDispatcher())
	resolverService := service.NewResolverService(config.ResolverConfig{FetchTimeoutSeconds: 2})

	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", &persistence.Postgres{}, &persistence.Redis{}, metrics),
		Users:          handlers.NewUsersHandler(authService),
		Groups:         handlers.NewGroupsHandler(groupService),
		Resolver:       handlers.NewResolverHandler(resolverService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, payload
}

func loginToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/user/login", "", fiber.Map{
		"username": "raka20", "password": "raka20",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func errorMessage(t *testing.T, body []byte) string {
	t.Helper()
	var out struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Error
}

func TestLoginEndpoint(t *testing.T) {
	app := newTestApp(t)

	t.Run("success", func(t *testing.T) {
		loginToken(t, app)
	})

	t.Run("missing username", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/api/user/login", "", fiber.Map{"password": "1234"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Username & password wajib diisi", errorMessage(t, body))
	})

	t.Run("unknown user", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/api/user/login", "", fiber.Map{
			"username": "notexist", "password": "1234",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "User tidak ditemukan", errorMessage(t, body))
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/api/user/login", "", fiber.Map{
			"username": "raka20", "password": "salah",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Password salah", errorMessage(t, body))
	})
}

func TestAuthGate(t *testing.T) {
	app := newTestApp(t)
	payload := fiber.Map{"nama": "UT Hukum", "link": "https://wa.link/yyy", "jenis": "MABA"}

	t.Run("missing token", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/api/groups", "", payload)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Unauthorized", errorMessage(t, body))
	})

	t.Run("malformed token", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/api/groups", "not-a-token", payload)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid token", errorMessage(t, body))
	})

	t.Run("token signed with different key", func(t *testing.T) {
		other := auth.NewTokenManager("other-secret", 24)
		token, _, err := other.GenerateToken(1, "raka20")
		require.NoError(t, err)

		resp, body := doJSON(t, app, http.MethodPost, "/api/groups", token, payload)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid token", errorMessage(t, body))
	})

	t.Run("listing stays public", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/api/groups", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestGroupLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := loginToken(t, app)

	// create
	resp, body := doJSON(t, app, http.MethodPost, "/api/groups", token, fiber.Map{
		"nama": "UT Manajemen", "link": "https://wa.link/xxx", "jenis": "MABA",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created dto.GroupResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "AKTIF", created.Status)
	require.NotZero(t, created.ID)
	idPath := "/api/groups/" + strconvID(created.ID)

	// create with missing fields
	resp, body = doJSON(t, app, http.MethodPost, "/api/groups", token, fiber.Map{"nama": "UT PGSD"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Nama, link, jenis wajib diisi", errorMessage(t, body))

	// search
	resp, body = doJSON(t, app, http.MethodGet, "/api/groups?search=manajemen", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []dto.GroupResponse
	require.NoError(t, json.Unmarshal(body, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "UT Manajemen", listed[0].Nama)

	// jenis projection
	resp, body = doJSON(t, app, http.MethodGet, "/api/groups/jenis", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var jenis []string
	require.NoError(t, json.Unmarshal(body, &jenis))
	assert.Equal(t, []string{"MABA"}, jenis)

	// update with empty body keeps row intact
	resp, body = doJSON(t, app, http.MethodPut, idPath, token, fiber.Map{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated dto.GroupResponse
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, created.Nama, updated.Nama)
	assert.Equal(t, created.Status, updated.Status)

	// status change
	resp, body = doJSON(t, app, http.MethodPatch, idPath+"/status", token, fiber.Map{"status": "NONAKTIF"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "NONAKTIF", updated.Status)

	// invalid status change
	resp, body = doJSON(t, app, http.MethodPatch, idPath+"/status", token, fiber.Map{"status": "ARCHIVED"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Status harus AKTIF atau NONAKTIF", errorMessage(t, body))

	// delete
	resp, _ = doJSON(t, app, http.MethodDelete, idPath, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// second delete fails
	resp, body = doJSON(t, app, http.MethodDelete, idPath, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Group tidak ditemukan", errorMessage(t, body))
}

func TestResolveEndpoint_MissingURL(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/resolve-wa-link", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "URL wajib diisi", errorMessage(t, body))
}

func TestInvalidIDPath(t *testing.T) {
	app := newTestApp(t)
	token := loginToken(t, app)

	resp, body := doJSON(t, app, http.MethodDelete, "/api/groups/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "ID tidak valid", errorMessage(t, body))
}

func strconvID(id int64) string {
	return strconv.FormatInt(id, 10)
}
