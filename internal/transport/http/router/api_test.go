package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"business-directory/internal/domain"
	"business-directory/internal/feature/business"
	"business-directory/internal/repo"
	"business-directory/internal/service"
	"business-directory/internal/testutil"
	"business-directory/internal/transport/http/handler"
	"business-directory/internal/transport/http/router"
)

func init() { gin.SetMode(gin.TestMode) }

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Pages   int             `json:"pages"`
	Data    json.RawMessage `json:"data"`
}

func newEngine(t *testing.T, o router.Options) *gin.Engine {
	t.Helper()
	svc := service.NewBusinessService(repo.NewBusinessRepo(testutil.NewDB(t)), business.NewBuilder(10, 100))
	for _, in := range business.SeedSet() {
		in := in
		_, err := svc.Create(context.Background(), &in)
		require.NoError(t, err)
	}
	return router.NewAPIEngine(zap.NewNop(), o, handler.NewBusinessHandler(svc))
}

func do(t *testing.T, r http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func list(t *testing.T, env envelope) []domain.Business {
	t.Helper()
	var out []domain.Business
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func one(t *testing.T, env envelope) domain.Business {
	t.Helper()
	var out domain.Business
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

const newBusiness = `{
	"name": "Northern Code Works",
	"email": "hello@northerncode.io",
	"phone": "1134960000",
	"category": "Technology",
	"address": "5 Mill Lane",
	"city": "Leeds",
	"postcode": "LS1 4AP",
	"website": "https://northerncode.io"
}`

func TestHealthAndUnknownRoute(t *testing.T) {
	r := newEngine(t, router.Options{})

	w, env := do(t, r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Server is running", env.Message)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w, env = do(t, r, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Route not found", env.Message)
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newEngine(t, router.Options{})
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestListBusinesses(t *testing.T) {
	r := newEngine(t, router.Options{})

	w, env := do(t, r, http.MethodGet, "/api/businesses", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.EqualValues(t, 10, env.Total)
	assert.Equal(t, 1, env.Page)
	assert.Equal(t, 1, env.Pages)
	items := list(t, env)
	require.Len(t, items, 10)
	assert.Equal(t, "Artisan Bakery & Cafe", items[0].Name, "newest first")
	assert.NotEmpty(t, items[0].ID)

	_, env = do(t, r, http.MethodGet, "/api/businesses?category=Technology", "")
	assert.EqualValues(t, 2, env.Total)
	for _, b := range list(t, env) {
		assert.Equal(t, "Technology", b.Category)
	}

	_, env = do(t, r, http.MethodGet, "/api/businesses?category=All&city=london", "")
	assert.EqualValues(t, 4, env.Total)

	_, env = do(t, r, http.MethodGet, "/api/businesses?search=coffee&page=1&limit=1", "")
	assert.EqualValues(t, 1, env.Total)
	assert.Equal(t, 1, env.Pages)
	items = list(t, env)
	require.Len(t, items, 1)
	assert.Equal(t, "The Daily Brew Coffee Shop", items[0].Name)

	_, env = do(t, r, http.MethodGet, "/api/businesses?limit=3&page=2", "")
	assert.EqualValues(t, 10, env.Total)
	assert.Equal(t, 2, env.Page)
	assert.Equal(t, 4, env.Pages)
	assert.Len(t, list(t, env), 3)

	_, env = do(t, r, http.MethodGet, "/api/businesses?search=zzz", "")
	assert.True(t, env.Success)
	assert.Zero(t, env.Total)
	assert.Zero(t, env.Pages)
	assert.Empty(t, list(t, env))
	assert.Equal(t, "[]", string(env.Data))
}

func TestListRejectsBadWindow(t *testing.T) {
	r := newEngine(t, router.Options{})

	w, env := do(t, r, http.MethodGet, "/api/businesses?page=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Query validation failed: page: Page must be a positive integer", env.Message)

	w, env = do(t, r, http.MethodGet, "/api/businesses?limit=1000", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Query validation failed: limit: Limit cannot exceed 100", env.Message)

	w, _ = do(t, r, http.MethodGet, "/api/businesses?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = do(t, r, http.MethodGet, "/api/businesses?page=92233720368547760&limit=100", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Query validation failed: page: Page is out of range", env.Message)
}

func TestCategories(t *testing.T) {
	r := newEngine(t, router.Options{})

	w, env := do(t, r, http.MethodGet, "/api/businesses/meta/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	var cats []string
	require.NoError(t, json.Unmarshal(env.Data, &cats))
	assert.Equal(t, domain.CategoryOptions(), cats)
}

func TestBusinessLifecycle(t *testing.T) {
	r := newEngine(t, router.Options{})

	w, env := do(t, r, http.MethodPost, "/api/businesses", newBusiness)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, env.Success)
	assert.Equal(t, "Business created successfully", env.Message)
	created := one(t, env)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, domain.DefaultImage, created.Image)
	assert.Contains(t, string(env.Data), `"_id":"`+created.ID+`"`)

	w, env = do(t, r, http.MethodGet, "/api/businesses/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Northern Code Works", one(t, env).Name)

	_, env = do(t, r, http.MethodGet, "/api/businesses?category=Technology", "")
	assert.EqualValues(t, 3, env.Total)
	assert.Equal(t, created.ID, list(t, env)[0].ID)

	w, env = do(t, r, http.MethodPut, "/api/businesses/"+created.ID, `{"city":"York","rating":4.2}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Business updated successfully", env.Message)
	updated := one(t, env)
	assert.Equal(t, "York", updated.City)
	assert.Equal(t, 4.2, updated.Rating)
	assert.Equal(t, "Northern Code Works", updated.Name)

	w, env = do(t, r, http.MethodDelete, "/api/businesses/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Business deleted successfully", env.Message)
	assert.Equal(t, created.ID, one(t, env).ID)

	w, env = do(t, r, http.MethodDelete, "/api/businesses/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Business not found", env.Message)

	w, _ = do(t, r, http.MethodGet, "/api/businesses/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateRejectsInvalid(t *testing.T) {
	r := newEngine(t, router.Options{})

	w, env := do(t, r, http.MethodPost, "/api/businesses", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Business validation failed: name: Business name is required", env.Message)

	body := strings.Replace(newBusiness, `"Technology"`, `"Space"`, 1)
	w, env = do(t, r, http.MethodPost, "/api/businesses", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Business validation failed: category: Please provide a valid category", env.Message)

	w, env = do(t, r, http.MethodPost, "/api/businesses", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)

	_, env = do(t, r, http.MethodGet, "/api/businesses", "")
	assert.EqualValues(t, 10, env.Total, "rejected creates leave the store untouched")
}

func TestUpdateErrors(t *testing.T) {
	r := newEngine(t, router.Options{})

	w, env := do(t, r, http.MethodPut, "/api/businesses/unknown", `{"city":"York"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Business not found", env.Message)

	w, env = do(t, r, http.MethodPut, "/api/businesses/unknown", `{"email":"bad"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Business validation failed: email: Please provide a valid email", env.Message)
}

func TestUpdateRejectsNullRequiredField(t *testing.T) {
	r := newEngine(t, router.Options{})
	_, env := do(t, r, http.MethodGet, "/api/businesses?limit=1", "")
	target := list(t, env)[0]

	w, env := do(t, r, http.MethodPut, "/api/businesses/"+target.ID, `{"category": null}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Business validation failed: category: Category is required", env.Message)

	_, env = do(t, r, http.MethodGet, "/api/businesses/"+target.ID, "")
	assert.Equal(t, target.Category, one(t, env).Category, "rejected update leaves the record untouched")

	w, env = do(t, r, http.MethodPut, "/api/businesses/"+target.ID, `{"description": null, "reviews": 7}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := one(t, env)
	assert.Equal(t, 7, got.Reviews)
	assert.Equal(t, target.Description, got.Description, "null optional fields are left as they are")
}

func TestBodyTooLarge(t *testing.T) {
	r := newEngine(t, router.Options{MaxBodyBytes: 64})

	w, env := do(t, r, http.MethodPost, "/api/businesses", newBusiness)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "Request body too large", env.Message)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newEngine(t, router.Options{})
	do(t, r, http.MethodGet, "/api/health", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "directory_http_requests_total")
	assert.Contains(t, w.Body.String(), "business_mutations_total")
}

type panicModule struct{}

func (panicModule) MountAPI(g *gin.RouterGroup) {
	g.GET("/explode", func(*gin.Context) { panic("kaboom") })
}

func TestPanicIsRecoveredOnce(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := router.NewAPIEngine(zap.New(core), router.Options{}, panicModule{})

	w, env := do(t, r, http.MethodGet, "/api/explode", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Internal server error", env.Message)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, 1, logs.FilterMessage("[Recovery from panic]").Len())
}
