package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/dictcache"
	"github.com/unkn0wn-root/dictcache/hashstore"
	"github.com/unkn0wn-root/dictcache/store/memstore"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) AddConfig(ctx context.Context, e dictcache.Entry) (string, error) {
	args := m.Called(ctx, e)
	return args.String(0), args.Error(1)
}

func (m *mockService) GetAllGrouped(ctx context.Context) map[string][]dictcache.Entry {
	return m.Called(ctx).Get(0).(map[string][]dictcache.Entry)
}

func (m *mockService) GetByType(ctx context.Context, typ string) []dictcache.Entry {
	return m.Called(ctx, typ).Get(0).([]dictcache.Entry)
}

func (m *mockService) Refresh(template dictcache.Entry) { m.Called(template) }

func (m *mockService) RefreshNow(ctx context.Context, template dictcache.Entry) error {
	return m.Called(ctx, template).Error(0)
}

func (m *mockService) Close(ctx context.Context) error { return m.Called(ctx).Error(0) }

func newRouter(dict dictcache.Service) *http.ServeMux {
	router := http.NewServeMux()
	AddApis(dict, router)
	return router
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAddConfig_ReturnsID(t *testing.T) {
	svc := new(mockService)
	svc.On("AddConfig", mock.Anything, mock.MatchedBy(func(e dictcache.Entry) bool {
		return e.Type == "color" && e.Code == "r" && e.Status == dictcache.StatusValid
	})).Return("id-1", nil)

	rec := serve(newRouter(svc), jsonRequest(t, http.MethodPost, "/api/dict", map[string]any{
		"type": " color ", "code": "r", "value": "red",
	}))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	var resp addConfigResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "id-1", resp.ID)
	svc.AssertExpectations(t)
}

func TestAddConfig_ExplicitStatusIsKept(t *testing.T) {
	svc := new(mockService)
	svc.On("AddConfig", mock.Anything, mock.MatchedBy(func(e dictcache.Entry) bool {
		return e.Status == dictcache.StatusDisabled
	})).Return("id-2", nil)

	rec := serve(newRouter(svc), jsonRequest(t, http.MethodPost, "/api/dict", map[string]any{
		"type": "color", "status": 0,
	}))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	svc.AssertExpectations(t)
}

func TestAddConfig_InvalidBody(t *testing.T) {
	svc := new(mockService)
	req := httptest.NewRequest(http.MethodPost, "/api/dict", bytes.NewBufferString("{"))

	rec := serve(newRouter(svc), req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "AddConfig", mock.Anything, mock.Anything)
}

func TestAddConfig_MissingType(t *testing.T) {
	svc := new(mockService)

	rec := serve(newRouter(svc), jsonRequest(t, http.MethodPost, "/api/dict", map[string]any{"code": "r"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "type is required")
}

func TestAddConfig_PersistFailure(t *testing.T) {
	svc := new(mockService)
	svc.On("AddConfig", mock.Anything, mock.Anything).Return("", errors.New("duplicate key"))

	rec := serve(newRouter(svc), jsonRequest(t, http.MethodPost, "/api/dict", map[string]any{"type": "color"}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "duplicate key")
}

func TestListDict(t *testing.T) {
	svc := new(mockService)
	svc.On("GetAllGrouped", mock.Anything).Return(map[string][]dictcache.Entry{
		"color": {{ID: "1", Type: "color", Code: "r"}},
	})

	rec := serve(newRouter(svc), httptest.NewRequest(http.MethodGet, "/api/dict", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string][]dictcache.Entry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got["color"], 1)
	assert.Equal(t, "r", got["color"][0].Code)
}

func TestDictByType_EmptyIsArray(t *testing.T) {
	svc := new(mockService)
	svc.On("GetByType", mock.Anything, "size").Return([]dictcache.Entry{})

	rec := serve(newRouter(svc), httptest.NewRequest(http.MethodGet, "/api/dict/size", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
	svc.AssertExpectations(t)
}

func TestRefresh(t *testing.T) {
	svc := new(mockService)
	svc.On("Refresh", dictcache.Entry{}).Return()

	rec := serve(newRouter(svc), httptest.NewRequest(http.MethodPost, "/api/dict/refresh", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	svc.AssertExpectations(t)
}

func TestMethodNotAllowed(t *testing.T) {
	svc := new(mockService)

	rec := serve(newRouter(svc), httptest.NewRequest(http.MethodDelete, "/api/dict", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestEndToEnd_AddThenRead(t *testing.T) {
	st := memstore.New()
	svc, err := dictcache.New(dictcache.Options{
		Store:        st,
		HashStore:    hashstore.NewMemory(),
		PersistOnAdd: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close(context.Background()) })
	router := newRouter(svc)

	rec := serve(router, jsonRequest(t, http.MethodPost, "/api/dict", map[string]any{
		"type": "color", "code": "r", "value": "red",
	}))
	require.Equal(t, http.StatusAccepted, rec.Code)

	require.Eventually(t, func() bool {
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/dict/color", nil))
		var got []dictcache.Entry
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			return false
		}
		return len(got) == 1 && got[0].Value == "red"
	}, time.Second, 5*time.Millisecond)
}
