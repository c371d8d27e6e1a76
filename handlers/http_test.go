package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mymesh/domain"
	"mymesh/interfaces/mock"
	"mymesh/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "s3cret"

var testSelf = domain.ServiceDescriptor{
	Name:    "gateway",
	BaseURL: "http://10.0.0.2:3000",
	Routes:  []domain.RouteDescriptor{{Path: "/v1/echo", Method: "POST", Name: "echo"}},
}

func newTestSecurity(t *testing.T, whitelist ...string) *service.SecurityContext {
	t.Helper()
	security, err := service.NewSecurityContext(testSecret, whitelist, log.NewNopLogger())
	require.NoError(t, err)
	return security
}

func registerHandlers(t *testing.T, registry *mock.PeerRegistryMock, security *service.SecurityContext) *echo.Echo {
	t.Helper()
	e := echo.New()
	server := NewDiscoveryServer(registry, log.NewNopLogger())
	require.NoError(t, RegisterHandlers(e, DefaultPathPrefix, server, security, log.NewNopLogger()))
	return e
}

type errBody struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeErr(t *testing.T, rec *httptest.ResponseRecorder) errBody {
	t.Helper()
	var body errBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Error)
	return body
}

func TestDiscoveryServer_RegisterService(t *testing.T) {
	validBody := `{"name":"profiles","url":"http://10.0.0.1:3000","routes":[{"path":"/profile/:id","method":"GET","name":"getProfile"}]}`

	tests := []struct {
		name           string
		body           string
		auth           string
		registry       *mock.PeerRegistryMock
		expectedStatus int
		expectedCode   string
		wantRegister   int
	}{
		{
			name: "ok",
			body: validBody,
			auth: "Bearer " + testSecret,
			registry: &mock.PeerRegistryMock{
				RegisterFunc: func(incoming domain.ServiceDescriptor) (domain.ServiceDescriptor, error) {
					assert.Equal(t, "profiles", incoming.Name)
					assert.Equal(t, "http://10.0.0.1:3000", incoming.BaseURL)
					assert.Equal(t, []domain.RouteDescriptor{{Path: "/profile/:id", Method: "GET", Name: "getProfile"}}, incoming.Routes)
					return testSelf, nil
				},
			},
			expectedStatus: http.StatusOK,
			wantRegister:   1,
		},
		{
			name:           "401 missing token",
			body:           validBody,
			registry:       &mock.PeerRegistryMock{},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   service.ErrUnauthorized,
		},
		{
			name:           "401 wrong token",
			body:           validBody,
			auth:           "Bearer nope",
			registry:       &mock.PeerRegistryMock{},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   service.ErrUnauthorized,
		},
		{
			name:           "401 not a bearer token",
			body:           validBody,
			auth:           testSecret,
			registry:       &mock.PeerRegistryMock{},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   service.ErrUnauthorized,
		},
		{
			name:           "400 invalid JSON",
			body:           `{invalid`,
			auth:           "Bearer " + testSecret,
			registry:       &mock.PeerRegistryMock{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.ErrBadParameter,
		},
		{
			name:           "400 missing url",
			body:           `{"name":"profiles"}`,
			auth:           "Bearer " + testSecret,
			registry:       &mock.PeerRegistryMock{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.ErrBadParameter,
		},
		{
			name:           "400 relative url",
			body:           `{"name":"profiles","url":"/profiles"}`,
			auth:           "Bearer " + testSecret,
			registry:       &mock.PeerRegistryMock{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.ErrBadParameter,
		},
		{
			name: "500 registry error",
			body: validBody,
			auth: "Bearer " + testSecret,
			registry: &mock.PeerRegistryMock{
				RegisterFunc: func(incoming domain.ServiceDescriptor) (domain.ServiceDescriptor, error) {
					return domain.ServiceDescriptor{}, assert.AnError
				},
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   service.ErrInternalServerError,
			wantRegister:   1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := registerHandlers(t, tt.registry, newTestSecurity(t))
			req := httptest.NewRequest(http.MethodPost, "/_discovery/register", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Len(t, tt.registry.RegisterCalls(), tt.wantRegister)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeErr(t, rec).Error.Code)
				return
			}
			var got ServiceInfo
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, toServiceInfo(testSelf), got)
		})
	}
}

func TestDiscoveryServer_Ping(t *testing.T) {
	tests := []struct {
		name           string
		whitelist      []string
		remoteAddr     string
		auth           string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "ok",
			auth:           "Bearer " + testSecret,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "ok whitelisted",
			whitelist:      []string{"10.0.0.9", "192.0.2.1"},
			remoteAddr:     "192.0.2.1:51000",
			auth:           "Bearer " + testSecret,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "403 not whitelisted",
			whitelist:      []string{"10.0.0.9"},
			remoteAddr:     "192.0.2.1:51000",
			auth:           "Bearer " + testSecret,
			expectedStatus: http.StatusForbidden,
			expectedCode:   service.ErrForbidden,
		},
		{
			name:           "403 before token check",
			whitelist:      []string{"10.0.0.9"},
			remoteAddr:     "192.0.2.1:51000",
			expectedStatus: http.StatusForbidden,
			expectedCode:   service.ErrForbidden,
		},
		{
			name:           "401 whitelisted without token",
			whitelist:      []string{"192.0.2.1"},
			remoteAddr:     "192.0.2.1:51000",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   service.ErrUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := registerHandlers(t, &mock.PeerRegistryMock{}, newTestSecurity(t, tt.whitelist...))
			req := httptest.NewRequest(http.MethodPost, "/_discovery/ping", nil)
			if tt.remoteAddr != "" {
				req.RemoteAddr = tt.remoteAddr
			}
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeErr(t, rec).Error.Code)
				return
			}
			var got PingResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, "OK", got.Status)
		})
	}
}

func TestDiscoveryServer_ListServices(t *testing.T) {
	registry := &mock.PeerRegistryMock{
		SelfFunc: func() domain.ServiceDescriptor { return testSelf },
		ListFunc: func() map[string]domain.PeerRecord {
			return map[string]domain.PeerRecord{
				"profiles": {
					ServiceDescriptor: domain.ServiceDescriptor{
						Name:    "profiles",
						BaseURL: "http://10.0.0.1:3000",
						Routes:  []domain.RouteDescriptor{{Path: "/profile/:id", Method: "GET", Name: "getProfile"}},
					},
					Status: domain.StatusDown,
					Reason: "connection refused",
				},
			}
		},
	}
	e := registerHandlers(t, registry, newTestSecurity(t))

	req := httptest.NewRequest(http.MethodGet, "/_discovery/services", nil)
	req.Header.Set("Authorization", "Bearer "+testSecret)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	thisService, ok := got["thisService"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "gateway", thisService["name"])
	assert.Equal(t, "http://10.0.0.2:3000", thisService["url"])
	peers, ok := got["connectedPeers"].(map[string]any)
	require.True(t, ok)
	profiles, ok := peers["profiles"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "DOWN", profiles["status"])
	assert.Equal(t, "connection refused", profiles["reason"])
	assert.Len(t, profiles["routes"], 1)
}

func TestDiscoveryServer_Unauthorized_ListServices(t *testing.T) {
	registry := &mock.PeerRegistryMock{}
	e := registerHandlers(t, registry, newTestSecurity(t))

	req := httptest.NewRequest(http.MethodGet, "/_discovery/services", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", decodeErr(t, rec).Error.Message)
	assert.Empty(t, registry.SelfCalls())
	assert.Empty(t, registry.ListCalls())
}

func TestRegisterHandlers_CustomPrefix(t *testing.T) {
	e := echo.New()
	server := NewDiscoveryServer(&mock.PeerRegistryMock{}, log.NewNopLogger())
	require.NoError(t, RegisterHandlers(e, "mesh/", server, newTestSecurity(t), log.NewNopLogger()))

	req := httptest.NewRequest(http.MethodPost, "/mesh/ping", nil)
	req.Header.Set("Authorization", "Bearer "+testSecret)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewDiscoveryServer_Panics(t *testing.T) {
	assert.Panics(t, func() { NewDiscoveryServer(nil, log.NewNopLogger()) })
	assert.Panics(t, func() { NewDiscoveryServer(&mock.PeerRegistryMock{}, nil) })
}
