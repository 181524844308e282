package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"travel-backend/config"
	"travel-backend/controllers"
	"travel-backend/logger"
	"travel-backend/models"
	"travel-backend/services"
	"travel-backend/testutil"
)

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination json.RawMessage `json:"pagination"`
	Error      string          `json:"error"`
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	cfg := &config.AppConfig{
		UploadDir:  t.TempDir(),
		CORSOrigin: []string{"*"},
		Auth: config.AuthConfig{
			JWTSecret:          "route-secret",
			JWTExpirationHours: 1,
			AdminEmail:         "admin@travel.local",
			AdminPassword:      "pa55word",
		},
		Enquiry: config.EnquiryConfig{RatePerMinute: 600, RateBurst: 50},
	}
	require.NoError(t, config.SeedDatabase(db, cfg.Auth))

	log := logger.Discard()
	ctl := Controllers{
		Packages:     controllers.NewPackageController(services.NewPackageService(db), services.NewFilterOptionsService(db), services.NewPackageWriter(db), log),
		Destinations: controllers.NewDestinationController(services.NewDestinationService(db), log),
		Currencies:   controllers.NewCurrencyController(services.NewCurrencyService(db), log),
		Enquiries:    controllers.NewEnquiryController(services.NewEnquiryService(db, nil, log), log),
		Admin: controllers.NewAdminController(
			services.NewAuthService(db, cfg.Auth),
			services.NewDashboardService(db),
			services.NewImageService(cfg.UploadDir),
			log,
		),
		Blogs:    controllers.NewContentController(services.NewBlogService(db), log, nil),
		Reviews:  controllers.NewContentController(services.NewReviewService(db), log, map[string]string{"packageId": "package_id"}),
		FAQs:     controllers.NewContentController(services.NewFAQService(db), log, map[string]string{"category": "category"}),
		Services: controllers.NewContentController(services.NewServiceCatalog(db), log, nil),
		Seo:      controllers.NewContentController(services.NewSeoMetaService(db), log, nil),
	}
	return &testServer{router: SetupRouter(cfg, log, ctl), db: db}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	code, env := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin@travel.local",
		"password": "pa55word",
	})
	require.Equal(t, http.StatusOK, code)
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListPackagesResponseShape(t *testing.T) {
	s := newTestServer(t)
	goa := testutil.Destination(t, s.db, "goa", "Goa")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 13; i++ {
		testutil.Package(t, s.db, testutil.PackageOpts{
			Slug:           fmt.Sprintf("pkg-%02d", i),
			CreatedAt:      base.Add(time.Duration(i) * time.Hour),
			DestinationIDs: []uint{goa.ID},
		})
	}

	code, env := s.do(t, http.MethodGet, "/api/packages?page=2&month=march", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	var data struct {
		Packages []struct {
			Slug            string `json:"slug"`
			DestinationName string `json:"destinationName"`
			Pricing         struct {
				DisplayPrice float64 `json:"displayPrice"`
			} `json:"pricing"`
		} `json:"packages"`
		Pagination services.Pagination    `json:"pagination"`
		Filters    services.FilterOptions `json:"filters"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	require.Len(t, data.Packages, 1)
	assert.Equal(t, "pkg-01", data.Packages[0].Slug)
	assert.Equal(t, "Goa", data.Packages[0].DestinationName)
	assert.Equal(t, services.Pagination{Total: 13, TotalPages: 2, CurrentPage: 2, PageSize: 12}, data.Pagination)
	require.Len(t, data.Filters.Destinations, 1)
	assert.Equal(t, "goa", data.Filters.Destinations[0].Slug)
	assert.NotEmpty(t, data.Filters.DurationOptions)

	code, env = s.do(t, http.MethodGet, "/api/packages?destination=nowhere", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Empty(t, data.Packages)
	assert.Equal(t, int64(0), data.Pagination.Total)
}

func TestErrorMapping(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/api/packages/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)

	code, env = s.do(t, http.MethodPost, "/api/enquiries", "", map[string]string{"name": "A", "email": "nope"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid email", env.Error)

	code, _ = s.do(t, http.MethodPost, "/api/enquiries", "", map[string]interface{}{"name": "A", "email": "a@b.co", "status": "CONVERTED"})
	assert.Equal(t, http.StatusCreated, code)
	var stored models.Enquiry
	require.NoError(t, s.db.First(&stored).Error)
	assert.Equal(t, models.EnquiryStatusNew, stored.Status)

	code, _ = s.do(t, http.MethodGet, "/api/seo", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/api/admin/packages", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)

	code, _ = s.do(t, http.MethodGet, "/api/admin/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin@travel.local", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid credentials", env.Error)

	token := s.login(t)
	code, env = s.do(t, http.MethodGet, "/api/admin/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	var me models.Admin
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "admin@travel.local", me.Username)
}

func TestAdminConflictsAndPaging(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	code, _ := s.do(t, http.MethodPost, "/api/admin/destinations", token, map[string]string{"name": "Goa"})
	require.Equal(t, http.StatusCreated, code)
	code, env := s.do(t, http.MethodPost, "/api/admin/destinations", token, map[string]string{"name": "Goa"})
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, env.Success)

	var inr models.Currency
	require.NoError(t, s.db.Where("code = ?", "INR").First(&inr).Error)
	testutil.Package(t, s.db, testutil.PackageOpts{Slug: "kerala", Prices: []models.PackagePrice{{CurrencyID: inr.ID, Price: 100}}})

	code, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/currencies/%d", inr.ID), token, nil)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = s.do(t, http.MethodGet, "/api/admin/packages/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(t, http.MethodGet, "/api/admin/packages", token, nil)
	require.Equal(t, http.StatusOK, code)
	var pg services.Pagination
	require.NoError(t, json.Unmarshal(env.Pagination, &pg))
	assert.Equal(t, int64(1), pg.Total)

	code, _ = s.do(t, http.MethodPost, "/api/admin/faqs", token, map[string]interface{}{"question": "Visa?", "answer": "Yes", "isActive": true})
	require.Equal(t, http.StatusCreated, code)
	code, env = s.do(t, http.MethodGet, "/api/faqs", "", nil)
	require.Equal(t, http.StatusOK, code)
	var faqs []models.FAQ
	require.NoError(t, json.Unmarshal(env.Data, &faqs))
	require.Len(t, faqs, 1)

	code, env = s.do(t, http.MethodGet, "/api/admin/dashboard/counts", token, nil)
	require.Equal(t, http.StatusOK, code)
	var counts services.DashboardCounts
	require.NoError(t, json.Unmarshal(env.Data, &counts))
	assert.Equal(t, int64(1), counts.Packages)
	assert.Equal(t, int64(1), counts.Destinations)
}
