package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"linkshort-go/internal/middleware"
	"linkshort-go/internal/model"
	"linkshort-go/internal/repository"
	"linkshort-go/internal/service"
)

// newTestRouter 不挂认证中间件，直接测业务路由
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repository.Migrate(db))

	linkService := service.NewLinkService(repository.NewLinkStore(db), nil)
	statisticsService := service.NewStatisticsService(repository.NewStatisticStore(db), nil)

	linkHandler := NewLinkHandler(linkService, statisticsService)
	statisticsHandler := NewStatisticsHandler(statisticsService, repository.NewDailyStatStore(db))

	r := gin.New()
	r.Use(middleware.GlobalErrorMiddleware())

	api := r.Group("/api")
	{
		api.POST("/links", linkHandler.Create)
		api.GET("/links", linkHandler.List)
		api.PATCH("/links/:id", linkHandler.Update)
		api.GET("/links/:id/statistics", statisticsHandler.GetLinkStatistics)
		api.GET("/links/:id/visits", statisticsHandler.ListLinkVisits)
	}
	r.NoRoute(linkHandler.Redirect)

	return r, db
}

type linkEnvelope struct {
	Success bool       `json:"success"`
	Data    model.Link `json:"data"`
}

func createLink(t *testing.T, r *gin.Engine, targetURL string) model.Link {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"targetUrl": targetURL})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/links", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var envelope linkEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	require.NotEmpty(t, envelope.Data.ID)
	return envelope.Data
}

func TestCreateLinkEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	link := createLink(t, r, "https://example.com/target")
	require.Equal(t, "https://example.com/target", link.TargetURL)
}

func TestCreateLinkEndpointRejectsBadBody(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/links", bytes.NewReader([]byte(`{"targetUrl":"not a url"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRedirectRecordsVisit(t *testing.T) {
	r, _ := newTestRouter(t)

	link := createLink(t, r, "https://example.com/landing")

	// 带 referer 和 UA 的访问
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/"+link.ID, nil)
	req.Header.Set("Referer", "https://search.example.com")
	req.Header.Set("User-Agent", "Mozilla/5.0")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	require.Equal(t, "https://example.com/landing", w.Header().Get("Location"))
	require.NotEmpty(t, w.Header().Get("Cache-Control"))

	// 无头访问
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/"+link.ID, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)

	// 原始记录：两条，第二条 referer/user_agent 为 NULL
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/links/"+link.ID+"/visits", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var visitsEnvelope struct {
		Data []model.LinkStatistic `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &visitsEnvelope))
	require.Len(t, visitsEnvelope.Data, 2)
	require.NotNil(t, visitsEnvelope.Data[0].Referer)
	require.Nil(t, visitsEnvelope.Data[1].Referer)
	require.Nil(t, visitsEnvelope.Data[1].UserAgent)
}

func TestRedirectUnknownLink(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatisticsEndpointGroupsVisits(t *testing.T) {
	r, _ := newTestRouter(t)

	link := createLink(t, r, "https://example.com/page")

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/"+link.ID, nil)
		req.Header.Set("User-Agent", "curl/8.0")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/links/"+link.ID+"/statistics", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var statsEnvelope struct {
		Data []model.CountedLinkStatistic `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &statsEnvelope))
	require.Len(t, statsEnvelope.Data, 1)
	require.Equal(t, int64(2), statsEnvelope.Data[0].Amount)
	require.Equal(t, "curl/8.0", *statsEnvelope.Data[0].UserAgent)
}

func TestListLinksEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	createLink(t, r, "https://example.com/1")
	createLink(t, r, "https://example.com/2")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/links?page=1&size=10", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var listEnvelope struct {
		Data struct {
			Total int          `json:"total"`
			List  []model.Link `json:"list"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listEnvelope))
	require.Equal(t, 2, listEnvelope.Data.Total)
	require.Len(t, listEnvelope.Data.List, 2)

	// 非法分页参数
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/links?page=0", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateLinkEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	link := createLink(t, r, "https://example.com/before")

	body, _ := json.Marshal(map[string]string{"targetUrl": "https://example.com/after"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/links/"+link.ID, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// 重定向应指向新目标
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/"+link.ID, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	require.Equal(t, "https://example.com/after", w.Header().Get("Location"))
}
