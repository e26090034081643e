package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meejain/da-crawl/internal/handler"
	"github.com/meejain/da-crawl/internal/model"
	"github.com/meejain/da-crawl/internal/repository"
)

type fakeCrawlService struct {
	jobs    map[uint]*model.CrawlJobDTO
	nextID  uint
	started []uint
	stopped []uint
	deleted []uint
	reports map[uint][]*model.PageReportDTO
}

func newFakeCrawlService() *fakeCrawlService {
	return &fakeCrawlService{
		jobs:    map[uint]*model.CrawlJobDTO{},
		nextID:  1,
		reports: map[uint][]*model.PageReportDTO{},
	}
}

func (f *fakeCrawlService) Create(in *model.CreateCrawlJobInput) (uint, error) {
	id := f.nextID
	f.nextID++
	f.jobs[id] = &model.CrawlJobDTO{
		ID: id, UserID: in.UserID, RootPath: in.RootPath, Status: model.StatusQueued,
	}
	return id, nil
}

func (f *fakeCrawlService) Get(id uint) (*model.CrawlJobDTO, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return j, nil
}

func (f *fakeCrawlService) List(userID uint, _ repository.Pagination) ([]*model.CrawlJobDTO, error) {
	var out []*model.CrawlJobDTO
	for _, j := range f.jobs {
		if j.UserID == userID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeCrawlService) Update(id uint, in *model.UpdateCrawlJobInput) error {
	j, ok := f.jobs[id]
	if !ok {
		return errors.New("record not found")
	}
	if in.RootPath != "" {
		j.RootPath = in.RootPath
	}
	return nil
}

func (f *fakeCrawlService) Delete(id uint) error {
	if _, ok := f.jobs[id]; !ok {
		return errors.New("record not found")
	}
	delete(f.jobs, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCrawlService) Start(id uint) error {
	if _, ok := f.jobs[id]; !ok {
		return errors.New("record not found")
	}
	f.started = append(f.started, id)
	return nil
}

func (f *fakeCrawlService) Stop(id uint) error {
	if _, ok := f.jobs[id]; !ok {
		return errors.New("record not found")
	}
	f.stopped = append(f.stopped, id)
	return nil
}

func (f *fakeCrawlService) Reports(id uint, _ repository.Pagination) ([]*model.PageReportDTO, error) {
	if _, ok := f.jobs[id]; !ok {
		return nil, errors.New("record not found")
	}
	return f.reports[id], nil
}

// newCrawlRouter wires the handler behind a stub auth middleware that
// injects the given user ID.
func newCrawlRouter(svc *fakeCrawlService, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rg := r.Group("/api/v1")
	rg.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	handler.NewCrawlHandler(svc).RegisterProtectedRoutes(rg)
	return r
}

func TestCrawlHandler_Create(t *testing.T) {
	svc := newFakeCrawlService()
	r := newCrawlRouter(svc, 4)

	body, _ := json.Marshal(gin.H{"root_path": "/acme/site", "concurrency": 10})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/crawls", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(4), svc.jobs[1].UserID, "user id comes from the auth context, not the payload")
}

func TestCrawlHandler_Create_InvalidPayload(t *testing.T) {
	r := newCrawlRouter(newFakeCrawlService(), 4)

	body := []byte(`{"root_path": "/acme/site", "concurrency": "many"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/crawls", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCrawlHandler_Get(t *testing.T) {
	svc := newFakeCrawlService()
	id, _ := svc.Create(&model.CreateCrawlJobInput{UserID: 4, RootPath: "/acme/site"})
	r := newCrawlRouter(svc, 4)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/crawls/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var dto model.CrawlJobDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, id, dto.ID)
	assert.Equal(t, "/acme/site", dto.RootPath)
}

func TestCrawlHandler_Get_NotFound(t *testing.T) {
	r := newCrawlRouter(newFakeCrawlService(), 4)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/crawls/99", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCrawlHandler_Get_BadID(t *testing.T) {
	r := newCrawlRouter(newFakeCrawlService(), 4)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/crawls/abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCrawlHandler_StartStop(t *testing.T) {
	svc := newFakeCrawlService()
	_, _ = svc.Create(&model.CreateCrawlJobInput{UserID: 4, RootPath: "/acme/site"})
	r := newCrawlRouter(svc, 4)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/crawls/1/start", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, []uint{1}, svc.started)

	req = httptest.NewRequest(http.MethodPatch, "/api/v1/crawls/1/stop", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, []uint{1}, svc.stopped)
}

func TestCrawlHandler_Reports(t *testing.T) {
	svc := newFakeCrawlService()
	id, _ := svc.Create(&model.CreateCrawlJobInput{UserID: 4, RootPath: "/acme/site"})
	svc.reports[id] = []*model.PageReportDTO{
		{ID: 1, JobID: id, Path: "/acme/site/a.html", Verdict: "substantive", Published: true},
		{ID: 2, JobID: id, Path: "/acme/site/b.html", Verdict: "blank"},
	}
	r := newCrawlRouter(svc, 4)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/crawls/1/reports", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var reports []model.PageReportDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reports))
	require.Len(t, reports, 2)
	assert.True(t, reports[0].Published)
}

func TestCrawlHandler_Delete(t *testing.T) {
	svc := newFakeCrawlService()
	_, _ = svc.Create(&model.CreateCrawlJobInput{UserID: 4, RootPath: "/acme/site"})
	r := newCrawlRouter(svc, 4)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/crawls/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uint{1}, svc.deleted)
}
