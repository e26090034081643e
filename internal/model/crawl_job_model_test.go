package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meejain/da-crawl/internal/model"
)

func TestCrawlJobFromCreateInput(t *testing.T) {
	j := model.CrawlJobFromCreateInput(&model.CreateCrawlJobInput{
		UserID:   4,
		RootPath: "/acme/site",
	})

	assert.Equal(t, uint(4), j.UserID)
	assert.Equal(t, "/acme/site", j.RootPath)
	assert.Equal(t, model.StatusQueued, j.Status)
	assert.Equal(t, 50, j.Concurrency, "concurrency defaults when omitted")

	j = model.CrawlJobFromCreateInput(&model.CreateCrawlJobInput{
		UserID:      4,
		RootPath:    "/acme/site",
		Concurrency: 12,
	})
	assert.Equal(t, 12, j.Concurrency)
}

func TestCrawlJob_ToDTO(t *testing.T) {
	j := &model.CrawlJob{
		ID:             7,
		UserID:         4,
		RootPath:       "/acme/site",
		Concurrency:    50,
		Status:         model.StatusDone,
		FileCount:      10,
		PublishedCount: 6,
		BlankCount:     3,
		ErrorCount:     1,
	}

	dto := j.ToDTO()
	assert.Equal(t, uint(7), dto.ID)
	assert.Equal(t, model.StatusDone, dto.Status)
	assert.Equal(t, 10, dto.FileCount)
	assert.Equal(t, 6, dto.PublishedCount)
	assert.Equal(t, 3, dto.BlankCount)
	assert.Equal(t, 1, dto.ErrorCount)
}

func TestUserRoles(t *testing.T) {
	admin := &model.User{Role: model.RoleAdmin}
	crawler := &model.User{Role: model.RoleCrawler}
	viewer := &model.User{Role: model.RoleUser}

	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.CanStartCrawls())
	assert.False(t, crawler.IsAdmin())
	assert.True(t, crawler.CanStartCrawls())
	assert.False(t, viewer.CanStartCrawls())
}
