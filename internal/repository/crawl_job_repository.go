package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/meejain/da-crawl/internal/model"
)

// CrawlJobRepository defines DB ops around crawl jobs.
type CrawlJobRepository interface {
	Create(j *model.CrawlJob) error
	FindByID(id uint) (*model.CrawlJob, error)
	ListByUser(userID uint, p Pagination) ([]model.CrawlJob, error)
	CountByUser(userID uint) (int, error)
	Update(j *model.CrawlJob) error
	UpdateStatus(id uint, status string) error
	SaveSummary(id uint, stats model.CrawlSummary) error
	Delete(id uint) error
}

type crawlJobRepo struct {
	db *gorm.DB
}

// NewCrawlJobRepo returns a CrawlJobRepository backed by GORM.
func NewCrawlJobRepo(db *gorm.DB) CrawlJobRepository {
	return &crawlJobRepo{db: db}
}

func (r *crawlJobRepo) Create(j *model.CrawlJob) error {
	return r.db.Create(j).Error
}

func (r *crawlJobRepo) FindByID(id uint) (*model.CrawlJob, error) {
	var j model.CrawlJob
	if err := r.db.First(&j, id).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *crawlJobRepo) ListByUser(userID uint, p Pagination) ([]model.CrawlJob, error) {
	var jobs []model.CrawlJob
	if err := r.db.
		Where("user_id = ?", userID).
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *crawlJobRepo) CountByUser(userID uint) (int, error) {
	var count int64
	if err := r.db.Model(&model.CrawlJob{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *crawlJobRepo) Update(j *model.CrawlJob) error {
	return r.db.Save(j).Error
}

func (r *crawlJobRepo) UpdateStatus(id uint, status string) error {
	return r.db.Model(&model.CrawlJob{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *crawlJobRepo) SaveSummary(id uint, stats model.CrawlSummary) error {
	return r.db.Model(&model.CrawlJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"file_count":      stats.Files,
			"published_count": stats.Published,
			"blank_count":     stats.Blank,
			"error_count":     stats.Errors,
		}).Error
}

func (r *crawlJobRepo) Delete(id uint) error {
	res := r.db.Delete(&model.CrawlJob{}, id)
	if res.RowsAffected == 0 {
		return errors.New("crawl job not found")
	}
	return res.Error
}
