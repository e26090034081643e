package repository

import (
	"gorm.io/gorm"

	"github.com/meejain/da-crawl/internal/model"
)

// PageReportRepository defines DB ops around per-path crawl reports.
type PageReportRepository interface {
	Add(r *model.PageReport) error
	ListByJob(jobID uint, p Pagination) ([]model.PageReport, error)
	CountByJob(jobID uint) (int, error)
	CountByVerdict(jobID uint, verdict string) (int, error)
	DeleteByJob(jobID uint) error
}

type pageReportRepo struct {
	db *gorm.DB
}

// NewPageReportRepo returns a PageReportRepository backed by GORM.
func NewPageReportRepo(db *gorm.DB) PageReportRepository {
	return &pageReportRepo{db: db}
}

func (r *pageReportRepo) Add(report *model.PageReport) error {
	return r.db.Create(report).Error
}

func (r *pageReportRepo) ListByJob(jobID uint, p Pagination) ([]model.PageReport, error) {
	var reports []model.PageReport
	if err := r.db.
		Where("job_id = ?", jobID).
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *pageReportRepo) CountByJob(jobID uint) (int, error) {
	var count int64
	if err := r.db.Model(&model.PageReport{}).
		Where("job_id = ?", jobID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *pageReportRepo) CountByVerdict(jobID uint, verdict string) (int, error) {
	var count int64
	if err := r.db.Model(&model.PageReport{}).
		Where("job_id = ? AND verdict = ?", jobID, verdict).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *pageReportRepo) DeleteByJob(jobID uint) error {
	return r.db.Where("job_id = ?", jobID).Delete(&model.PageReport{}).Error
}
