package model

import (
	"time"

	"gorm.io/gorm"
)

// PageReport is one per-path outcome from a crawl: the verdict for a
// document, whether it was republished, or the failure that made the
// crawler skip it.
type PageReport struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID     uint           `gorm:"not null;index" json:"job_id"`
	Path      string         `gorm:"type:varchar(1024);not null" json:"path"`
	Verdict   string         `gorm:"type:varchar(32);not null" json:"verdict"`
	Published bool           `gorm:"not null;default:false" json:"published"`
	Error     string         `gorm:"type:text" json:"error,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the name of the table for PageReport.
func (PageReport) TableName() string {
	return "page_reports"
}

// PageReportDTO is the data transfer object for PageReport.
type PageReportDTO struct {
	ID        uint      `json:"id"`
	JobID     uint      `json:"job_id"`
	Path      string    `json:"path"`
	Verdict   string    `json:"verdict"`
	Published bool      `json:"published"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDTO converts a PageReport model to a PageReportDTO.
func (r *PageReport) ToDTO() *PageReportDTO {
	return &PageReportDTO{
		ID:        r.ID,
		JobID:     r.JobID,
		Path:      r.Path,
		Verdict:   r.Verdict,
		Published: r.Published,
		Error:     r.Error,
		CreatedAt: r.CreatedAt,
	}
}
