package model

import (
	"time"

	"gorm.io/gorm"
)

// Crawl job lifecycle states.
const (
	StatusQueued  = "queued"
	StatusRunning = "running"
	StatusDone    = "done"
	StatusError   = "error"
	StatusStopped = "stopped"
)

// CrawlJob represents one requested traversal of a document tree and its
// processing status.
type CrawlJob struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	RootPath    string `gorm:"type:varchar(512);not null" json:"root_path"`
	Concurrency int    `gorm:"not null;default:50" json:"concurrency"`
	Status      string `gorm:"type:enum('queued','running','done','error','stopped');default:'queued';not null" json:"status"`

	// Summary counts, written once when the crawl finishes.
	FileCount      int `gorm:"not null;default:0" json:"file_count"`
	PublishedCount int `gorm:"not null;default:0" json:"published_count"`
	BlankCount     int `gorm:"not null;default:0" json:"blank_count"`
	ErrorCount     int `gorm:"not null;default:0" json:"error_count"`

	Reports   []PageReport   `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"reports,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the name of the table for CrawlJob.
func (CrawlJob) TableName() string {
	return "crawl_jobs"
}

// CrawlJobDTO is the data transfer object for CrawlJob.
type CrawlJobDTO struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	RootPath       string    `json:"root_path"`
	Concurrency    int       `json:"concurrency"`
	Status         string    `json:"status"`
	FileCount      int       `json:"file_count"`
	PublishedCount int       `json:"published_count"`
	BlankCount     int       `json:"blank_count"`
	ErrorCount     int       `json:"error_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateCrawlJobInput defines the fields accepted when creating a crawl
// job. RootPath and Concurrency may be omitted; the configured defaults
// apply then.
type CreateCrawlJobInput struct {
	UserID      uint   `json:"user_id"`
	RootPath    string `json:"root_path"`
	Concurrency int    `json:"concurrency" binding:"omitempty,min=1,max=200"`
}

// CrawlSummary aggregates the per-job outcome counts written back when a
// crawl finishes.
type CrawlSummary struct {
	Files     int
	Published int
	Blank     int
	Errors    int
}

// UpdateCrawlJobInput defines fields a caller may change on a job.
type UpdateCrawlJobInput struct {
	RootPath string `json:"root_path,omitempty"`
	Status   string `json:"status,omitempty"`
}

// ToDTO converts a CrawlJob model to a CrawlJobDTO.
func (j *CrawlJob) ToDTO() *CrawlJobDTO {
	return &CrawlJobDTO{
		ID:             j.ID,
		UserID:         j.UserID,
		RootPath:       j.RootPath,
		Concurrency:    j.Concurrency,
		Status:         j.Status,
		FileCount:      j.FileCount,
		PublishedCount: j.PublishedCount,
		BlankCount:     j.BlankCount,
		ErrorCount:     j.ErrorCount,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}

// CrawlJobFromCreateInput maps CreateCrawlJobInput to a CrawlJob model.
func CrawlJobFromCreateInput(input *CreateCrawlJobInput) *CrawlJob {
	now := time.Now()
	concurrency := input.Concurrency
	if concurrency <= 0 {
		concurrency = 50
	}
	return &CrawlJob{
		UserID:      input.UserID,
		RootPath:    input.RootPath,
		Concurrency: concurrency,
		Status:      StatusQueued,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
