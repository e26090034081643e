package service

import (
	"errors"
	"fmt"

	"github.com/meejain/da-crawl/internal/crawler"
	"github.com/meejain/da-crawl/internal/model"
	"github.com/meejain/da-crawl/internal/repository"
)

// CrawlService defines business operations around crawl jobs.
type CrawlService interface {
	Create(input *model.CreateCrawlJobInput) (uint, error)
	Get(id uint) (*model.CrawlJobDTO, error)
	List(userID uint, p repository.Pagination) ([]*model.CrawlJobDTO, error)
	Update(id uint, input *model.UpdateCrawlJobInput) error
	Delete(id uint) error
	Start(id uint) error
	Stop(id uint) error
	Reports(id uint, p repository.Pagination) ([]*model.PageReportDTO, error)
}

// CrawlDefaults are the configured fallbacks applied when a create request
// omits a field.
type CrawlDefaults struct {
	RootPath    string
	Concurrency int
}

type crawlService struct {
	jobs     repository.CrawlJobRepository
	reports  repository.PageReportRepository
	crawlers crawler.Pool
	defaults CrawlDefaults
}

// NewCrawlService constructs a CrawlService.
func NewCrawlService(
	jobs repository.CrawlJobRepository,
	reports repository.PageReportRepository,
	pool crawler.Pool,
	defaults CrawlDefaults,
) CrawlService {
	return &crawlService{jobs: jobs, reports: reports, crawlers: pool, defaults: defaults}
}

func (s *crawlService) Create(input *model.CreateCrawlJobInput) (uint, error) {
	if input.RootPath == "" {
		input.RootPath = s.defaults.RootPath
	}
	if input.RootPath == "" {
		return 0, errors.New("root path is required")
	}
	if input.Concurrency <= 0 {
		input.Concurrency = s.defaults.Concurrency
	}

	j := model.CrawlJobFromCreateInput(input)
	if err := s.jobs.Create(j); err != nil {
		return 0, err
	}
	return j.ID, nil
}

func (s *crawlService) Get(id uint) (*model.CrawlJobDTO, error) {
	j, err := s.jobs.FindByID(id)
	if err != nil {
		return nil, err
	}
	return j.ToDTO(), nil
}

func (s *crawlService) List(userID uint, p repository.Pagination) ([]*model.CrawlJobDTO, error) {
	jobs, err := s.jobs.ListByUser(userID, p)
	if err != nil {
		return nil, err
	}
	dtos := make([]*model.CrawlJobDTO, len(jobs))
	for i := range jobs {
		dtos[i] = jobs[i].ToDTO()
	}
	return dtos, nil
}

func (s *crawlService) Update(id uint, in *model.UpdateCrawlJobInput) error {
	j, err := s.jobs.FindByID(id)
	if err != nil {
		return err
	}

	if in.RootPath != "" {
		j.RootPath = in.RootPath
	}
	if in.Status != "" {
		switch in.Status {
		case model.StatusQueued, model.StatusRunning,
			model.StatusDone, model.StatusError, model.StatusStopped:
			j.Status = in.Status
		default:
			return errors.New("invalid status value")
		}
	}
	return s.jobs.Update(j)
}

func (s *crawlService) Delete(id uint) error {
	if err := s.reports.DeleteByJob(id); err != nil {
		return err
	}
	return s.jobs.Delete(id)
}

// Start queues a job for the crawler pool.
func (s *crawlService) Start(id uint) error {
	if _, err := s.jobs.FindByID(id); err != nil {
		return fmt.Errorf("cannot start crawl: %w", err)
	}

	if err := s.jobs.UpdateStatus(id, model.StatusQueued); err != nil {
		return err
	}
	s.crawlers.Enqueue(id)
	return nil
}

// Stop flags a job as stopped; a running worker observes the flag at its
// next status check.
func (s *crawlService) Stop(id uint) error {
	if _, err := s.jobs.FindByID(id); err != nil {
		return fmt.Errorf("cannot stop crawl: %w", err)
	}
	return s.jobs.UpdateStatus(id, model.StatusStopped)
}

// Reports returns the per-path outcomes recorded for a job.
func (s *crawlService) Reports(id uint, p repository.Pagination) ([]*model.PageReportDTO, error) {
	if _, err := s.jobs.FindByID(id); err != nil {
		return nil, fmt.Errorf("failed to get crawl reports: %w", err)
	}
	reports, err := s.reports.ListByJob(id, p)
	if err != nil {
		return nil, err
	}
	dtos := make([]*model.PageReportDTO, len(reports))
	for i := range reports {
		dtos[i] = reports[i].ToDTO()
	}
	return dtos, nil
}
