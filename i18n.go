package translateplus

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// JobStatus is the lifecycle state of an i18n translation job.
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Terminal reports whether the job has reached a final state.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

// I18nJob is a handle to a server-side i18n translation job. Jobs are
// created by CreateI18nJob, observed via GetI18nJobStatus and end by
// reaching a terminal status or explicit deletion.
type I18nJob struct {
	JobID           string    `json:"job_id"`
	Status          JobStatus `json:"status"`
	Progress        float64   `json:"progress"`
	SourceLanguage  string    `json:"source_language,omitempty"`
	TargetLanguages []string  `json:"target_languages,omitempty"`
	Error           string    `json:"error,omitempty"`
}

// I18nJobList is one page of jobs.
type I18nJobList struct {
	Results  []I18nJob `json:"results"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	Total    int       `json:"total"`
}

// I18nJobOptions carries the optional parameters of job creation.
//
// SourceLanguage: source language code, empty for auto-detect
// WebhookURL: URL notified when the job completes, empty to disable
type I18nJobOptions struct {
	SourceLanguage string
	WebhookURL     string
}

// CreateI18nJob uploads an i18n file (JSON, YAML, PO, ...) and creates
// a translation job for the given target languages.
//
// Example:
//
//	job, err := client.CreateI18nJob(ctx, "locales/en.json", []string{"fr", "es"}, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(job.JobID)
func (c *Client) CreateI18nJob(ctx context.Context, path string, targetLanguages []string, opts *I18nJobOptions) (*I18nJob, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, newValidationError("failed to read i18n file: %v", err)
	}
	return c.CreateI18nJobFromContent(ctx, filepath.Base(path), content, targetLanguages, opts)
}

// CreateI18nJobFromContent creates a job from in-memory file content,
// for callers that do not keep i18n files on disk.
func (c *Client) CreateI18nJobFromContent(ctx context.Context, filename string, content []byte, targetLanguages []string, opts *I18nJobOptions) (*I18nJob, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	if filename == "" {
		return nil, newValidationError("filename is required")
	}
	if len(content) == 0 {
		return nil, newValidationError("file content cannot be empty")
	}
	if err := validateTargetList(targetLanguages); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &I18nJobOptions{}
	}

	fields := map[string]string{
		"source_language":  normalizeSource(opts.SourceLanguage),
		"target_languages": strings.Join(targetLanguages, ","),
	}
	if opts.WebhookURL != "" {
		fields["webhook_url"] = opts.WebhookURL
	}

	var out I18nJob
	if err := c.transport.upload(ctx, "/v2/i18n/jobs", fields, filename, content, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetI18nJobStatus returns the current state of a job.
func (c *Client) GetI18nJobStatus(ctx context.Context, jobID string) (*I18nJob, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	if jobID == "" {
		return nil, newValidationError("job ID is required")
	}

	var out I18nJob
	if err := c.transport.getJSON(ctx, "/v2/i18n/jobs/"+url.PathEscape(jobID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListI18nJobs returns one page of the account's jobs.
//
// page: 1-based page number, 0 for the first page
// pageSize: jobs per page, 0 for the server default of 20
func (c *Client) ListI18nJobs(ctx context.Context, page, pageSize int) (*I18nJobList, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	if page < 0 || pageSize < 0 {
		return nil, newValidationError("page and page size must not be negative")
	}
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))

	var out I18nJobList
	if err := c.transport.getJSON(ctx, "/v2/i18n/jobs", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadI18nFile downloads the translated file for one target
// language of a completed job.
func (c *Client) DownloadI18nFile(ctx context.Context, jobID, languageCode string) ([]byte, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	if jobID == "" {
		return nil, newValidationError("job ID is required")
	}
	if languageCode == "" {
		return nil, newValidationError("language code is required")
	}

	path := fmt.Sprintf("/v2/i18n/jobs/%s/download/%s", url.PathEscape(jobID), url.PathEscape(languageCode))
	return c.transport.download(ctx, path)
}

// DeleteI18nJob deletes a job and its server-side artifacts.
func (c *Client) DeleteI18nJob(ctx context.Context, jobID string) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	if jobID == "" {
		return newValidationError("job ID is required")
	}
	return c.transport.deleteJSON(ctx, "/v2/i18n/jobs/"+url.PathEscape(jobID), nil)
}

// WaitForI18nJob polls a job until it reaches a terminal status or the
// context is done. interval <= 0 defaults to 5 seconds.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
//	defer cancel()
//	job, err := client.WaitForI18nJob(ctx, job.JobID, 5*time.Second)
func (c *Client) WaitForI18nJob(ctx context.Context, jobID string, interval time.Duration) (*I18nJob, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		job, err := c.GetI18nJobStatus(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if job.Status.Terminal() {
			return job, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// validateTargetList rejects an empty or malformed target language list
// before any network call.
func validateTargetList(targets []string) error {
	if len(targets) == 0 {
		return newValidationError("target languages list cannot be empty")
	}
	for _, target := range targets {
		if target == "" {
			return newValidationError("target language cannot be empty")
		}
		if _, err := language.Parse(target); err != nil {
			return newValidationError("invalid target language code %q", target)
		}
	}
	return nil
}
