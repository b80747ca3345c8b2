// Package catalog loads companies and job postings from a JSON document and
// writes them to storage.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// ErrInvalidCatalog wraps every problem found while loading a catalog.
var ErrInvalidCatalog = errors.New("catalog: invalid document")

// Catalog is the decoded document.
type Catalog struct {
	Companies []Company `json:"companies"`
	Jobs      []Job     `json:"jobs"`
}

// Company is a catalog company entry.
type Company struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Job is a catalog job entry. PostedAt is RFC 3339; when empty the import
// time is used.
type Job struct {
	ID           string   `json:"id"`
	CompanyID    string   `json:"company_id"`
	Title        string   `json:"title"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Salary       string   `json:"salary"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Status       string   `json:"status"`
	PostedAt     string   `json:"posted_at"`
}

// Load decodes and validates a catalog document.
func Load(r io.Reader) (Catalog, error) {
	var cat Catalog
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cat); err != nil {
		return Catalog{}, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := cat.Validate(); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

// Validate checks identifiers, required fields, statuses and timestamps. Job
// company references are checked at import time, since a job may point at a
// company already in storage.
func (c Catalog) Validate() error {
	var problems []string

	companies := make(map[string]struct{}, len(c.Companies))
	for i, company := range c.Companies {
		id := strings.TrimSpace(company.ID)
		switch {
		case id == "":
			problems = append(problems, fmt.Sprintf("companies[%d]: id is required", i))
		case strings.TrimSpace(company.Name) == "":
			problems = append(problems, fmt.Sprintf("company %q: name is required", id))
		}
		if _, dup := companies[id]; dup && id != "" {
			problems = append(problems, fmt.Sprintf("company %q: duplicate id", id))
		}
		companies[id] = struct{}{}
	}

	jobs := make(map[string]struct{}, len(c.Jobs))
	for i, job := range c.Jobs {
		id := strings.TrimSpace(job.ID)
		if id == "" {
			problems = append(problems, fmt.Sprintf("jobs[%d]: id is required", i))
			continue
		}
		if _, dup := jobs[id]; dup {
			problems = append(problems, fmt.Sprintf("job %q: duplicate id", id))
		}
		jobs[id] = struct{}{}

		if strings.TrimSpace(job.Title) == "" {
			problems = append(problems, fmt.Sprintf("job %q: title is required", id))
		}
		if strings.TrimSpace(job.CompanyID) == "" {
			problems = append(problems, fmt.Sprintf("job %q: company_id is required", id))
		}
		switch job.Status {
		case "", "open", "closed":
		default:
			problems = append(problems, fmt.Sprintf("job %q: unknown status %q", id, job.Status))
		}
		if job.PostedAt != "" {
			if _, err := time.Parse(time.RFC3339, job.PostedAt); err != nil {
				problems = append(problems, fmt.Sprintf("job %q: posted_at must be RFC 3339", id))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(problems, "; "))
	}
	return nil
}
