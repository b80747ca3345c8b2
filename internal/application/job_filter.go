package application

import "strings"

// FilterJobs returns the jobs matching both the text search and the location
// filter, in input order. The search term matches title, company or
// description case-insensitively. The location filter is a case-sensitive
// substring match. Empty terms match everything. jobs is not modified.
func FilterJobs(jobs []Job, search, location string) []Job {
	needle := strings.ToLower(search)
	matched := make([]Job, 0, len(jobs))
	for _, job := range jobs {
		if search != "" &&
			!strings.Contains(strings.ToLower(job.Title), needle) &&
			!strings.Contains(strings.ToLower(job.Company), needle) &&
			!strings.Contains(strings.ToLower(job.Description), needle) {
			continue
		}
		if location != "" && !strings.Contains(job.Location, location) {
			continue
		}
		matched = append(matched, job)
	}
	return matched
}
