package application

import (
	"slices"
	"testing"
)

func jobIDs(jobs []Job) []string {
	ids := make([]string, 0, len(jobs))
	for _, job := range jobs {
		ids = append(ids, job.ID)
	}
	return ids
}

func TestFilterJobs(t *testing.T) {
	t.Parallel()

	jobs := []Job{
		{ID: "1", Title: "Software Engineer", Company: "Acme", Location: "Remote", Description: "Build APIs"},
		{ID: "2", Title: "Designer", Company: "Pixel Works", Location: "Remote", Description: "Design systems"},
		{ID: "3", Title: "Data Analyst", Company: "Engineering Co", Location: "Pune", Description: "Dashboards"},
		{ID: "4", Title: "Support", Company: "Helpdesk", Location: "Bengaluru", Description: "Assist engineers"},
	}

	cases := []struct {
		name     string
		search   string
		location string
		want     []string
	}{
		{name: "empty filters keep everything", want: []string{"1", "2", "3", "4"}},
		{name: "search matches title case-insensitively", search: "engineer", location: "Remote", want: []string{"1"}},
		{name: "search matches company and description", search: "ENGINEER", want: []string{"1", "3", "4"}},
		{name: "location is a case-sensitive substring", location: "Rem", want: []string{"1", "2"}},
		{name: "location differing in case does not match", location: "remote", want: []string{}},
		{name: "both predicates must hold", search: "design", location: "Pune", want: []string{}},
		{name: "no match yields empty result", search: "astronaut", want: []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := jobIDs(FilterJobs(jobs, tc.search, tc.location))
			if !slices.Equal(got, tc.want) {
				t.Fatalf("FilterJobs(%q, %q) = %v, want %v", tc.search, tc.location, got, tc.want)
			}
		})
	}
}

func TestFilterJobsDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	jobs := []Job{{ID: "a", Title: "Engineer"}, {ID: "b", Title: "Designer"}}
	before := slices.Clone(jobs)

	filtered := FilterJobs(jobs, "designer", "")
	if len(filtered) != 1 || filtered[0].ID != "b" {
		t.Fatalf("unexpected filter result: %#v", filtered)
	}
	filtered[0].Title = "changed"

	if jobs[0].ID != before[0].ID || jobs[1].Title != before[1].Title {
		t.Fatalf("expected input to remain unchanged, got %#v", jobs)
	}
}

func TestFilterJobsNilInput(t *testing.T) {
	t.Parallel()

	got := FilterJobs(nil, "", "")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
