package application

import (
	"slices"
	"testing"
)

func TestSplitDisplayName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name, first, last string
	}{
		{"Jane Q Public", "Jane", "Q Public"},
		{"Madonna", "Madonna", ""},
		{"  Asha   Devi  Rao ", "Asha", "Devi Rao"},
		{"", "", ""},
	}
	for _, tc := range cases {
		first, last := SplitDisplayName(tc.name)
		if first != tc.first || last != tc.last {
			t.Fatalf("SplitDisplayName(%q) = (%q, %q), want (%q, %q)", tc.name, first, last, tc.first, tc.last)
		}
	}
}

func TestJobSeekerDisplay(t *testing.T) {
	t.Parallel()

	t.Run("substitutes placeholders for empty fields", func(t *testing.T) {
		t.Parallel()

		profile := JobSeekerProfile{UserID: "user-1", FirstName: "Jane", LastName: "Q Public"}
		view := JobSeekerDisplay(profile)

		if view.FullName != "Jane Q Public" {
			t.Fatalf("unexpected full name %q", view.FullName)
		}
		if view.Phone != PlaceholderPhone {
			t.Fatalf("expected placeholder phone, got %q", view.Phone)
		}
		if !slices.Equal(view.Skills, []string{"JavaScript", "React", "TypeScript", "Tailwind CSS"}) {
			t.Fatalf("unexpected placeholder skills %v", view.Skills)
		}
		if len(view.Education) != 2 || view.Education[0].Institution != "Indian Institute of Technology" {
			t.Fatalf("unexpected placeholder education %#v", view.Education)
		}
		if len(view.Experience) != 2 || view.Experience[1].Company != "StartUpHub" {
			t.Fatalf("unexpected placeholder experience %#v", view.Experience)
		}
		if !slices.Equal(view.Placeholders, []string{"phone", "skills", "education", "experience"}) {
			t.Fatalf("unexpected placeholder list %v", view.Placeholders)
		}
		if profile.Phone != "" || profile.Skills != nil {
			t.Fatalf("expected profile to remain untouched, got %#v", profile)
		}
	})

	t.Run("keeps stored values", func(t *testing.T) {
		t.Parallel()

		profile := JobSeekerProfile{
			Phone:      "9000000000",
			Skills:     []string{"Go"},
			Education:  []Education{{Institution: "NIT"}},
			Experience: []WorkExperience{{Title: "Backend Developer"}},
		}
		view := JobSeekerDisplay(profile)
		if view.Phone != "9000000000" || !slices.Equal(view.Skills, []string{"Go"}) {
			t.Fatalf("expected stored values, got %#v", view)
		}
		if len(view.Placeholders) != 0 {
			t.Fatalf("expected no placeholders, got %v", view.Placeholders)
		}

		view.Skills[0] = "changed"
		if profile.Skills[0] != "Go" {
			t.Fatalf("expected view to own its slices")
		}
	})
}

func TestInterviewerDisplay(t *testing.T) {
	t.Parallel()

	view := InterviewerDisplay(InterviewerProfile{FirstName: "Ravi"})
	if view.FullName != "Ravi" {
		t.Fatalf("unexpected full name %q", view.FullName)
	}
	if view.Experience != 5 || view.Company != "Tech Solutions Inc." || view.Position != "Senior Software Engineer" {
		t.Fatalf("unexpected placeholders: %#v", view)
	}
	if len(view.Expertise) != 5 || view.Expertise[2] != "Node.js" {
		t.Fatalf("unexpected placeholder expertise %v", view.Expertise)
	}
	if len(view.Availability) != 5 {
		t.Fatalf("expected five availability slots, got %d", len(view.Availability))
	}
	friday := view.Availability[4]
	if friday.Day != "Friday" || friday.StartTime != "09:00" || friday.EndTime != "15:00" {
		t.Fatalf("unexpected friday slot %#v", friday)
	}
	want := []string{"phone", "experience", "company", "position", "expertise", "availability"}
	if !slices.Equal(view.Placeholders, want) {
		t.Fatalf("expected placeholders %v, got %v", want, view.Placeholders)
	}

	stored := InterviewerDisplay(InterviewerProfile{
		Phone:        "9111111111",
		Experience:   12,
		Company:      "Acme",
		Position:     "Principal",
		Expertise:    []string{"Go"},
		Availability: []AvailabilitySlot{{Day: "Monday", StartTime: "10:00", EndTime: "12:00"}},
	})
	if len(stored.Placeholders) != 0 || stored.Experience != 12 || stored.Company != "Acme" {
		t.Fatalf("expected stored values to be kept, got %#v", stored)
	}
}
