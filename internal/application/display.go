package application

import "strings"

// Placeholder values rendered in place of empty profile fields. They are
// presentation fallbacks and are never stored.
const (
	PlaceholderPhone                 = "9684235410"
	PlaceholderInterviewerExperience = 5
	PlaceholderInterviewerCompany    = "Tech Solutions Inc."
	PlaceholderInterviewerPosition   = "Senior Software Engineer"
)

func placeholderSkills() []string {
	return []string{"JavaScript", "React", "TypeScript", "Tailwind CSS"}
}

func placeholderEducation() []Education {
	return []Education{
		{Institution: "Indian Institute of Technology", Degree: "B.Tech in Computer Science", Year: "2022", Marks: "8.9 CGPA"},
		{Institution: "ABC Junior College", Degree: "12th Grade", Year: "2018", Marks: "92%"},
	}
}

func placeholderWorkExperience() []WorkExperience {
	return []WorkExperience{
		{
			Title:       "Frontend Developer",
			Company:     "Tech Solutions Inc.",
			StartDate:   "Jan 2023",
			EndDate:     "Present",
			Description: "Worked on building scalable UI components using React and Tailwind CSS.",
		},
		{
			Title:       "Web Development Intern",
			Company:     "StartUpHub",
			StartDate:   "Jun 2022",
			EndDate:     "Dec 2022",
			Description: "Built landing pages and dashboards, collaborated with backend teams.",
		},
	}
}

func placeholderExpertise() []string {
	return []string{"JavaScript", "React", "Node.js", "System Design", "Database Design"}
}

func placeholderAvailability() []AvailabilitySlot {
	slots := make([]AvailabilitySlot, 0, 5)
	for _, day := range []string{"Monday", "Tuesday", "Wednesday", "Thursday"} {
		slots = append(slots, AvailabilitySlot{Day: day, StartTime: "09:00", EndTime: "17:00"})
	}
	return append(slots, AvailabilitySlot{Day: "Friday", StartTime: "09:00", EndTime: "15:00"})
}

// JobSeekerView is the render-ready form of a job seeker profile.
// Placeholders names the fields that were substituted.
type JobSeekerView struct {
	FullName     string
	Phone        string
	Skills       []string
	Education    []Education
	Experience   []WorkExperience
	Placeholders []string
}

// InterviewerView is the render-ready form of an interviewer profile.
type InterviewerView struct {
	FullName     string
	Phone        string
	Experience   int
	Company      string
	Position     string
	Expertise    []string
	Availability []AvailabilitySlot
	Placeholders []string
}

// JobSeekerDisplay fills empty fields of profile with placeholder values.
// profile itself is left untouched.
func JobSeekerDisplay(profile JobSeekerProfile) JobSeekerView {
	view := JobSeekerView{
		FullName:     fullName(profile.FirstName, profile.LastName),
		Phone:        profile.Phone,
		Skills:       cloneStrings(profile.Skills),
		Education:    append([]Education(nil), profile.Education...),
		Experience:   append([]WorkExperience(nil), profile.Experience...),
		Placeholders: []string{},
	}
	if view.Phone == "" {
		view.Phone = PlaceholderPhone
		view.Placeholders = append(view.Placeholders, "phone")
	}
	if len(view.Skills) == 0 {
		view.Skills = placeholderSkills()
		view.Placeholders = append(view.Placeholders, "skills")
	}
	if len(view.Education) == 0 {
		view.Education = placeholderEducation()
		view.Placeholders = append(view.Placeholders, "education")
	}
	if len(view.Experience) == 0 {
		view.Experience = placeholderWorkExperience()
		view.Placeholders = append(view.Placeholders, "experience")
	}
	return view
}

// InterviewerDisplay fills empty fields of profile with placeholder values.
// profile itself is left untouched.
func InterviewerDisplay(profile InterviewerProfile) InterviewerView {
	view := InterviewerView{
		FullName:     fullName(profile.FirstName, profile.LastName),
		Phone:        profile.Phone,
		Experience:   profile.Experience,
		Company:      profile.Company,
		Position:     profile.Position,
		Expertise:    cloneStrings(profile.Expertise),
		Availability: append([]AvailabilitySlot(nil), profile.Availability...),
		Placeholders: []string{},
	}
	if view.Phone == "" {
		view.Phone = PlaceholderPhone
		view.Placeholders = append(view.Placeholders, "phone")
	}
	if view.Experience == 0 {
		view.Experience = PlaceholderInterviewerExperience
		view.Placeholders = append(view.Placeholders, "experience")
	}
	if view.Company == "" {
		view.Company = PlaceholderInterviewerCompany
		view.Placeholders = append(view.Placeholders, "company")
	}
	if view.Position == "" {
		view.Position = PlaceholderInterviewerPosition
		view.Placeholders = append(view.Placeholders, "position")
	}
	if len(view.Expertise) == 0 {
		view.Expertise = placeholderExpertise()
		view.Placeholders = append(view.Placeholders, "expertise")
	}
	if len(view.Availability) == 0 {
		view.Availability = placeholderAvailability()
		view.Placeholders = append(view.Placeholders, "availability")
	}
	return view
}

// SplitDisplayName derives profile names from a session display name: the
// first whitespace separated token is the first name and the remaining tokens,
// joined by single spaces, are the last name.
func SplitDisplayName(name string) (first, last string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
