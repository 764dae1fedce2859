package resume

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func mustDate(t *testing.T, value string) Date {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return Date{Time: parsed}
}

func datePtr(d Date) *Date { return &d }

func renderNormalized(t *testing.T, doc Document, opts Options) string {
	t.Helper()
	doc, opts = Normalize(doc, opts)
	html, err := RenderHTML(doc, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return html
}

func TestRenderHTML_OmitsEmptySections(t *testing.T) {
	doc := Document{
		Profile:  &Profile{Name: "Test User"},
		Projects: []Project{{Title: "Solo Project", StartDate: mustDate(t, "2024-01-10")}},
	}

	html := renderNormalized(t, doc, Options{})

	if !strings.Contains(html, "<h2>Projects</h2>") {
		t.Fatalf("expected Projects heading in output")
	}
	for _, heading := range []string{
		"Education", "Positions of Responsibility", "Skills",
		"Achievements", "Certifications", "Courses",
	} {
		if strings.Contains(html, "<h2>"+heading+"</h2>") {
			t.Fatalf("unexpected %s heading for empty section", heading)
		}
	}
}

func TestRenderHTML_EscapesUserText(t *testing.T) {
	payload := `<script>alert(1)</script>`
	doc := Document{
		Profile:  &Profile{Name: payload},
		Projects: []Project{{Title: payload, Description: "a & b < c", StartDate: mustDate(t, "2023-02-01")}},
	}

	html := renderNormalized(t, doc, Options{})

	if strings.Contains(html, payload) {
		t.Fatalf("raw script tag leaked into markup")
	}
	if !strings.Contains(html, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Fatalf("expected escaped script tag, got:\n%s", html)
	}
	if !strings.Contains(html, "a &amp; b &lt; c") {
		t.Fatalf("expected escaped description")
	}
}

func TestRenderHTML_OpenEndedRangesShowPresent(t *testing.T) {
	doc := Document{
		Positions: []Position{{
			Title:        "Team Lead",
			Organization: "Robotics Club",
			StartDate:    mustDate(t, "2023-06-01"),
		}},
		Projects: []Project{{
			Title:     "Ongoing Project",
			StartDate: mustDate(t, "2024-03-01"),
		}},
	}

	html := renderNormalized(t, doc, Options{})

	if got := strings.Count(html, "2023 - Present"); got != 1 {
		t.Fatalf("expected one open position range, got %d", got)
	}
	if got := strings.Count(html, "2024 - Present"); got != 1 {
		t.Fatalf("expected one open project range, got %d", got)
	}
}

func TestRenderHTML_ClosedRangesShowEndYear(t *testing.T) {
	doc := Document{
		Positions: []Position{{
			Title:        "Member",
			Organization: "Coding Club",
			StartDate:    mustDate(t, "2021-08-01"),
			EndDate:      datePtr(mustDate(t, "2022-05-31")),
		}},
	}

	html := renderNormalized(t, doc, Options{})

	if !strings.Contains(html, "2021 - 2022") {
		t.Fatalf("expected closed year range in output")
	}
	if strings.Contains(html, presentLabel) {
		t.Fatalf("Present must not appear for a closed range")
	}
}

func TestRenderHTML_TruncatesPerSection(t *testing.T) {
	doc := Document{}
	for i := 0; i < 10; i++ {
		doc.Projects = append(doc.Projects, Project{
			Title:     fmt.Sprintf("Project %d", i),
			StartDate: mustDate(t, "2022-01-01"),
		})
		doc.Achievements = append(doc.Achievements, Achievement{
			Title: fmt.Sprintf("Achievement %d", i),
			Date:  mustDate(t, "2022-04-01"),
		})
		doc.Certifications = append(doc.Certifications, Certification{
			Title:     fmt.Sprintf("Certification %d", i),
			Issuer:    "Issuer",
			IssueDate: mustDate(t, "2022-07-01"),
		})
		doc.Courses = append(doc.Courses, Course{
			Title:          fmt.Sprintf("Course %d", i),
			Provider:       "Provider",
			CompletionDate: mustDate(t, "2022-10-01"),
		})
	}

	html := renderNormalized(t, doc, Options{})

	cases := []struct {
		label string
		want  int
	}{
		{"Project", maxProjects},
		{"Achievement", maxAchievements},
		{"Certification", maxCertifications},
		{"Course", maxCourses},
	}
	for _, tc := range cases {
		count := 0
		for i := 0; i < 10; i++ {
			if strings.Contains(html, fmt.Sprintf("%s %d", tc.label, i)) {
				count++
			}
		}
		if count != tc.want {
			t.Fatalf("%s entries: got %d, want %d", tc.label, count, tc.want)
		}
	}
}

func TestRenderHTML_Deterministic(t *testing.T) {
	doc := Document{
		Profile: &Profile{Name: "Repeat Render", Email: "repeat@example.edu"},
		Skills: []SkillGroup{{
			Category: "Languages",
			Skills:   []SkillItem{{Name: "Go", Level: SkillAdvanced}, {Name: "Python", Level: SkillIntermediate}},
		}},
		Achievements: []Achievement{{Title: "Hackathon Winner", Date: mustDate(t, "2024-11-15")}},
	}
	opts := Options{Template: TemplateCreative, PageSize: PageSizeLetter}

	first := renderNormalized(t, doc, opts)
	second := renderNormalized(t, doc, opts)
	if first != second {
		t.Fatalf("render is not deterministic")
	}
}

func TestRenderHTML_TemplateChangesStyleOnly(t *testing.T) {
	doc := Document{
		Profile:  &Profile{Name: "Style Check", Email: "style@example.edu"},
		Projects: []Project{{Title: "Same Content", StartDate: mustDate(t, "2024-01-01")}},
	}

	modern := renderNormalized(t, doc, Options{Template: TemplateModern})
	academic := renderNormalized(t, doc, Options{Template: TemplateAcademic})

	if modern == academic {
		t.Fatalf("templates should differ visually")
	}
	for _, html := range []string{modern, academic} {
		if !strings.Contains(html, "Same Content") {
			t.Fatalf("content missing from template output")
		}
		if !strings.Contains(html, "<h2>Projects</h2>") {
			t.Fatalf("section missing from template output")
		}
	}
	if !strings.Contains(modern, "#2563EB") {
		t.Fatalf("modern accent color missing")
	}
	if !strings.Contains(academic, "#7C3AED") {
		t.Fatalf("academic accent color missing")
	}
}

func TestRenderHTML_MonthYearTimestamps(t *testing.T) {
	doc := Document{
		Achievements:   []Achievement{{Title: "Dean's List", Date: mustDate(t, "2024-03-20")}},
		Certifications: []Certification{{Title: "Cloud Cert", Issuer: "Cloudy", IssueDate: mustDate(t, "2023-08-02")}},
		Courses:        []Course{{Title: "Algorithms", Provider: "MOOC", CompletionDate: mustDate(t, "2022-12-30")}},
	}

	html := renderNormalized(t, doc, Options{})

	for _, want := range []string{"Mar 2024", "Aug 2023", "Dec 2022"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected month+year timestamp %q in output", want)
		}
	}
}

func TestRenderHTML_FixedVirtualPageWidth(t *testing.T) {
	html := renderNormalized(t, Document{Profile: &Profile{Name: "W"}}, Options{})
	if !strings.Contains(html, "width: 816px") {
		t.Fatalf("expected fixed 816px virtual page width")
	}
}

func TestRenderHTML_MinimalEndToEndDocument(t *testing.T) {
	doc := Document{
		Profile: &Profile{Name: "Asha Kumar", Email: "asha@example.edu"},
		Projects: []Project{{
			Title:     "Campus Navigator",
			StartDate: mustDate(t, "2024-02-01"),
		}},
	}

	html := renderNormalized(t, doc, Options{Template: TemplateModern, PageSize: PageSizeA4})

	for _, want := range []string{"Asha Kumar", "asha@example.edu", "<h2>Projects</h2>", "Campus Navigator"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output", want)
		}
	}
	for _, absent := range []string{"<h2>Education</h2>", "<h2>Skills</h2>", "<h2>Certifications</h2>"} {
		if strings.Contains(html, absent) {
			t.Fatalf("unexpected %q for empty section", absent)
		}
	}
}
