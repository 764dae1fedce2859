package resume

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
)

// 打印排版的固定截断上限，用于单页适配。
// 顺序由调用方给定，渲染器不重新排序。
const (
	maxProjects       = 4
	maxAchievements   = 6
	maxCertifications = 4
	maxCourses        = 6
)

const presentLabel = "Present"

// styleSpec 描述单个模板的配色与字号。模板只改变呈现，
// 区块顺序、截断数量与内容在所有模板间保持一致。
type styleSpec struct {
	Accent     template.CSS
	FontFamily template.CSS
	NamePx     int
	HeadingPx  int
	BodyPx     int
}

var templateStyles = map[Template]styleSpec{
	TemplateModern: {
		Accent:     "#2563EB",
		FontFamily: `system-ui, -apple-system, "Segoe UI", Roboto, Arial, sans-serif`,
		NamePx:     28,
		HeadingPx:  15,
		BodyPx:     13,
	},
	TemplateProfessional: {
		Accent:     "#0EA5E9",
		FontFamily: `Georgia, "Times New Roman", serif`,
		NamePx:     26,
		HeadingPx:  14,
		BodyPx:     13,
	},
	TemplateAcademic: {
		Accent:     "#7C3AED",
		FontFamily: `"Times New Roman", Georgia, serif`,
		NamePx:     24,
		HeadingPx:  14,
		BodyPx:     13,
	},
	TemplateCreative: {
		Accent:     "#DC2626",
		FontFamily: `"Trebuchet MS", Verdana, Arial, sans-serif`,
		NamePx:     30,
		HeadingPx:  16,
		BodyPx:     13,
	},
}

var resumeTemplate = template.Must(template.New("resume").Parse(resumeTemplateHTML))

type educationView struct {
	Heading   string
	Institute string
	Range     string
	Score     string
}

type positionView struct {
	Title        string
	Organization string
	Description  string
	Range        string
}

type projectView struct {
	Title       string
	Description string
	Tech        string
	Range       string
}

type skillGroupView struct {
	Category string
	Names    string
}

type datedItemView struct {
	Title string
	Date  string
}

type certificationView struct {
	Title  string
	Issuer string
	Date   string
}

type courseView struct {
	Title    string
	Provider string
	Date     string
}

type documentView struct {
	Style          styleSpec
	Name           string
	Contacts       []string
	Education      []educationView
	Positions      []positionView
	Projects       []projectView
	Skills         []skillGroupView
	Achievements   []datedItemView
	Certifications []certificationView
	Courses        []courseView
}

// RenderHTML 将规整后的文档渲染为自包含的 HTML 标记。
// 同一输入永远产生字节级一致的输出；所有用户文本经由
// html/template 的上下文转义插入。
func RenderHTML(doc Document, opts Options) (string, error) {
	style, ok := templateStyles[opts.Template]
	if !ok {
		style = templateStyles[TemplateModern]
	}

	view := documentView{Style: style}

	if doc.Profile != nil {
		view.Name = doc.Profile.Name
		for _, c := range []string{
			doc.Profile.Email,
			doc.Profile.Phone,
			doc.Profile.LinkedinLink,
			doc.Profile.GithubLink,
			doc.Profile.PortfolioWebsite,
		} {
			if c != "" {
				view.Contacts = append(view.Contacts, c)
			}
		}
	}

	for _, e := range doc.Education {
		endYear := presentLabel
		if e.EndYear != nil {
			endYear = strconv.Itoa(*e.EndYear)
		}
		view.Education = append(view.Education, educationView{
			Heading:   fmt.Sprintf("%s in %s", e.Degree, e.Branch),
			Institute: e.Institute,
			Range:     fmt.Sprintf("%d - %s", e.StartYear, endYear),
			Score:     strconv.FormatFloat(e.Score, 'f', -1, 64),
		})
	}

	for _, p := range doc.Positions {
		view.Positions = append(view.Positions, positionView{
			Title:        p.Title,
			Organization: p.Organization,
			Description:  p.Description,
			Range:        yearRange(p.StartDate, p.EndDate),
		})
	}

	for _, p := range truncate(doc.Projects, maxProjects) {
		view.Projects = append(view.Projects, projectView{
			Title:       p.Title,
			Description: p.Description,
			Tech:        strings.Join(compact(p.TechStack), ", "),
			Range:       yearRange(p.StartDate, p.EndDate),
		})
	}

	for _, g := range doc.Skills {
		names := make([]string, 0, len(g.Skills))
		for _, s := range g.Skills {
			names = append(names, s.Name)
		}
		view.Skills = append(view.Skills, skillGroupView{
			Category: g.Category,
			Names:    strings.Join(names, ", "),
		})
	}

	for _, a := range truncate(doc.Achievements, maxAchievements) {
		view.Achievements = append(view.Achievements, datedItemView{
			Title: a.Title,
			Date:  monthYear(a.Date),
		})
	}

	for _, c := range truncate(doc.Certifications, maxCertifications) {
		view.Certifications = append(view.Certifications, certificationView{
			Title:  c.Title,
			Issuer: c.Issuer,
			Date:   monthYear(c.IssueDate),
		})
	}

	for _, c := range truncate(doc.Courses, maxCourses) {
		view.Courses = append(view.Courses, courseView{
			Title:    c.Title,
			Provider: c.Provider,
			Date:     monthYear(c.CompletionDate),
		})
	}

	var b strings.Builder
	if err := resumeTemplate.Execute(&b, view); err != nil {
		return "", fmt.Errorf("execute resume template: %w", err)
	}
	return b.String(), nil
}

func truncate[T any](items []T, max int) []T {
	if len(items) > max {
		return items[:max]
	}
	return items
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

// yearRange 渲染任职/项目的年份区间摘要；结束日期缺失表示至今。
func yearRange(start Date, end *Date) string {
	from := ""
	if !start.IsZero() {
		from = strconv.Itoa(start.Year())
	}
	to := presentLabel
	if end != nil && !end.IsZero() {
		to = strconv.Itoa(end.Year())
	}
	if from == "" {
		return to
	}
	return from + " - " + to
}

// monthYear 渲染完整的月份+年份时间戳（如 "Jan 2024"）。
func monthYear(d Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("Jan 2006")
}
