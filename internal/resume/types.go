package resume

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Template 标识简历的视觉风格，仅影响配色与排版，不影响内容。
type Template string

const (
	TemplateModern       Template = "modern"
	TemplateProfessional Template = "professional"
	TemplateAcademic     Template = "academic"
	TemplateCreative     Template = "creative"
)

// PageSize 标识导出 PDF 的纸张尺寸。
type PageSize string

const (
	PageSizeA4     PageSize = "A4"
	PageSizeLetter PageSize = "Letter"
)

// ValidTemplate reports whether t names a known template.
func ValidTemplate(t Template) bool {
	switch t {
	case TemplateModern, TemplateProfessional, TemplateAcademic, TemplateCreative:
		return true
	}
	return false
}

// ValidPageSize reports whether p names a supported paper size.
func ValidPageSize(p PageSize) bool {
	return p == PageSizeA4 || p == PageSizeLetter
}

// Date 是 JSON 载荷中的日期字段。前端既可能提交 "2006-01-02"，
// 也可能提交完整的 RFC3339 时间戳，两者都必须接受。
type Date struct {
	time.Time
}

const dateOnlyLayout = "2006-01-02"

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(dateOnlyLayout, raw); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", raw, err)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Time.Format(dateOnlyLayout))
}

// Profile 是简历头部的联系信息。
type Profile struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	PortfolioWebsite string `json:"portfolioWebsite,omitempty"`
	GithubLink       string `json:"githubLink,omitempty"`
	LinkedinLink     string `json:"linkedinLink,omitempty"`
	PhotoURL         string `json:"photoURL,omitempty"`
}

// Project 描述一个项目条目。EndDate 为空表示仍在进行。
type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	TechStack   []string `json:"techStack,omitempty"`
	ProjectLink string   `json:"projectLink,omitempty"`
	GithubRepo  string   `json:"githubRepo,omitempty"`
	StartDate   Date     `json:"startDate"`
	EndDate     *Date    `json:"endDate,omitempty"`
}

// Education 描述一段教育经历。EndYear 为 nil 表示在读。
type Education struct {
	Institute string  `json:"institute"`
	Degree    string  `json:"degree"`
	Branch    string  `json:"branch"`
	StartYear int     `json:"startYear"`
	EndYear   *int    `json:"endYear,omitempty"`
	Score     float64 `json:"cgpaOrPercentage"`
}

// SkillLevel 是技能熟练度枚举。
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
	SkillExpert       SkillLevel = "Expert"
)

// SkillItem 是技能组内的单项技能。
type SkillItem struct {
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

// SkillGroup 将同类技能归入一个带标签的分组。
type SkillGroup struct {
	Category string      `json:"category"`
	Skills   []SkillItem `json:"skills"`
}

// Achievement 描述一条获奖/成就记录。
type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        Date   `json:"date"`
}

// Position 描述一段任职经历。EndDate 为空渲染为 "Present"。
type Position struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Description  string `json:"description,omitempty"`
	StartDate    Date   `json:"startDate"`
	EndDate      *Date  `json:"endDate,omitempty"`
}

// Certification 描述一项认证。
type Certification struct {
	Title           string `json:"title"`
	Issuer          string `json:"issuer"`
	Description     string `json:"description,omitempty"`
	IssueDate       Date   `json:"issueDate"`
	CertificateLink string `json:"certificateLink,omitempty"`
}

// Course 描述一门修读课程。
type Course struct {
	Title           string `json:"title"`
	Provider        string `json:"provider"`
	CertificateLink string `json:"certificateLink,omitempty"`
	CompletionDate  Date   `json:"completionDate"`
}

// Document 是单次渲染所需的全部简历数据聚合。
// 每次请求时组装、用完即弃，不作为独立实体持久化。
type Document struct {
	Profile        *Profile        `json:"profile,omitempty"`
	Projects       []Project       `json:"projects,omitempty"`
	Education      []Education     `json:"education,omitempty"`
	Skills         []SkillGroup    `json:"skills,omitempty"`
	Achievements   []Achievement   `json:"achievements,omitempty"`
	Positions      []Position      `json:"positions,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
	Courses        []Course        `json:"courses,omitempty"`
}

// Options 控制一次渲染的模板、纸张与导出文件名。
type Options struct {
	Template Template `json:"template,omitempty"`
	PageSize PageSize `json:"pageSize,omitempty"`
	FileName string   `json:"fileName,omitempty"`
}
