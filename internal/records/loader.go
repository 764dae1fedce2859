package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"smartfolio/internal/database"
	"smartfolio/internal/resume"
)

// Loader 将一个用户的全部档案记录聚合成可渲染的简历文档。
// 记录的展示顺序由存储层的 position 字段给定，聚合时不重排。
type Loader struct {
	db *gorm.DB
}

// NewLoader 构造 Loader。
func NewLoader(db *gorm.DB) *Loader {
	return &Loader{db: db}
}

// LoadDocument 读取用户的所有记录并转换为领域聚合。
// 缺失的 Profile 不视为错误：文档头部退化为空。
func (l *Loader) LoadDocument(ctx context.Context, userID uint) (resume.Document, error) {
	var doc resume.Document

	var profile database.Profile
	switch err := l.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; {
	case err == nil:
		doc.Profile = &resume.Profile{
			Name:             profile.Name,
			Email:            profile.Email,
			Phone:            profile.Phone,
			PortfolioWebsite: profile.PortfolioWebsite,
			GithubLink:       profile.GithubLink,
			LinkedinLink:     profile.LinkedinLink,
			PhotoURL:         profile.PhotoObjectKey,
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// 允许无档案导出，头部留空
	default:
		return resume.Document{}, fmt.Errorf("load profile: %w", err)
	}

	var projects []database.Project
	if err := l.listOrdered(ctx, userID, &projects); err != nil {
		return resume.Document{}, fmt.Errorf("load projects: %w", err)
	}
	for _, p := range projects {
		doc.Projects = append(doc.Projects, resume.Project{
			Title:       p.Title,
			Description: p.Description,
			TechStack:   decodeStringList(p.TechStack),
			ProjectLink: p.ProjectLink,
			GithubRepo:  p.GithubRepo,
			StartDate:   parseStoredDate(p.StartDate),
			EndDate:     parseStoredDatePtr(p.EndDate),
		})
	}

	var education []database.Education
	if err := l.listOrdered(ctx, userID, &education); err != nil {
		return resume.Document{}, fmt.Errorf("load education: %w", err)
	}
	for _, e := range education {
		doc.Education = append(doc.Education, resume.Education{
			Institute: e.Institute,
			Degree:    e.Degree,
			Branch:    e.Branch,
			StartYear: e.StartYear,
			EndYear:   e.EndYear,
			Score:     e.Score,
		})
	}

	var skills []database.SkillGroup
	if err := l.listOrdered(ctx, userID, &skills); err != nil {
		return resume.Document{}, fmt.Errorf("load skills: %w", err)
	}
	for _, g := range skills {
		doc.Skills = append(doc.Skills, resume.SkillGroup{
			Category: g.Category,
			Skills:   decodeSkillItems(g.Skills),
		})
	}

	var achievements []database.Achievement
	if err := l.listOrdered(ctx, userID, &achievements); err != nil {
		return resume.Document{}, fmt.Errorf("load achievements: %w", err)
	}
	for _, a := range achievements {
		doc.Achievements = append(doc.Achievements, resume.Achievement{
			Title:       a.Title,
			Description: a.Description,
			Date:        parseStoredDate(a.Date),
		})
	}

	var positions []database.PositionRecord
	if err := l.listOrdered(ctx, userID, &positions); err != nil {
		return resume.Document{}, fmt.Errorf("load positions: %w", err)
	}
	for _, p := range positions {
		doc.Positions = append(doc.Positions, resume.Position{
			Title:        p.Title,
			Organization: p.Organization,
			Description:  p.Description,
			StartDate:    parseStoredDate(p.StartDate),
			EndDate:      parseStoredDatePtr(p.EndDate),
		})
	}

	var certifications []database.Certification
	if err := l.listOrdered(ctx, userID, &certifications); err != nil {
		return resume.Document{}, fmt.Errorf("load certifications: %w", err)
	}
	for _, c := range certifications {
		doc.Certifications = append(doc.Certifications, resume.Certification{
			Title:           c.Title,
			Issuer:          c.Issuer,
			Description:     c.Description,
			IssueDate:       parseStoredDate(c.IssueDate),
			CertificateLink: c.CertificateLink,
		})
	}

	var courses []database.Course
	if err := l.listOrdered(ctx, userID, &courses); err != nil {
		return resume.Document{}, fmt.Errorf("load courses: %w", err)
	}
	for _, c := range courses {
		doc.Courses = append(doc.Courses, resume.Course{
			Title:           c.Title,
			Provider:        c.Provider,
			CertificateLink: c.CertificateLink,
			CompletionDate:  parseStoredDate(c.CompletionDate),
		})
	}

	return doc, nil
}

// FindUserIDByEmail 供公开分享路径按邮箱定位档案归属。
func (l *Loader) FindUserIDByEmail(ctx context.Context, email string) (uint, error) {
	var profile database.Profile
	if err := l.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error; err != nil {
		return 0, err
	}
	return profile.UserID, nil
}

func (l *Loader) listOrdered(ctx context.Context, userID uint, dest any) error {
	return l.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC, id ASC").
		Find(dest).Error
}

const storedDateLayout = "2006-01-02"

// parseStoredDate 解析存储层的日期字符串；非法值退化为零值日期。
func parseStoredDate(value string) resume.Date {
	t, err := time.Parse(storedDateLayout, value)
	if err != nil {
		return resume.Date{}
	}
	return resume.Date{Time: t}
}

func parseStoredDatePtr(value *string) *resume.Date {
	if value == nil || *value == "" {
		return nil
	}
	d := parseStoredDate(*value)
	if d.IsZero() {
		return nil
	}
	return &d
}

func decodeStringList(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func decodeSkillItems(raw []byte) []resume.SkillItem {
	if len(raw) == 0 {
		return nil
	}
	var out []resume.SkillItem
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
