package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User 表示系统中的账号信息。
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;size:255"`
	PasswordHash string `gorm:"size:255"`
}

// Profile 是用户的简历头部信息，每个用户最多一条。
type Profile struct {
	gorm.Model
	UserID           uint   `gorm:"uniqueIndex"`
	User             User   `gorm:"constraint:OnDelete:CASCADE"`
	Name             string `gorm:"size:255"`
	Email            string `gorm:"size:255"`
	Phone            string `gorm:"size:64"`
	PortfolioWebsite string `gorm:"size:512"`
	GithubLink       string `gorm:"size:512"`
	LinkedinLink     string `gorm:"size:512"`
	PhotoObjectKey   string `gorm:"size:512"`
}

// Project 是一条项目记录。EndDate 为空表示仍在进行。
type Project struct {
	gorm.Model
	UserID      uint           `gorm:"index"`
	User        User           `gorm:"constraint:OnDelete:CASCADE"`
	Title       string         `gorm:"size:255"`
	Description string         `gorm:"type:text"`
	TechStack   datatypes.JSON `gorm:"type:jsonb"` // JSON 数组：["Go", "Postgres", ...]
	ProjectLink string         `gorm:"size:512"`
	GithubRepo  string         `gorm:"size:512"`
	StartDate   string         `gorm:"size:32"`
	EndDate     *string        `gorm:"size:32"`
	Position    int            `gorm:"index"` // 用户自定义展示顺序
}

// Education 是一条教育经历记录。
type Education struct {
	gorm.Model
	UserID    uint    `gorm:"index"`
	User      User    `gorm:"constraint:OnDelete:CASCADE"`
	Institute string  `gorm:"size:255"`
	Degree    string  `gorm:"size:255"`
	Branch    string  `gorm:"size:255"`
	StartYear int
	EndYear   *int
	Score     float64
	Position  int `gorm:"index"`
}

// SkillGroup 是一个技能分组，组内技能以 JSON 存储。
type SkillGroup struct {
	gorm.Model
	UserID   uint           `gorm:"index"`
	User     User           `gorm:"constraint:OnDelete:CASCADE"`
	Category string         `gorm:"size:255"`
	Skills   datatypes.JSON `gorm:"type:jsonb"` // JSON 数组：[{"name":..,"level":..}]
	Position int            `gorm:"index"`
}

// Achievement 是一条成就记录。
type Achievement struct {
	gorm.Model
	UserID      uint   `gorm:"index"`
	User        User   `gorm:"constraint:OnDelete:CASCADE"`
	Title       string `gorm:"size:255"`
	Description string `gorm:"type:text"`
	Date        string `gorm:"size:32"`
	Position    int    `gorm:"index"`
}

// PositionRecord 是一条任职经历记录。
// 命名避开与排序字段 Position 的冲突。
type PositionRecord struct {
	gorm.Model
	UserID       uint   `gorm:"index"`
	User         User   `gorm:"constraint:OnDelete:CASCADE"`
	Title        string `gorm:"size:255"`
	Organization string `gorm:"size:255"`
	Description  string `gorm:"type:text"`
	StartDate    string `gorm:"size:32"`
	EndDate      *string `gorm:"size:32"`
	Position     int    `gorm:"index"`
}

// Certification 是一条认证记录。
type Certification struct {
	gorm.Model
	UserID          uint   `gorm:"index"`
	User            User   `gorm:"constraint:OnDelete:CASCADE"`
	Title           string `gorm:"size:255"`
	Issuer          string `gorm:"size:255"`
	Description     string `gorm:"type:text"`
	IssueDate       string `gorm:"size:32"`
	CertificateLink string `gorm:"size:512"`
	Position        int    `gorm:"index"`
}

// Course 是一条课程记录。
type Course struct {
	gorm.Model
	UserID          uint   `gorm:"index"`
	User            User   `gorm:"constraint:OnDelete:CASCADE"`
	Title           string `gorm:"size:255"`
	Provider        string `gorm:"size:255"`
	CertificateLink string `gorm:"size:512"`
	CompletionDate  string `gorm:"size:32"`
	Position        int    `gorm:"index"`
}

// ResumeExport 记录一次异步导出任务的状态与产物位置。
type ResumeExport struct {
	gorm.Model
	UserID       uint   `gorm:"index"`
	User         User   `gorm:"constraint:OnDelete:CASCADE"`
	Status       string `gorm:"size:32"` // pending | completed | failed
	Template     string `gorm:"size:32"`
	PageSize     string `gorm:"size:16"`
	FileName     string `gorm:"size:128"`
	PdfObjectKey string `gorm:"size:512"`
	ErrorMessage string `gorm:"size:1024"`
}

// AllModels 列出需要 AutoMigrate 的全部模型。
func AllModels() []any {
	return []any{
		&User{},
		&Profile{},
		&Project{},
		&Education{},
		&SkillGroup{},
		&Achievement{},
		&PositionRecord{},
		&Certification{},
		&Course{},
		&ResumeExport{},
	}
}
