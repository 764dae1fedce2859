package records

import (
	"context"
	"errors"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"smartfolio/internal/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func strPtr(s string) *string { return &s }

func TestLoadDocument_AggregatesRecordsInStoredOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.Create(&database.Profile{
		UserID: 1,
		Name:   "Asha Kumar",
		Email:  "asha@example.edu",
	}).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	// 故意乱序插入，position 决定最终顺序。
	projects := []database.Project{
		{UserID: 1, Title: "Second", StartDate: "2023-01-10", Position: 2},
		{UserID: 1, Title: "First", StartDate: "2022-06-01", EndDate: strPtr("2022-12-01"),
			TechStack: datatypes.JSON(`["Go","Postgres"]`), Position: 1},
	}
	for i := range projects {
		if err := db.Create(&projects[i]).Error; err != nil {
			t.Fatalf("seed project: %v", err)
		}
	}

	if err := db.Create(&database.SkillGroup{
		UserID:   1,
		Category: "Backend",
		Skills:   datatypes.JSON(`[{"name":"Go","level":"Advanced"}]`),
		Position: 1,
	}).Error; err != nil {
		t.Fatalf("seed skill group: %v", err)
	}

	if err := db.Create(&database.Achievement{
		UserID: 1, Title: "Hackathon Winner", Date: "2024-03-15", Position: 1,
	}).Error; err != nil {
		t.Fatalf("seed achievement: %v", err)
	}

	loader := NewLoader(db)
	doc, err := loader.LoadDocument(ctx, 1)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}

	if doc.Profile == nil || doc.Profile.Name != "Asha Kumar" {
		t.Fatalf("profile not loaded: %+v", doc.Profile)
	}
	if len(doc.Projects) != 2 {
		t.Fatalf("expected 2 projects got %d", len(doc.Projects))
	}
	if doc.Projects[0].Title != "First" || doc.Projects[1].Title != "Second" {
		t.Fatalf("projects out of order: %q, %q", doc.Projects[0].Title, doc.Projects[1].Title)
	}
	if got := doc.Projects[0].TechStack; len(got) != 2 || got[0] != "Go" {
		t.Fatalf("tech stack not decoded: %v", got)
	}
	if doc.Projects[0].EndDate == nil {
		t.Fatalf("closed project lost its end date")
	}
	if doc.Projects[1].EndDate != nil {
		t.Fatalf("open-ended project gained an end date")
	}
	if got := doc.Projects[0].StartDate.Time.Year(); got != 2022 {
		t.Fatalf("start date not parsed, year=%d", got)
	}

	if len(doc.Skills) != 1 || len(doc.Skills[0].Skills) != 1 {
		t.Fatalf("skills not decoded: %+v", doc.Skills)
	}
	if doc.Skills[0].Skills[0].Level != "Advanced" {
		t.Fatalf("skill level lost: %+v", doc.Skills[0].Skills[0])
	}

	if len(doc.Achievements) != 1 || doc.Achievements[0].Date.Time.Month() != 3 {
		t.Fatalf("achievement date not parsed: %+v", doc.Achievements)
	}
}

func TestLoadDocument_MissingProfileIsNotAnError(t *testing.T) {
	db := newTestDB(t)

	loader := NewLoader(db)
	doc, err := loader.LoadDocument(context.Background(), 42)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	if doc.Profile != nil {
		t.Fatalf("expected nil profile, got %+v", doc.Profile)
	}
	if len(doc.Projects) != 0 || len(doc.Education) != 0 {
		t.Fatalf("expected empty document, got %+v", doc)
	}
}

func TestLoadDocument_ScopedToUser(t *testing.T) {
	db := newTestDB(t)

	if err := db.Create(&database.Course{
		UserID: 1, Title: "Distributed Systems", Provider: "MIT OCW",
		CompletionDate: "2024-06-01", Position: 1,
	}).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}

	loader := NewLoader(db)
	doc, err := loader.LoadDocument(context.Background(), 2)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	if len(doc.Courses) != 0 {
		t.Fatalf("leaked records across users: %+v", doc.Courses)
	}
}

func TestFindUserIDByEmail(t *testing.T) {
	db := newTestDB(t)

	if err := db.Create(&database.Profile{
		UserID: 7,
		Name:   "Ravi Iyer",
		Email:  "ravi@example.edu",
	}).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	loader := NewLoader(db)
	userID, err := loader.FindUserIDByEmail(context.Background(), "ravi@example.edu")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if userID != 7 {
		t.Fatalf("expected user 7 got %d", userID)
	}

	_, err = loader.FindUserIDByEmail(context.Background(), "nobody@example.edu")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
