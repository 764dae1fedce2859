package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
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

func newAuthedContext(t *testing.T, userID uint, method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set("userID", userID)
	return c, w
}

func TestCreateProject_PersistsAndEchoes(t *testing.T) {
	db := newTestDB(t)
	h := NewRecordsHandler(db)

	body := `{
		"title": "Search Engine",
		"techStack": ["Go", "Redis"],
		"startDate": "2024-01-15",
		"position": 1
	}`
	c, w := newAuthedContext(t, 1, http.MethodPost, "/v1/projects", body)
	h.CreateProject(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	var resp projectResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == 0 || resp.Title != "Search Engine" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(resp.TechStack) != 2 || resp.TechStack[1] != "Redis" {
		t.Fatalf("tech stack lost: %v", resp.TechStack)
	}

	var row database.Project
	if err := db.First(&row, resp.ID).Error; err != nil {
		t.Fatalf("row not persisted: %v", err)
	}
	if row.UserID != 1 {
		t.Fatalf("row not scoped to user: %+v", row)
	}
}

func TestCreateProject_RejectsBadDate(t *testing.T) {
	db := newTestDB(t)
	h := NewRecordsHandler(db)

	body := `{"title": "X", "startDate": "January 2024"}`
	c, w := newAuthedContext(t, 1, http.MethodPost, "/v1/projects", body)
	h.CreateProject(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestUpdateProject_OtherUsersRecordIs404(t *testing.T) {
	db := newTestDB(t)
	h := NewRecordsHandler(db)

	row := database.Project{UserID: 2, Title: "Theirs", StartDate: "2024-01-01"}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}

	body := `{"title": "Hijacked", "startDate": "2024-01-01"}`
	c, w := newAuthedContext(t, 1, http.MethodPut, "/v1/projects/1", body)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	h.UpdateProject(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}

	var unchanged database.Project
	if err := db.First(&unchanged, row.ID).Error; err != nil {
		t.Fatalf("reload row: %v", err)
	}
	if unchanged.Title != "Theirs" {
		t.Fatalf("record modified across users: %+v", unchanged)
	}
}

func TestDeleteAchievement_ScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	h := NewRecordsHandler(db)

	mine := database.Achievement{UserID: 1, Title: "Mine", Date: "2024-05-01"}
	theirs := database.Achievement{UserID: 2, Title: "Theirs", Date: "2024-05-01"}
	if err := db.Create(&mine).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := db.Create(&theirs).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	c, w := newAuthedContext(t, 1, http.MethodDelete, "/v1/achievements/1", "")
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	h.DeleteAchievement(c)
	c.Writer.WriteHeaderNow()
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d body=%s", w.Code, w.Body.String())
	}

	c2, w2 := newAuthedContext(t, 1, http.MethodDelete, "/v1/achievements/2", "")
	c2.Params = gin.Params{{Key: "id", Value: "2"}}
	h.DeleteAchievement(c2)
	if w2.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w2.Code, w2.Body.String())
	}
}

func TestListSkills_ReturnsOrderedGroups(t *testing.T) {
	db := newTestDB(t)
	h := NewRecordsHandler(db)

	create := func(body string) {
		t.Helper()
		c, w := newAuthedContext(t, 1, http.MethodPost, "/v1/skills", body)
		h.CreateSkillGroup(c)
		if w.Code != http.StatusCreated {
			t.Fatalf("create skill group: %d %s", w.Code, w.Body.String())
		}
	}
	create(`{"category": "Tools", "skills": [{"name": "Docker", "level": "Intermediate"}], "position": 2}`)
	create(`{"category": "Languages", "skills": [{"name": "Go", "level": "Advanced"}], "position": 1}`)

	c, w := newAuthedContext(t, 1, http.MethodGet, "/v1/skills", "")
	h.ListSkills(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	var groups []skillGroupResponse
	if err := json.Unmarshal(w.Body.Bytes(), &groups); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups got %d", len(groups))
	}
	if groups[0].Category != "Languages" || groups[1].Category != "Tools" {
		t.Fatalf("groups out of order: %+v", groups)
	}
}
