package api

import (
	"context"
	"net/http"
	"testing"

	"smartfolio/internal/database"
	"smartfolio/internal/records"
)

func TestUpsertProfile_LowercasesEmail(t *testing.T) {
	db := newTestDB(t)
	h := NewProfileHandler(db, nil, nil, "")

	body := `{"name": "Asha Kumar", "email": "Asha@Example.edu"}`
	c, w := newAuthedContext(t, 1, http.MethodPut, "/v1/profile", body)
	h.UpsertProfile(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var profile database.Profile
	if err := db.Where("user_id = ?", uint(1)).First(&profile).Error; err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if profile.Email != "asha@example.edu" {
		t.Fatalf("email not normalized: %q", profile.Email)
	}
}

func TestUpsertProfile_MixedCaseEmailResolvesShareLookup(t *testing.T) {
	db := newTestDB(t)
	h := NewProfileHandler(db, nil, nil, "")

	body := `{"name": "Asha Kumar", "email": "Asha@Example.edu"}`
	c, w := newAuthedContext(t, 1, http.MethodPut, "/v1/profile", body)
	h.UpsertProfile(c)
	if w.Code != http.StatusOK {
		t.Fatalf("upsert profile: %d %s", w.Code, w.Body.String())
	}

	// 分享路径把请求邮箱折叠为小写后查找。
	loader := records.NewLoader(db)
	userID, err := loader.FindUserIDByEmail(context.Background(), "asha@example.edu")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if userID != 1 {
		t.Fatalf("expected user 1 got %d", userID)
	}
}
