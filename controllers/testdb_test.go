package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/koyamahr/engagement-survey-server/config"
	"github.com/koyamahr/engagement-survey-server/models"
)

// setupTestDB opens a per-test in-memory SQLite database, migrates the
// schema, and swaps it into the package-level handle the handlers use.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Survey{},
		&models.Department{},
		&models.Question{},
		&models.Employee{},
		&models.Response{},
		&models.ResponseItem{},
		&models.ExportJob{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// SQLite takes one writer at a time; a single connection makes
	// concurrent requests queue at the pool instead of erroring busy.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })
	return db
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/surveys/:surveyCode/meta", GetSurveyMeta)
	r.POST("/api/surveys/:surveyCode/submit", SubmitResponse)
	r.GET("/api/surveys/:surveyCode/responses", ListResponses)
	r.GET("/api/surveys/:surveyCode/dashboard", GetSurveyDashboard)
	return r
}

type fixture struct {
	Survey      models.Survey
	Engineering models.Department
}

// seedFixture creates an open survey "2026-02" with an active Engineering
// department, an inactive department, active questions A1 (straight) and F1
// (reverse), and an inactive question B9.
func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	survey := models.Survey{
		Code:    "2026-02",
		Name:    "従業員エンゲージメント調査 2026-02",
		StartAt: time.Now().Add(-24 * time.Hour),
		EndAt:   time.Now().Add(24 * time.Hour),
		Status:  "open",
	}
	if err := db.Create(&survey).Error; err != nil {
		t.Fatalf("seed survey: %v", err)
	}

	eng := models.Department{Name: "Engineering", IsActive: true, SortOrder: 1}
	if err := db.Create(&eng).Error; err != nil {
		t.Fatalf("seed department: %v", err)
	}
	old := models.Department{Name: "旧営業部", IsActive: false, SortOrder: 2}
	if err := db.Create(&old).Error; err != nil {
		t.Fatalf("seed inactive department: %v", err)
	}

	questions := []models.Question{
		{QuestionCode: "A1", Scale: "A", QuestionText: "仕事にやりがいを感じる", DisplayOrder: 1, IsActive: true},
		{QuestionCode: "F1", Scale: "F", QuestionText: "この設問には「あてはまらない」を選んでください", DisplayOrder: 2, IsReverse: true, IsActive: true},
		{QuestionCode: "B9", Scale: "B", QuestionText: "旧設問", DisplayOrder: 3, IsActive: false},
	}
	if err := db.Create(&questions).Error; err != nil {
		t.Fatalf("seed questions: %v", err)
	}

	return fixture{Survey: survey, Engineering: eng}
}

func postSubmit(t *testing.T, r *gin.Engine, surveyCode string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	switch p := payload.(type) {
	case string:
		body.WriteString(p)
	default:
		if err := json.NewEncoder(&body).Encode(p); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req := httptest.NewRequest(http.MethodPost, "/api/surveys/"+surveyCode+"/submit", &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getJSON(t *testing.T, r *gin.Engine, url string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v (body %q)", url, err, w.Body.String())
	}
	return w, out
}

func decodeReason(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var out struct {
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode rejection body %q: %v", w.Body.String(), err)
	}
	return out.Reason
}

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"employeeCode":   "a01",
		"departmentName": "Engineering",
		"gender":         "未回答",
		"ageBand":        "30代",
		"answers":        map[string]int{"A1": 5, "F1": 2},
	}
}
