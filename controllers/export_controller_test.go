package controllers

import (
	"encoding/csv"
	"net/http"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/koyamahr/engagement-survey-server/models"
)

func TestProcessExportJob(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	r := newTestRouter()
	t.Cleanup(func() { os.RemoveAll("./exports") })

	for _, empCode := range []string{"A01", "A02"} {
		p := validPayload()
		p["employeeCode"] = empCode
		if w := postSubmit(t, r, fx.Survey.Code, p); w.Code != http.StatusOK {
			t.Fatalf("submit %s: status = %d", empCode, w.Code)
		}
	}

	job := models.ExportJob{
		JobID:    uuid.New().String(),
		SurveyID: fx.Survey.ID,
		Status:   "queued",
	}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("create job: %v", err)
	}

	processExportJob(job.JobID)

	if err := db.First(&job, "job_id = ?", job.JobID).Error; err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if job.Status != "done" || job.FilePath == nil {
		t.Fatalf("job = %+v, want done with a file", job)
	}

	f, err := os.Open(*job.FilePath)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	// header + one row per item (2 responses x 2 questions)
	if len(rows) != 5 {
		t.Fatalf("row count = %d, want 5", len(rows))
	}
	if rows[0][0] != "response_id" || rows[0][4] != "question_code" {
		t.Fatalf("header = %v", rows[0])
	}

	seen := map[string]bool{}
	for _, row := range rows[1:] {
		seen[row[1]] = true
		if row[2] != "Engineering" {
			t.Fatalf("department column = %q", row[2])
		}
		if row[4] == "F1" && row[6] != "5" {
			t.Fatalf("F1 scored column = %q, want reverse-scored 5", row[6])
		}
	}
	if !seen["A01"] || !seen["A02"] {
		t.Fatalf("employee codes in export = %v", seen)
	}
}
