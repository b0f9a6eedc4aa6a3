package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/koyamahr/engagement-survey-server/config"
	"github.com/koyamahr/engagement-survey-server/models"
)

type ExportRequest struct {
	RangeFrom *string `json:"range_from,omitempty"`
	RangeTo   *string `json:"range_to,omitempty"`
}

// CreateExport handles POST /api/surveys/:surveyCode/export.
// Queues a CSV export job and returns its id; the file is generated in the
// background and fetched through GET /api/exports/:job_id.
func CreateExport(c *gin.Context) {
	survey, ok := findSurveyByCode(c)
	if !ok {
		return
	}

	var req ExportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "リクエストの形式が正しくありません"})
			return
		}
	}

	var fromPtr, toPtr *time.Time
	if req.RangeFrom != nil {
		if t, err := time.Parse(time.RFC3339, *req.RangeFrom); err == nil {
			fromPtr = &t
		}
	}
	if req.RangeTo != nil {
		if t, err := time.Parse(time.RFC3339, *req.RangeTo); err == nil {
			toPtr = &t
		}
	}

	jobID := uuid.New().String()
	job := models.ExportJob{
		JobID:     jobID,
		SurveyID:  survey.ID,
		RangeFrom: fromPtr,
		RangeTo:   toPtr,
		Status:    "queued",
	}
	if err := config.DB.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "エクスポートの作成に失敗しました"})
		return
	}

	go processExportJob(jobID)

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": jobID,
		"status": "queued",
	})
}

// GetExport handles GET /api/exports/:job_id
func GetExport(c *gin.Context) {
	jobID := c.Param("job_id")
	var job models.ExportJob
	if err := config.DB.First(&job, "job_id = ?", jobID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "ジョブが見つかりません"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ジョブ取得に失敗しました"})
		return
	}

	if job.Status == "done" && job.FilePath != nil {
		c.FileAttachment(*job.FilePath, path.Base(*job.FilePath))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id": job.JobID,
		"status": job.Status,
		"error":  job.ErrorMsg,
	})
}

func failExportJob(job *models.ExportJob, err error) {
	em := err.Error()
	config.DB.Model(job).Updates(map[string]interface{}{"status": "failed", "error_msg": em})
}

// processExportJob writes one CSV row per scored item.
func processExportJob(jobID string) {
	var job models.ExportJob
	if err := config.DB.First(&job, "job_id = ?", jobID).Error; err != nil {
		return
	}
	config.DB.Model(&job).Update("status", "processing")

	outDir := "./exports"
	os.MkdirAll(outDir, 0755)

	filename := fmt.Sprintf("export_%s.csv", job.JobID)
	outPath := path.Join(outDir, filename)

	f, err := os.Create(outPath)
	if err != nil {
		failExportJob(&job, err)
		return
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	w.Write([]string{"response_id", "employee_code", "department", "submitted_at", "question_code", "raw_score", "scored_score"})

	q := config.DB.Preload("Items").Where("survey_id = ?", job.SurveyID)
	if job.RangeFrom != nil {
		q = q.Where("submitted_at >= ?", job.RangeFrom)
	}
	if job.RangeTo != nil {
		q = q.Where("submitted_at <= ?", job.RangeTo)
	}
	var responses []models.Response
	if err := q.Find(&responses).Error; err != nil {
		failExportJob(&job, err)
		return
	}

	var employees []models.Employee
	if err := config.DB.Preload("Department").Find(&employees).Error; err != nil {
		failExportJob(&job, err)
		return
	}
	empByID := make(map[uint]models.Employee, len(employees))
	for _, e := range employees {
		empByID[e.ID] = e
	}

	var questions []models.Question
	if err := config.DB.Find(&questions).Error; err != nil {
		failExportJob(&job, err)
		return
	}
	codeByID := make(map[uint]string, len(questions))
	for _, qu := range questions {
		codeByID[qu.ID] = qu.QuestionCode
	}

	for _, r := range responses {
		emp := empByID[r.EmployeeID]
		for _, it := range r.Items {
			w.Write([]string{
				fmt.Sprintf("%d", r.ID),
				emp.EmployeeCode,
				emp.Department.Name,
				r.SubmittedAt.Format(time.RFC3339),
				codeByID[it.QuestionID],
				fmt.Sprintf("%d", it.RawScore),
				fmt.Sprintf("%d", it.ScoredScore),
			})
		}
	}

	fp := outPath
	config.DB.Model(&job).Updates(map[string]interface{}{"status": "done", "file_path": fp})
}
