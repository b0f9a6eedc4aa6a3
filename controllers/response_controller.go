package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/koyamahr/engagement-survey-server/config"
	"github.com/koyamahr/engagement-survey-server/models"
	"github.com/koyamahr/engagement-survey-server/utils"
)

// findSurveyByCode is shared by the read-side endpoints.
func findSurveyByCode(c *gin.Context) (models.Survey, bool) {
	var survey models.Survey
	err := config.DB.Where("code = ?", c.Param("surveyCode")).First(&survey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "サーベイが見つかりません"})
		return survey, false
	}
	if err != nil {
		log.Printf("survey lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "サーベイ取得に失敗しました"})
		return survey, false
	}
	return survey, true
}

// ListResponses handles GET /api/surveys/:surveyCode/responses?page=1&limit=10
func ListResponses(c *gin.Context) {
	survey, ok := findSurveyByCode(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := config.DB.Model(&models.Response{}).Where("survey_id = ?", survey.ID)

	var total int64
	query.Count(&total)

	var responses []models.Response
	if err := query.
		Preload("Items").
		Order("submitted_at DESC").
		Limit(limit).Offset(offset).
		Find(&responses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "回答一覧の取得に失敗しました"})
		return
	}

	resp := []gin.H{}
	for _, r := range responses {
		items := []gin.H{}
		for _, it := range r.Items {
			items = append(items, gin.H{
				"question_id":  it.QuestionID,
				"raw_score":    it.RawScore,
				"scored_score": it.ScoredScore,
			})
		}
		resp = append(resp, gin.H{
			"id":           r.ID,
			"employee_id":  r.EmployeeID,
			"submitted_at": r.SubmittedAt,
			"items":        items,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"survey_code": survey.Code,
		"page":        page,
		"limit":       limit,
		"total":       total,
		"responses":   resp,
	})
}

// GetSurveyDashboard handles GET /api/surveys/:surveyCode/dashboard.
// Aggregates scored values per scale and per question over all responses.
func GetSurveyDashboard(c *gin.Context) {
	survey, ok := findSurveyByCode(c)
	if !ok {
		return
	}
	db := config.DB

	var responseCount int64
	if err := db.Model(&models.Response{}).
		Where("survey_id = ?", survey.ID).
		Count(&responseCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "集計に失敗しました"})
		return
	}

	var scaleRows []struct {
		Scale    string
		Count    int
		AvgScore float64
	}
	if err := db.Raw(`
		SELECT q.scale AS scale, COUNT(ri.id) AS count, AVG(ri.scored_score) AS avg_score
		FROM response_items ri
		JOIN questions q ON q.id = ri.question_id
		JOIN responses r ON r.id = ri.response_id
		WHERE r.survey_id = ?
		GROUP BY q.scale
	`, survey.ID).Scan(&scaleRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "集計に失敗しました"})
		return
	}
	byScale := map[string]gin.H{}
	for _, row := range scaleRows {
		byScale[row.Scale] = gin.H{"count": row.Count, "avg": row.AvgScore}
	}

	var questionRows []struct {
		QuestionCode string
		Scale        string
		Count        int
		AvgScore     float64
	}
	if err := db.Raw(`
		SELECT q.question_code AS question_code, q.scale AS scale,
		       COUNT(ri.id) AS count, AVG(ri.scored_score) AS avg_score
		FROM response_items ri
		JOIN questions q ON q.id = ri.question_id
		JOIN responses r ON r.id = ri.response_id
		WHERE r.survey_id = ?
		GROUP BY q.question_code, q.scale, q.display_order
		ORDER BY q.display_order
	`, survey.ID).Scan(&questionRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "集計に失敗しました"})
		return
	}

	var histRows []struct {
		QuestionCode string
		ScoredScore  int
		Count        int
	}
	if err := db.Raw(`
		SELECT q.question_code AS question_code, ri.scored_score AS scored_score, COUNT(ri.id) AS count
		FROM response_items ri
		JOIN questions q ON q.id = ri.question_id
		JOIN responses r ON r.id = ri.response_id
		WHERE r.survey_id = ?
		GROUP BY q.question_code, ri.scored_score
	`, survey.ID).Scan(&histRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "集計に失敗しました"})
		return
	}
	histByCode := map[string]map[int]int{}
	for _, row := range histRows {
		if histByCode[row.QuestionCode] == nil {
			histByCode[row.QuestionCode] = map[int]int{}
		}
		histByCode[row.QuestionCode][row.ScoredScore] = row.Count
	}

	// Every scale appears, zero-valued when nothing was answered yet.
	scales := []gin.H{}
	for _, s := range utils.ScaleOrder {
		entry := gin.H{"scale": s, "count": 0, "avg": 0.0}
		if agg, ok := byScale[s]; ok {
			entry["count"] = agg["count"]
			entry["avg"] = agg["avg"]
		}
		scales = append(scales, entry)
	}
	questions := []gin.H{}
	for _, row := range questionRows {
		// scored-value distribution over the full 1..6 range
		histogram := make([]gin.H, 0, utils.LikertPoints)
		for v := 1; v <= utils.LikertPoints; v++ {
			histogram = append(histogram, gin.H{
				"value": v,
				"count": histByCode[row.QuestionCode][v],
			})
		}
		questions = append(questions, gin.H{
			"question_code": row.QuestionCode,
			"scale":         row.Scale,
			"count":         row.Count,
			"avg":           row.AvgScore,
			"histogram":     histogram,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"survey_code":    survey.Code,
		"response_count": responseCount,
		"scales":         scales,
		"questions":      questions,
	})
}
