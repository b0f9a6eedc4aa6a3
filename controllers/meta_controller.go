package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/koyamahr/engagement-survey-server/config"
	"github.com/koyamahr/engagement-survey-server/models"
	"github.com/koyamahr/engagement-survey-server/utils"
)

type metaQuestion struct {
	QuestionCode string `json:"question_code"`
	QuestionText string `json:"question_text"`
}

// GetSurveyMeta handles GET /api/surveys/:surveyCode/meta.
//
// Returns everything the form needs: the survey header, active departments in
// sort order, active questions bucketed by scale (empty scales are present as
// empty lists, in fixed A-F order), and the static choice vocabularies.
func GetSurveyMeta(c *gin.Context) {
	surveyCode := c.Param("surveyCode")

	var survey models.Survey
	err := config.DB.
		Select("code, name, start_at, end_at, status").
		Where("code = ?", surveyCode).
		First(&survey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "サーベイが見つかりません"})
		return
	}
	if err != nil {
		log.Printf("meta: survey lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "サーベイ取得に失敗しました"})
		return
	}

	var departments []models.Department
	if err := config.DB.
		Select("name").
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Find(&departments).Error; err != nil {
		log.Printf("meta: department fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "部署取得に失敗しました"})
		return
	}
	deptNames := make([]gin.H, 0, len(departments))
	for _, d := range departments {
		deptNames = append(deptNames, gin.H{"name": d.Name})
	}

	var questions []models.Question
	if err := config.DB.
		Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&questions).Error; err != nil {
		log.Printf("meta: question fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "設問取得に失敗しました"})
		return
	}

	questionsByScale := make(map[string][]metaQuestion, len(utils.ScaleOrder))
	for _, s := range utils.ScaleOrder {
		questionsByScale[s] = []metaQuestion{}
	}
	for _, q := range questions {
		if _, ok := questionsByScale[q.Scale]; !ok {
			continue
		}
		questionsByScale[q.Scale] = append(questionsByScale[q.Scale], metaQuestion{
			QuestionCode: q.QuestionCode,
			QuestionText: q.QuestionText,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"survey": gin.H{
			"code":     survey.Code,
			"name":     survey.Name,
			"start_at": survey.StartAt,
			"end_at":   survey.EndAt,
			"status":   survey.Status,
		},
		"departments":      deptNames,
		"questionsByScale": questionsByScale,
		"choices": gin.H{
			"gender":  utils.GenderChoices,
			"ageBand": utils.AgeBandChoices,
			"likert":  utils.LikertChoices,
		},
	})
}
