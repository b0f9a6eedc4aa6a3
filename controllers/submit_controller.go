package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/koyamahr/engagement-survey-server/config"
	"github.com/koyamahr/engagement-survey-server/models"
	"github.com/koyamahr/engagement-survey-server/utils"
)

type SubmitReq struct {
	EmployeeCode   string             `json:"employeeCode"`
	DepartmentName string             `json:"departmentName"`
	Gender         string             `json:"gender"`
	AgeBand        string             `json:"ageBand"`
	Answers        map[string]float64 `json:"answers"`
}

// SubmitResponse handles POST /api/surveys/:surveyCode/submit.
//
// The handler is an ordered pipeline: every validation gate runs before the
// first write, then the employee is upserted, then the response row and its
// scored items are created in one transaction. Duplicate submissions are not
// pre-checked by a read; the composite unique index on responses rejects the
// second insert, which keeps concurrent duplicates race-free.
func SubmitResponse(c *gin.Context) {
	surveyCode := c.Param("surveyCode")

	// 1. Payload shape
	var req SubmitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		reject(c, rejectInvalidRequest("リクエストの形式が正しくありません"))
		return
	}

	// 2. Employee code: trim, uppercase, format check
	employeeCode, rej := checkEmployeeCode(req.EmployeeCode)
	if rej != nil {
		reject(c, rej)
		return
	}

	// 3. Department presence
	departmentName := strings.TrimSpace(req.DepartmentName)
	if departmentName == "" {
		reject(c, rejectInvalidRequest("部署を選択してください"))
		return
	}

	// 4. Answers presence
	if len(req.Answers) == 0 {
		reject(c, &rejection{
			status:  http.StatusBadRequest,
			reason:  ReasonEmptyAnswers,
			message: "回答が空です",
		})
		return
	}

	// Optional demographics; the no-answer sentinel becomes NULL
	gender, rej := checkOptionalChoice(req.Gender, utils.GenderChoices, "性別")
	if rej != nil {
		reject(c, rej)
		return
	}
	ageBand, rej := checkOptionalChoice(req.AgeBand, utils.AgeBandChoices, "年代")
	if rej != nil {
		reject(c, rej)
		return
	}

	// 5. Survey lookup and answer window; now is evaluated once here
	var survey models.Survey
	if err := config.DB.Where("code = ?", surveyCode).First(&survey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			reject(c, &rejection{
				status:  http.StatusNotFound,
				reason:  ReasonSurveyNotFound,
				message: "サーベイが見つかりません",
			})
			return
		}
		log.Printf("submit: survey lookup failed: %v", err)
		reject(c, rejectInternal("サーバーエラーが発生しました"))
		return
	}
	if rej := checkWindow(survey, time.Now()); rej != nil {
		reject(c, rej)
		return
	}

	// 6. Active department by exact name
	var dept models.Department
	if err := config.DB.Where("name = ? AND is_active = ?", departmentName, true).First(&dept).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			reject(c, &rejection{
				status:  http.StatusBadRequest,
				reason:  ReasonInvalidDepartment,
				message: "部署が正しくありません",
			})
			return
		}
		log.Printf("submit: department lookup failed: %v", err)
		reject(c, rejectInternal("サーバーエラーが発生しました"))
		return
	}

	// 7. Resolve and score every answer before any write
	codes := make([]string, 0, len(req.Answers))
	for code := range req.Answers {
		codes = append(codes, code)
	}
	var questions []models.Question
	if err := config.DB.Where("question_code IN ?", codes).Find(&questions).Error; err != nil {
		log.Printf("submit: question lookup failed: %v", err)
		reject(c, rejectInternal("サーバーエラーが発生しました"))
		return
	}
	items, rej := resolveAnswers(req.Answers, questions)
	if rej != nil {
		reject(c, rej)
		return
	}

	// 8. Employee upsert keyed by employee_code: a re-submission refreshes
	// department and demographics instead of duplicating the employee.
	employee := models.Employee{
		EmployeeCode: employeeCode,
		DepartmentID: dept.ID,
		Gender:       gender,
		AgeBand:      ageBand,
	}
	if err := config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"department_id", "gender", "age_band", "updated_at"}),
	}).Create(&employee).Error; err != nil {
		log.Printf("submit: employee upsert failed: %v", err)
		reject(c, &rejection{
			status:  http.StatusInternalServerError,
			reason:  ReasonEmployeeUpsert,
			message: "社員情報の保存に失敗しました",
		})
		return
	}
	if err := config.DB.Where("employee_code = ?", employeeCode).First(&employee).Error; err != nil {
		log.Printf("submit: employee fetch failed: %v", err)
		reject(c, rejectInternal("サーバーエラーが発生しました"))
		return
	}

	// 9-10. Response row plus all items in one transaction. The unique index
	// on (survey_id, employee_id) fires here for an employee who already
	// answered; an items failure rolls the response row back with it.
	itemsFailed := false
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		response := models.Response{
			SurveyID:   survey.ID,
			EmployeeID: employee.ID,
		}
		if err := tx.Create(&response).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ResponseID = response.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			itemsFailed = true
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			reject(c, &rejection{
				status:  http.StatusConflict,
				reason:  ReasonDuplicateResponse,
				message: "回答済みのため再回答できません",
			})
			return
		}
		log.Printf("submit: save failed: %v", err)
		if itemsFailed {
			reject(c, &rejection{
				status:  http.StatusInternalServerError,
				reason:  ReasonItemInsert,
				message: "回答の保存に失敗しました",
			})
			return
		}
		reject(c, rejectInternal("サーバーエラーが発生しました"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
