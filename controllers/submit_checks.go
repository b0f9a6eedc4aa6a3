package controllers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/koyamahr/engagement-survey-server/models"
	"github.com/koyamahr/engagement-survey-server/utils"
)

// Machine-checkable rejection reasons. Clients map the status class to UI
// messaging; the reason string is stable for logging and tests.
const (
	ReasonInvalidRequest      = "invalid_request"
	ReasonInvalidEmployeeCode = "invalid_employee_code"
	ReasonEmptyAnswers        = "empty_answers"
	ReasonSurveyNotFound      = "survey_not_found"
	ReasonOutsideWindow       = "outside_window"
	ReasonInvalidDepartment   = "invalid_department"
	ReasonInvalidQuestionCode = "invalid_question_code"
	ReasonInvalidScore        = "invalid_score"
	ReasonDuplicateResponse   = "duplicate_response"
	ReasonEmployeeUpsert      = "employee_upsert_failed"
	ReasonItemInsert          = "item_insert_failed"
	ReasonInternal            = "internal_error"
)

// rejection is the outcome of one failed pipeline gate.
type rejection struct {
	status  int
	reason  string
	message string
}

func reject(c *gin.Context, r *rejection) {
	c.JSON(r.status, gin.H{"error": r.message, "reason": r.reason})
}

func rejectInvalidRequest(message string) *rejection {
	return &rejection{status: http.StatusBadRequest, reason: ReasonInvalidRequest, message: message}
}

func rejectInternal(message string) *rejection {
	return &rejection{status: http.StatusInternalServerError, reason: ReasonInternal, message: message}
}

// checkEmployeeCode normalizes the submitted code and verifies its format.
func checkEmployeeCode(raw string) (string, *rejection) {
	code := utils.NormalizeEmployeeCode(raw)
	if !utils.ValidEmployeeCode(code) {
		return "", &rejection{
			status:  http.StatusBadRequest,
			reason:  ReasonInvalidEmployeeCode,
			message: "社員IDは半角英数字3〜20文字で入力してください",
		}
	}
	return code, nil
}

// checkWindow verifies the survey accepts submissions at the given instant:
// status must be open and now must fall inside [start_at, end_at].
func checkWindow(s models.Survey, now time.Time) *rejection {
	if s.Status != "open" || now.Before(s.StartAt) || now.After(s.EndAt) {
		return &rejection{
			status:  http.StatusForbidden,
			reason:  ReasonOutsideWindow,
			message: "回答期間外です",
		}
	}
	return nil
}

// checkOptionalChoice validates an optional enumerated field and converts it
// to its stored form: nil when absent or the no-answer sentinel.
func checkOptionalChoice(v string, allowed []string, field string) (*string, *rejection) {
	if v == "" || v == utils.NoAnswer {
		return nil, nil
	}
	if !utils.ValidChoice(v, allowed) {
		return nil, rejectInvalidRequest(fmt.Sprintf("%sの値が正しくありません", field))
	}
	return &v, nil
}

// resolveAnswers validates every answer key and value against the active
// question set and produces the scored items. All entries are checked before
// anything is written; one bad entry rejects the whole submission. Keys are
// visited in sorted order so the reported offending code is deterministic.
func resolveAnswers(answers map[string]float64, questions []models.Question) ([]models.ResponseItem, *rejection) {
	byCode := make(map[string]models.Question, len(questions))
	for _, q := range questions {
		if !q.IsActive || !utils.ValidScale(q.Scale) {
			continue
		}
		byCode[q.QuestionCode] = q
	}

	codes := make([]string, 0, len(answers))
	for code := range answers {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	items := make([]models.ResponseItem, 0, len(codes))
	for _, code := range codes {
		q, ok := byCode[code]
		if !ok {
			return nil, &rejection{
				status:  http.StatusBadRequest,
				reason:  ReasonInvalidQuestionCode,
				message: fmt.Sprintf("設問コード %s が正しくありません", code),
			}
		}
		v := answers[code]
		if !utils.ValidScore(v) {
			return nil, &rejection{
				status:  http.StatusBadRequest,
				reason:  ReasonInvalidScore,
				message: fmt.Sprintf("設問 %s の回答値が正しくありません（1〜6の整数）", code),
			}
		}
		raw := int(v)
		items = append(items, models.ResponseItem{
			QuestionID:  q.ID,
			RawScore:    raw,
			ScoredScore: utils.ScoreAnswer(raw, q.IsReverse),
		})
	}
	return items, nil
}
