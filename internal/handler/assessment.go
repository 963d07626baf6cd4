package handler

import (
	"net/http"

	"github.com/forgo/shepherd/api/internal/middleware"
	"github.com/forgo/shepherd/api/internal/model"
	"github.com/forgo/shepherd/api/internal/service"
)

// AssessmentHandler handles questionnaire and result endpoints
type AssessmentHandler struct {
	svc *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(svc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{svc: svc}
}

// LikertScale describes the rating range of Likert questions
type LikertScale struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// AssessmentDetail is an assessment with everything needed to render it
type AssessmentDetail struct {
	model.AssessmentInfo
	Scale           *LikertScale           `json:"scale,omitempty"`
	Questions       []model.LikertQuestion `json:"questions,omitempty"`
	Categories      map[string]string      `json:"categories,omitempty"`
	WordGroups      []model.DISCWordGroup  `json:"word_groups,omitempty"`
	PassionGroups   []string               `json:"passion_groups,omitempty"`
	PassionTypes    []string               `json:"passion_types,omitempty"`
	ExperienceTypes []string               `json:"experience_types,omitempty"`
	// ExperienceEvents are the options for significant, positive and painful experiences
	ExperienceEvents []string `json:"experience_events,omitempty"`
	// Selections lists the required counts of the narrowing steps
	Selections map[string]int `json:"selections,omitempty"`
}

// assessmentDetail returns the question bank for tt
func assessmentDetail(tt model.TestType) (*AssessmentDetail, bool) {
	var detail *AssessmentDetail
	for _, info := range model.GetAssessments() {
		if info.Type == tt {
			detail = &AssessmentDetail{AssessmentInfo: info}
			break
		}
	}
	if detail == nil {
		return nil, false
	}

	switch tt {
	case model.TestTypePersonality:
		detail.WordGroups = model.DISCWordGroups
	case model.TestTypeGifts:
		detail.Scale = &LikertScale{Min: model.MinLikertValue, Max: model.MaxLikertValue}
		detail.Questions = model.GiftQuestions()
		detail.Categories = model.GiftLabels
	case model.TestTypeSkills:
		detail.Scale = &LikertScale{Min: model.MinLikertValue, Max: model.MaxLikertValue}
		detail.Questions = model.SkillQuestions()
		detail.Categories = model.SkillLabels
	case model.TestTypePassion:
		detail.PassionGroups = model.PassionGroups
		detail.PassionTypes = model.PassionTypes
		detail.Selections = map[string]int{
			"top_five_groups":    model.TopPassionGroupsCount,
			"top_three_passions": model.TopPassionsCount,
		}
	case model.TestTypeExperience:
		detail.ExperienceTypes = model.ExperienceTypes
		detail.ExperienceEvents = model.ExperienceEvents
		detail.Selections = map[string]int{
			"top_two_experiences": model.TopExperiencesCount,
		}
	}
	return detail, true
}

// List handles GET /v1/assessments
func (h *AssessmentHandler) List(w http.ResponseWriter, r *http.Request) {
	WriteCollection(w, http.StatusOK, model.GetAssessments(), nil)
}

// Get handles GET /v1/assessments/{testType}
func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	tt := model.TestType(r.PathValue("testType"))
	detail, ok := assessmentDetail(tt)
	if !ok {
		WriteError(w, model.NewNotFoundError("assessment"))
		return
	}

	WriteData(w, http.StatusOK, detail, map[string]string{
		"submit": "/v1/assessments/" + string(tt) + "/submit",
	})
}

// Submit handles POST /v1/assessments/{testType}/submit
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.SubmitAnswersRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	tt := model.TestType(r.PathValue("testType"))
	result, err := h.svc.Submit(r.Context(), userID, tt, req.Answers)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "submit assessment"))
		return
	}

	WriteData(w, http.StatusCreated, result, map[string]string{
		"self":     "/v1/profile/results/" + string(tt),
		"progress": "/v1/profile/progress",
		"matches":  "/v1/profile/matches",
	})
}

// Results handles GET /v1/profile/results
func (h *AssessmentHandler) Results(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	results, err := h.svc.List(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	if results == nil {
		results = []*model.AssessmentResult{}
	}

	WriteCollection(w, http.StatusOK, results, nil)
}

// Result handles GET /v1/profile/results/{testType}
func (h *AssessmentHandler) Result(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	result, err := h.svc.Get(r.Context(), userID, model.TestType(r.PathValue("testType")))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, result, nil)
}

// Reset handles DELETE /v1/profile/results/{testType}
func (h *AssessmentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	if err := h.svc.Reset(r.Context(), userID, model.TestType(r.PathValue("testType"))); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// Progress handles GET /v1/profile/progress
func (h *AssessmentHandler) Progress(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	progress, err := h.svc.Progress(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, progress, nil)
}
