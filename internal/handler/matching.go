package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/forgo/shepherd/api/internal/matching"
	"github.com/forgo/shepherd/api/internal/middleware"
	"github.com/forgo/shepherd/api/internal/model"
	"github.com/forgo/shepherd/api/internal/service"
)

// MatchingHandler handles the ministry catalog and match endpoints
type MatchingHandler struct {
	svc   *service.MatchingService
	staff *service.StaffService
}

// NewMatchingHandler creates a new matching handler. staff resolves users for
// the staff match view.
func NewMatchingHandler(svc *service.MatchingService, staff *service.StaffService) *MatchingHandler {
	return &MatchingHandler{svc: svc, staff: staff}
}

// Ministries handles GET /v1/ministries
func (h *MatchingHandler) Ministries(w http.ResponseWriter, r *http.Request) {
	WriteCollection(w, http.StatusOK, h.svc.Ministries(), nil)
}

// Ministry handles GET /v1/ministries/{ministryId}
func (h *MatchingHandler) Ministry(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Ministry(r.PathValue("ministryId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, m, nil)
}

// Matches handles GET /v1/profile/matches
func (h *MatchingHandler) Matches(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}
	h.writeMatches(w, r, userID)
}

// UserMatches handles GET /v1/staff/users/{userId}/matches
func (h *MatchingHandler) UserMatches(w http.ResponseWriter, r *http.Request) {
	user, err := h.staff.User(r.Context(), r.PathValue("userId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	h.writeMatches(w, r, user.ID)
}

func (h *MatchingHandler) writeMatches(w http.ResponseWriter, r *http.Request, userID string) {
	opts, problem := parseMatchOptions(r.URL.Query())
	if problem != nil {
		WriteError(w, problem)
		return
	}

	results, err := h.svc.Matches(r.Context(), userID, opts)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "compute matches"))
		return
	}
	if results == nil {
		results = []model.MatchResult{}
	}

	WriteCollection(w, http.StatusOK, results, nil)
}

// parseMatchOptions reads filters and ordering from the query string. List
// filters accept repeated parameters or comma separated values.
func parseMatchOptions(q url.Values) (matching.Options, *model.ProblemDetails) {
	field, order, err := matching.ParseSort(q.Get("sort"), q.Get("order"))
	if err != nil {
		return matching.Options{}, MapServiceError(err)
	}

	opts := matching.Options{
		Sort:  field,
		Order: order,
		Filters: matching.Filters{
			Search:           q.Get("q"),
			PersonalityTypes: listParam(q, "personality"),
			Gifts:            listParam(q, "gift"),
			Skills:           listParam(q, "skill"),
			PassionGroups:    listParam(q, "passion"),
		},
	}

	for _, c := range listParam(q, "commitment") {
		level := model.CommitmentLevel(c)
		if !level.IsValid() {
			return matching.Options{}, model.NewBadRequestError("unknown commitment level: " + c)
		}
		opts.Filters.CommitmentLevels = append(opts.Filters.CommitmentLevels, level)
	}
	return opts, nil
}

func listParam(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
