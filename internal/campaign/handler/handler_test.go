package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"fundguard/internal/campaign"
	"fundguard/internal/campaign/lock"
	"fundguard/internal/moderation"
	"fundguard/internal/moderation/history"
	id "fundguard/pkg/domain"
	"fundguard/pkg/requestcontext"
)

type HandlerSuite struct {
	suite.Suite
	router     http.Handler
	ownerID    id.UserID
	reviewerID id.UserID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine, err := moderation.NewEngine(moderation.DefaultThresholds(), logger, nil)
	s.Require().NoError(err)

	service := campaign.NewService(
		campaign.NewInMemoryStore(),
		history.NewInMemoryStore(),
		engine,
		lock.NewInMemoryLocker(),
		nil,
		logger,
		nil,
	)

	s.ownerID = id.UserID(uuid.New())
	s.reviewerID = id.UserID(uuid.New())

	r := chi.NewRouter()
	r.Use(testIdentity)
	New(service, logger).Register(r)
	s.router = r
}

// testIdentity reads the identity from test headers instead of a real JWT.
func testIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if raw := r.Header.Get("X-Test-User"); raw != "" {
			userID, err := id.ParseUserID(raw)
			if err == nil {
				ctx = requestcontext.WithUserID(ctx, userID)
			}
		}
		if role := r.Header.Get("X-Test-Role"); role != "" {
			ctx = requestcontext.WithRole(ctx, role)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *HandlerSuite) do(method, path string, body any, userID id.UserID, role string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if !userID.IsNil() {
		req.Header.Set("X-Test-User", userID.String())
	}
	if role != "" {
		req.Header.Set("X-Test-Role", role)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func createBody() map[string]any {
	return map[string]any{
		"title":       "Help my father's cancer treatment",
		"story":       "My father was diagnosed at the hospital. His doctor recommends surgery and chemotherapy. I will post receipts and weekly updates, all documented.",
		"need_type":   "medical",
		"goal_amount": 8000,
		"budget_breakdown": []map[string]any{
			{"description": "Surgery costs", "amount": 6000},
			{"description": "Chemotherapy sessions", "amount": 2000},
		},
	}
}

func (s *HandlerSuite) createCampaign() string {
	rec := s.do(http.MethodPost, "/campaigns", createBody(), s.ownerID, requestcontext.RoleDonor)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Campaign struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"campaign"`
		Moderation *moderation.ScoreResult `json:"moderation"`
	}
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Require().NotEmpty(resp.Campaign.ID)
	return resp.Campaign.ID
}

func (s *HandlerSuite) TestCreateReturnsModerationResult() {
	rec := s.do(http.MethodPost, "/campaigns", createBody(), s.ownerID, requestcontext.RoleDonor)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Campaign struct {
			Status string `json:"status"`
		} `json:"campaign"`
		Moderation struct {
			Decision string `json:"decision"`
			Scores   struct {
				Overall int `json:"overall"`
			} `json:"scores"`
		} `json:"moderation"`
	}
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal("approved", resp.Campaign.Status)
	s.Equal("approved", resp.Moderation.Decision)
	s.GreaterOrEqual(resp.Moderation.Scores.Overall, 70)
}

func (s *HandlerSuite) TestCreateRequiresAuth() {
	rec := s.do(http.MethodPost, "/campaigns", createBody(), id.UserID{}, "")
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *HandlerSuite) TestCreateRejectsBadBody() {
	body := createBody()
	body["need_type"] = "vacation"
	rec := s.do(http.MethodPost, "/campaigns", body, s.ownerID, requestcontext.RoleDonor)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestCreateRejectsInvalidJSON() {
	req := httptest.NewRequest(http.MethodPost, "/campaigns", bytes.NewReader([]byte("{not json")))
	req.Header.Set("X-Test-User", s.ownerID.String())
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestGetCampaign() {
	campaignID := s.createCampaign()

	rec := s.do(http.MethodGet, "/campaigns/"+campaignID, nil, s.ownerID, requestcontext.RoleDonor)
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal(campaignID, resp.ID)
	s.Equal("approved", resp.Status)
}

func (s *HandlerSuite) TestGetUnknownCampaign() {
	rec := s.do(http.MethodGet, "/campaigns/"+uuid.NewString(), nil, s.ownerID, requestcontext.RoleDonor)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestGetMalformedID() {
	rec := s.do(http.MethodGet, "/campaigns/not-a-uuid", nil, s.ownerID, requestcontext.RoleDonor)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestReEvaluateByOwner() {
	campaignID := s.createCampaign()

	rec := s.do(http.MethodPost, "/campaigns/"+campaignID+"/reevaluate", nil, s.ownerID, requestcontext.RoleDonor)
	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (s *HandlerSuite) TestReEvaluateByStrangerForbidden() {
	campaignID := s.createCampaign()

	stranger := id.UserID(uuid.New())
	rec := s.do(http.MethodPost, "/campaigns/"+campaignID+"/reevaluate", nil, stranger, requestcontext.RoleDonor)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *HandlerSuite) TestReEvaluateByReviewer() {
	campaignID := s.createCampaign()

	rec := s.do(http.MethodPost, "/campaigns/"+campaignID+"/reevaluate", nil, s.reviewerID, requestcontext.RoleReviewer)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerSuite) TestOverrideRequiresReviewer() {
	campaignID := s.createCampaign()
	body := map[string]string{"decision": "rejected", "note": "manual check failed"}

	rec := s.do(http.MethodPost, "/campaigns/"+campaignID+"/override", body, s.ownerID, requestcontext.RoleDonor)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *HandlerSuite) TestOverrideByReviewer() {
	campaignID := s.createCampaign()
	body := map[string]string{"decision": "rejected", "note": "manual check failed"}

	rec := s.do(http.MethodPost, "/campaigns/"+campaignID+"/override", body, s.reviewerID, requestcontext.RoleReviewer)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Status string `json:"status"`
	}
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal("rejected", resp.Status)
}

func (s *HandlerSuite) TestOverrideRejectsBadDecision() {
	campaignID := s.createCampaign()
	body := map[string]string{"decision": "escalated", "note": "x"}

	rec := s.do(http.MethodPost, "/campaigns/"+campaignID+"/override", body, s.reviewerID, requestcontext.RoleReviewer)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestHistoryVisibleToOwnerAndReviewer() {
	campaignID := s.createCampaign()

	for _, tc := range []struct {
		userID id.UserID
		role   string
	}{
		{s.ownerID, requestcontext.RoleDonor},
		{s.reviewerID, requestcontext.RoleReviewer},
	} {
		rec := s.do(http.MethodGet, "/campaigns/"+campaignID+"/moderation", nil, tc.userID, tc.role)
		s.Require().Equal(http.StatusOK, rec.Code)

		var resp struct {
			Records []struct {
				Origin string `json:"origin"`
			} `json:"records"`
		}
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
		s.Require().Len(resp.Records, 1)
		s.Equal("automated", resp.Records[0].Origin)
	}
}

func (s *HandlerSuite) TestHistoryHiddenFromStrangers() {
	campaignID := s.createCampaign()

	stranger := id.UserID(uuid.New())
	rec := s.do(http.MethodGet, "/campaigns/"+campaignID+"/moderation", nil, stranger, requestcontext.RoleDonor)
	s.Equal(http.StatusForbidden, rec.Code)
}
