package controllers

import (
	"context"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/dto/responses"
	"intake-service/internal/pkg/exceptions"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockWorkflowUsecase struct {
	mock.Mock
}

func (m *mockWorkflowUsecase) Approve(ctx context.Context, submissionID string, request *requests.ApproveSubmission) (*responses.Submission, error) {
	args := m.Called(ctx, submissionID, request)
	response, _ := args.Get(0).(*responses.Submission)
	return response, args.Error(1)
}

func (m *mockWorkflowUsecase) Reject(ctx context.Context, submissionID string, request *requests.RejectSubmission) (*responses.Submission, error) {
	args := m.Called(ctx, submissionID, request)
	response, _ := args.Get(0).(*responses.Submission)
	return response, args.Error(1)
}

func (m *mockWorkflowUsecase) FinishTask(ctx context.Context, submissionID string, request *requests.FinishTask) (*responses.Submission, error) {
	args := m.Called(ctx, submissionID, request)
	response, _ := args.Get(0).(*responses.Submission)
	return response, args.Error(1)
}

func (m *mockWorkflowUsecase) SendMessage(ctx context.Context, submissionID string, request *requests.SendMessage) (*responses.ChatMessage, error) {
	args := m.Called(ctx, submissionID, request)
	response, _ := args.Get(0).(*responses.ChatMessage)
	return response, args.Error(1)
}

var doctor = models.Actor{ID: "doc-1", Name: "Dr. Grey", Role: constvars.ActorRoleDoctor}

// serve routes through chi so URL params resolve, with the context the
// middlewares would have set.
func serve(pattern, method, target, body string, handler http.HandlerFunc, actor *models.Actor) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Method(method, pattern, handler)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")
	if actor != nil {
		ctx = context.WithValue(ctx, constvars.CONTEXT_ACTOR_KEY, *actor)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWorkflowController(t *testing.T) {
	const approvePattern = "/submissions/{submission_id}/approve"

	t.Run("Approve Passes The Actor Through", func(t *testing.T) {
		usecase := new(mockWorkflowUsecase)
		ctrl := &WorkflowController{Log: zap.NewNop(), WorkflowUsecase: usecase}
		usecase.On("Approve", mock.Anything, "sub-1", mock.MatchedBy(func(r *requests.ApproveSubmission) bool {
			return r.Actor == doctor && r.FollowUp != nil && *r.FollowUp == "2 weeks"
		})).Return(&responses.Submission{ID: "sub-1", Status: "reviewed"}, nil).Once()

		rec := serve(approvePattern, http.MethodPost, "/submissions/sub-1/approve", `{"follow_up":"2 weeks"}`, ctrl.Approve, &doctor)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "reviewed", body["data"].(map[string]interface{})["status"])
		usecase.AssertExpectations(t)
	})

	t.Run("Bad Schedule Label Is Rejected Before The Usecase", func(t *testing.T) {
		usecase := new(mockWorkflowUsecase)
		ctrl := &WorkflowController{Log: zap.NewNop(), WorkflowUsecase: usecase}

		rec := serve(approvePattern, http.MethodPost, "/submissions/sub-1/approve", `{"follow_up":"someday"}`, ctrl.Approve, &doctor)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		usecase.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		ctrl := &WorkflowController{Log: zap.NewNop(), WorkflowUsecase: new(mockWorkflowUsecase)}

		rec := serve(approvePattern, http.MethodPost, "/submissions/sub-1/approve", `{`, ctrl.Approve, &doctor)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Missing Actor", func(t *testing.T) {
		ctrl := &WorkflowController{Log: zap.NewNop(), WorkflowUsecase: new(mockWorkflowUsecase)}

		rec := serve(approvePattern, http.MethodPost, "/submissions/sub-1/approve", `{}`, ctrl.Approve, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Illegal Transition Maps To Conflict", func(t *testing.T) {
		usecase := new(mockWorkflowUsecase)
		ctrl := &WorkflowController{Log: zap.NewNop(), WorkflowUsecase: usecase}
		usecase.On("Approve", mock.Anything, "sub-1", mock.Anything).
			Return(nil, exceptions.ErrIllegalTransition("approve", "archived")).Once()

		rec := serve(approvePattern, http.MethodPost, "/submissions/sub-1/approve", `{}`, ctrl.Approve, &doctor)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, string(exceptions.KindIllegalTransition), decodeBody(t, rec)["kind"])
	})

	t.Run("Reject Accepts An Empty Body", func(t *testing.T) {
		usecase := new(mockWorkflowUsecase)
		ctrl := &WorkflowController{Log: zap.NewNop(), WorkflowUsecase: usecase}
		usecase.On("Reject", mock.Anything, "sub-1", &requests.RejectSubmission{Actor: doctor}).
			Return(&responses.Submission{ID: "sub-1", Status: "archived"}, nil).Once()

		rec := serve("/submissions/{submission_id}/reject", http.MethodPost, "/submissions/sub-1/reject", "", ctrl.Reject, &doctor)

		assert.Equal(t, http.StatusOK, rec.Code)
		usecase.AssertExpectations(t)
	})

	t.Run("Send Message Requires Text", func(t *testing.T) {
		ctrl := &WorkflowController{Log: zap.NewNop(), WorkflowUsecase: new(mockWorkflowUsecase)}

		rec := serve("/submissions/{submission_id}/messages", http.MethodPost, "/submissions/sub-1/messages", `{"text":""}`, ctrl.SendMessage, &doctor)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
