package routers

import (
	"context"
	"intake-service/internal/app/config"
	"intake-service/internal/app/delivery/http/controllers"
	"intake-service/internal/app/delivery/http/middlewares"
	"intake-service/internal/app/models"
	"intake-service/internal/app/services/shared/jwtmanager"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/dto/responses"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockIntakeUsecase struct {
	mock.Mock
}

func (m *mockIntakeUsecase) Submit(ctx context.Context, request *requests.SubmitIntake) (*responses.IntakeResult, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.IntakeResult)
	return result, args.Error(1)
}

func (m *mockIntakeUsecase) CreateServiceRequest(ctx context.Context, accountID string, request *requests.CreateServiceRequest) (*responses.Submission, error) {
	args := m.Called(ctx, accountID, request)
	result, _ := args.Get(0).(*responses.Submission)
	return result, args.Error(1)
}

func newTestRouter(t *testing.T, intake *mockIntakeUsecase) (*chi.Mux, *jwtmanager.JWTManager) {
	logger := zap.NewNop()
	cfg := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:             "api",
			Version:                    "v1",
			FrontendDomain:             "http://localhost:3000",
			MaxRequests:                100,
			ActorRequestsPerSecond:     100,
			ActorRequestBurst:          100,
			RequestBodyLimitInMegabyte: 1,
		},
		JWT: config.AppJWT{Secret: "secret"},
	}
	manager, err := jwtmanager.NewJWTManager(cfg, logger)
	require.NoError(t, err)

	router := chi.NewRouter()
	SetupRoutes(router, cfg, middlewares.NewMiddlewares(logger, manager, cfg), &Controllers{
		Intake:     &controllers.IntakeController{Log: logger, IntakeUsecase: intake},
		Submission: &controllers.SubmissionController{Log: logger},
		Workflow:   &controllers.WorkflowController{Log: logger},
		Vitals:     &controllers.VitalsController{Log: logger},
	})
	return router, manager
}

func bearer(t *testing.T, manager *jwtmanager.JWTManager, actor models.Actor) string {
	created, err := manager.CreateToken(context.Background(), &jwtmanager.CreateTokenInput{Actor: actor})
	require.NoError(t, err)
	return constvars.AuthorizationBearerPrefix + created.Token
}

func TestSetupRoutes(t *testing.T) {
	t.Run("Intake Is Public", func(t *testing.T) {
		intake := new(mockIntakeUsecase)
		intake.On("Submit", mock.Anything, mock.MatchedBy(func(r *requests.SubmitIntake) bool {
			return r.Email == "pat@example.com"
		})).Return(&responses.IntakeResult{}, nil).Once()
		router, _ := newTestRouter(t, intake)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/intake", strings.NewReader(`{"name":"Pat","email":"pat@example.com","answers":[]}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(constvars.HeaderXRequestID))
		intake.AssertExpectations(t)
	})

	t.Run("Staff Routes Need A Token", func(t *testing.T) {
		router, _ := newTestRouter(t, new(mockIntakeUsecase))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/submissions/sub-1", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Nurse Cannot Approve", func(t *testing.T) {
		router, manager := newTestRouter(t, new(mockIntakeUsecase))
		nurse := models.Actor{ID: "nurse-1", Name: "Nurse Joy", Role: constvars.ActorRoleNurse}

		req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions/sub-1/approve", strings.NewReader(`{}`))
		req.Header.Set(constvars.HeaderAuthorization, bearer(t, manager, nurse))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Metrics Are Exposed", func(t *testing.T) {
		router, _ := newTestRouter(t, new(mockIntakeUsecase))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
