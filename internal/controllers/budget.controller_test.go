package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"caloria/internal/mocks"
	"caloria/internal/models"
	"caloria/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func addAuthMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func validProfileBody() map[string]interface{} {
	return map[string]interface{}{
		"sex":            "female",
		"weight_lbs":     165,
		"height_inches":  66,
		"birth_date":     "1990-04-12",
		"activity_level": 2,
		"goal":           "maintain",
	}
}

func TestEstimateBaseline(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "successful estimate",
			requestBody:    validProfileBody(),
			expectedStatus: http.StatusOK,
			expectedMsg:    "Estimate computed successfully",
		},
		{
			name: "missing weight",
			requestBody: map[string]interface{}{
				"sex":            "female",
				"height_inches":  66,
				"birth_date":     "1990-04-12",
				"activity_level": 2,
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
		{
			name: "malformed birth date",
			requestBody: func() map[string]interface{} {
				b := validProfileBody()
				b["birth_date"] = "12/04/1990"
				return b
			}(),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid birth date",
		},
		{
			name: "invalid activity level",
			requestBody: func() map[string]interface{} {
				b := validProfileBody()
				b["activity_level"] = 9
				return b
			}(),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Failed to compute estimate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := NewBudgetController(new(mocks.MockMetabolicProfileRepository), services.NewBudgetSynthesizer(0))
			router := setupTestRouter()
			router.POST("/budget/estimate", controller.EstimateBaseline)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/budget/estimate", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedMsg, response["message"])
		})
	}
}

func TestSynthesizeBudget(t *testing.T) {
	measured := 2100.0

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "formula-only synthesis",
			requestBody: map[string]interface{}{
				"profile": validProfileBody(),
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Budget synthesized successfully",
		},
		{
			name: "measured average blends in",
			requestBody: map[string]interface{}{
				"profile":          validProfileBody(),
				"measured_average": measured,
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Budget synthesized successfully",
		},
		{
			name: "aggressive goal trips the safety floor",
			requestBody: map[string]interface{}{
				"profile": func() map[string]interface{} {
					b := validProfileBody()
					b["goal"] = "lose"
					b["weight_lbs"] = 130
					b["target_weight_lbs"] = 70
					b["activity_level"] = 1
					return b
				}(),
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "Failed to synthesize budget",
		},
		{
			name:           "missing profile",
			requestBody:    map[string]interface{}{},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := NewBudgetController(new(mocks.MockMetabolicProfileRepository), services.NewBudgetSynthesizer(0))
			router := setupTestRouter()
			router.POST("/budget/synthesize", controller.SynthesizeBudget)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/budget/synthesize", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedMsg, response["message"])
		})
	}
}

func TestSaveProfile(t *testing.T) {
	tests := []struct {
		name           string
		userID         uint
		requestBody    map[string]interface{}
		setupMock      func(*mocks.MockMetabolicProfileRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:        "successful save",
			userID:      1,
			requestBody: validProfileBody(),
			setupMock: func(m *mocks.MockMetabolicProfileRepository) {
				m.On("Upsert", mock.AnythingOfType("*models.MetabolicProfile")).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Profile saved successfully",
		},
		{
			name:   "negative weight rejected",
			userID: 1,
			requestBody: func() map[string]interface{} {
				b := validProfileBody()
				b["weight_lbs"] = -10
				return b
			}(),
			setupMock:      func(m *mocks.MockMetabolicProfileRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid physical measurements",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockMetabolicProfileRepository)
			tt.setupMock(mockRepo)
			controller := NewBudgetController(mockRepo, services.NewBudgetSynthesizer(0))
			router := setupTestRouter()
			router.PUT("/budget/profile", addAuthMiddleware(tt.userID), controller.SaveProfile)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPut, "/budget/profile", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedMsg, response["message"])
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGetProfile(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockRepo := new(mocks.MockMetabolicProfileRepository)
		mockRepo.On("FindByUserID", uint(1)).Return(&models.MetabolicProfile{UserID: 1, WeightLbs: 165}, nil)
		controller := NewBudgetController(mockRepo, services.NewBudgetSynthesizer(0))
		router := setupTestRouter()
		router.GET("/budget/profile", addAuthMiddleware(1), controller.GetProfile)

		req := httptest.NewRequest(http.MethodGet, "/budget/profile", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		controller := NewBudgetController(new(mocks.MockMetabolicProfileRepository), services.NewBudgetSynthesizer(0))
		router := setupTestRouter()
		router.GET("/budget/profile", controller.GetProfile)

		req := httptest.NewRequest(http.MethodGet, "/budget/profile", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
