package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"caloria/internal/mocks"
	"caloria/internal/models"
	"caloria/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// fakeBudgetCache is an in-memory BudgetCache for controller tests.
type fakeBudgetCache struct {
	entries      map[string]*models.AdjustedBudget
	invalidated  []string
	storeCalls   int
	getCallCount int
}

func newFakeBudgetCache() *fakeBudgetCache {
	return &fakeBudgetCache{entries: make(map[string]*models.AdjustedBudget)}
}

func (f *fakeBudgetCache) StoreAdjustedBudget(userID uint, budget *models.AdjustedBudget, _ time.Duration) error {
	f.storeCalls++
	f.entries[budget.Date] = budget
	return nil
}

func (f *fakeBudgetCache) GetAdjustedBudget(userID uint, date string) (*models.AdjustedBudget, bool, error) {
	f.getCallCount++
	budget, ok := f.entries[date]
	return budget, ok, nil
}

func (f *fakeBudgetCache) InvalidateAdjustedBudget(userID uint, date string) error {
	f.invalidated = append(f.invalidated, date)
	delete(f.entries, date)
	return nil
}

func reservationTestDistributor() (*services.OverageDistributor, *mocks.MockWeeklyPeriodRepository, *mocks.MockDailyObservationRepository, *mocks.MockReservationRepository) {
	periodRepo := new(mocks.MockWeeklyPeriodRepository)
	obsRepo := new(mocks.MockDailyObservationRepository)
	resRepo := new(mocks.MockReservationRepository)
	return services.NewOverageDistributor(periodRepo, obsRepo, resRepo, 0), periodRepo, obsRepo, resRepo
}

func TestReserve(t *testing.T) {
	futureDate := time.Now().UTC().AddDate(0, 0, 3).Format("2006-01-02")

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMock      func(*mocks.MockReservationRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "successful reservation",
			requestBody: map[string]interface{}{
				"date":             futureDate,
				"planned_calories": 2500,
				"note":             "birthday dinner",
			},
			setupMock: func(m *mocks.MockReservationRepository) {
				m.On("Upsert", mock.AnythingOfType("*models.Reservation")).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Reservation saved successfully",
		},
		{
			name: "past date rejected",
			requestBody: map[string]interface{}{
				"date":             "2020-01-01",
				"planned_calories": 2500,
			},
			setupMock:      func(m *mocks.MockReservationRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Failed to save reservation",
		},
		{
			name: "malformed date",
			requestBody: map[string]interface{}{
				"date":             "01/07/2023",
				"planned_calories": 2500,
			},
			setupMock:      func(m *mocks.MockReservationRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid date",
		},
		{
			name: "missing planned calories",
			requestBody: map[string]interface{}{
				"date": futureDate,
			},
			setupMock:      func(m *mocks.MockReservationRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			distributor, _, _, resRepo := reservationTestDistributor()
			tt.setupMock(resRepo)
			controller := NewReservationController(distributor, newFakeBudgetCache())
			router := setupTestRouter()
			router.POST("/reservation", addAuthMiddleware(1), controller.Reserve)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/reservation", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedMsg, response["message"])
			resRepo.AssertExpectations(t)
		})
	}
}

func TestGetAdjustedBudget(t *testing.T) {
	start := time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC)
	period := &models.WeeklyPeriod{
		ID:          3,
		UserID:      1,
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 6),
		DailyBudget: 2000,
		Status:      models.PeriodStatusActive,
	}

	t.Run("computes and caches on miss", func(t *testing.T) {
		distributor, periodRepo, obsRepo, resRepo := reservationTestDistributor()
		periodRepo.On("FindActiveByUserID", uint(1)).Return(period, nil)
		obsRepo.On("FindByUserIDAndDateRange", uint(1), period.StartDate, period.EndDate).
			Return([]models.DailyObservation{}, nil)
		resRepo.On("FindByUserIDAndDateRange", uint(1), period.StartDate, period.EndDate).
			Return([]models.Reservation{}, nil)

		cache := newFakeBudgetCache()
		controller := NewReservationController(distributor, cache)
		router := setupTestRouter()
		router.GET("/budget/adjusted/:date", addAuthMiddleware(1), controller.GetAdjustedBudget)

		req := httptest.NewRequest(http.MethodGet, "/budget/adjusted/2023-06-07", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, cache.storeCalls)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		assert.Equal(t, float64(2000), data["adjusted_budget"])
	})

	t.Run("serves from cache without touching the repositories", func(t *testing.T) {
		distributor, periodRepo, _, _ := reservationTestDistributor()
		cache := newFakeBudgetCache()
		cache.entries["2023-06-07"] = &models.AdjustedBudget{
			Date: "2023-06-07", BaseBudget: 2000, AdjustedBudget: 1940, Adjustment: -60,
		}

		controller := NewReservationController(distributor, cache)
		router := setupTestRouter()
		router.GET("/budget/adjusted/:date", addAuthMiddleware(1), controller.GetAdjustedBudget)

		req := httptest.NewRequest(http.MethodGet, "/budget/adjusted/2023-06-07", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		periodRepo.AssertNotCalled(t, "FindActiveByUserID", mock.Anything)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		assert.Equal(t, float64(1940), data["adjusted_budget"])
	})

	t.Run("date outside the active period is not found", func(t *testing.T) {
		distributor, periodRepo, _, _ := reservationTestDistributor()
		periodRepo.On("FindActiveByUserID", uint(1)).Return(period, nil)

		controller := NewReservationController(distributor, newFakeBudgetCache())
		router := setupTestRouter()
		router.GET("/budget/adjusted/:date", addAuthMiddleware(1), controller.GetAdjustedBudget)

		req := httptest.NewRequest(http.MethodGet, "/budget/adjusted/2023-07-01", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteReservation(t *testing.T) {
	t.Run("successful delete invalidates the cache", func(t *testing.T) {
		distributor, _, _, resRepo := reservationTestDistributor()
		resRepo.On("DeleteByUserIDAndDate", uint(1), time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC)).Return(nil)

		cache := newFakeBudgetCache()
		controller := NewReservationController(distributor, cache)
		router := setupTestRouter()
		router.DELETE("/reservation/:date", addAuthMiddleware(1), controller.DeleteReservation)

		req := httptest.NewRequest(http.MethodDelete, "/reservation/2023-06-10", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, cache.invalidated, "2023-06-10")
		resRepo.AssertExpectations(t)
	})

	t.Run("malformed date", func(t *testing.T) {
		distributor, _, _, _ := reservationTestDistributor()
		controller := NewReservationController(distributor, newFakeBudgetCache())
		router := setupTestRouter()
		router.DELETE("/reservation/:date", addAuthMiddleware(1), controller.DeleteReservation)

		req := httptest.NewRequest(http.MethodDelete, "/reservation/not-a-date", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
