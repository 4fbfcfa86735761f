package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tablebook/internal/errors"
	"tablebook/internal/model"
	"tablebook/internal/service"
)

// MockReservationService is a mock implementation of ReservationService.
type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) Create(ctx context.Context, input service.CreateReservationInput) (*model.Reservation, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *MockReservationService) List(ctx context.Context, input service.ListReservationsInput) ([]model.Reservation, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reservation), args.Error(1)
}

func (m *MockReservationService) Get(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *MockReservationService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReservationStatus) (*model.Reservation, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *MockReservationService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type validatorWrapper struct {
	validator *validator.Validate
}

func (v *validatorWrapper) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = &validatorWrapper{validator: validator.New()}

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func assertHTTPError(t *testing.T, err error, code int, message string) {
	t.Helper()
	var httpErr *echo.HTTPError
	assert.ErrorAs(t, err, &httpErr)
	assert.Equal(t, code, httpErr.Code)
	resp, ok := httpErr.Message.(errors.ErrorResponse)
	assert.True(t, ok)
	assert.False(t, resp.Success)
	assert.Equal(t, message, resp.Message)
}

func TestReservationHandler_CreateReservation(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		mockSvc := new(MockReservationService)
		date := time.Date(2030, 5, 20, 0, 0, 0, 0, time.UTC)
		mockSvc.On("Create", mock.Anything, mock.AnythingOfType("service.CreateReservationInput")).
			Return(&model.Reservation{
				ID:              uuid.New(),
				FirstName:       "Ana",
				LastName:        "Lee",
				Email:           "ana@test.com",
				PartySize:       4,
				Occasion:        model.OccasionBirthday,
				ReservationDate: date,
				ReservationTime: "19:00",
				Status:          model.ReservationStatusPending,
			}, nil)

		h := NewReservationHandler(mockSvc)
		c, rec := newTestContext(t, http.MethodPost, "/api/reservations",
			`{"first_name":"Ana","last_name":"Lee","email":"ANA@Test.com","party_size":4,"occasion":"birthday","reservation_date":"2030-05-20","reservation_time":"19:00","phone":"+1 (555) 123-4567"}`)

		assert.NoError(t, h.CreateReservation(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp CreateReservationResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Reservation created successfully!", resp.Message)
		assert.Equal(t, "Ana Lee", resp.Reservation.Name)
		assert.Equal(t, "ana@test.com", resp.Reservation.Email)
		assert.Equal(t, 4, resp.Reservation.PartySize)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing required fields rejected at the edge", func(t *testing.T) {
		mockSvc := new(MockReservationService)

		h := NewReservationHandler(mockSvc)
		c, _ := newTestContext(t, http.MethodPost, "/api/reservations",
			`{"first_name":"Ana"}`)

		err := h.CreateReservation(c)
		assertHTTPError(t, err, http.StatusBadRequest, "All required fields must be filled")
		mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("validation error from service", func(t *testing.T) {
		mockSvc := new(MockReservationService)
		mockSvc.On("Create", mock.Anything, mock.Anything).
			Return(nil, errors.NewValidationError("Please provide a valid email address"))

		h := NewReservationHandler(mockSvc)
		c, _ := newTestContext(t, http.MethodPost, "/api/reservations",
			`{"first_name":"Ana","last_name":"Lee","email":"not-an-email","party_size":4,"occasion":"birthday","reservation_date":"2030-05-20","reservation_time":"19:00","phone":"+1 (555) 123-4567"}`)

		err := h.CreateReservation(c)
		assertHTTPError(t, err, http.StatusBadRequest, "Please provide a valid email address")
	})

	t.Run("duplicate booking", func(t *testing.T) {
		mockSvc := new(MockReservationService)
		mockSvc.On("Create", mock.Anything, mock.Anything).
			Return(nil, errors.ErrDuplicateReservation)

		h := NewReservationHandler(mockSvc)
		c, _ := newTestContext(t, http.MethodPost, "/api/reservations",
			`{"first_name":"Ana","last_name":"Lee","email":"ana@test.com","party_size":4,"occasion":"birthday","reservation_date":"2030-05-20","reservation_time":"19:00","phone":"+1 (555) 123-4567"}`)

		err := h.CreateReservation(c)
		assertHTTPError(t, err, http.StatusBadRequest,
			"A reservation already exists for this email at the same date and time")
	})
}

func TestReservationHandler_GetReservation(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockSvc := new(MockReservationService)
		id := uuid.New()
		mockSvc.On("Get", mock.Anything, id).
			Return(&model.Reservation{ID: id, Email: "ana@test.com"}, nil)

		h := NewReservationHandler(mockSvc)
		c, rec := newTestContext(t, http.MethodGet, "/api/reservations/"+id.String(), "")
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		assert.NoError(t, h.GetReservation(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp ReservationResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "ana@test.com", resp.Reservation.Email)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockSvc := new(MockReservationService)
		id := uuid.New()
		mockSvc.On("Get", mock.Anything, id).Return(nil, errors.ErrReservationNotFound)

		h := NewReservationHandler(mockSvc)
		c, _ := newTestContext(t, http.MethodGet, "/api/reservations/"+id.String(), "")
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		assertHTTPError(t, h.GetReservation(c), http.StatusNotFound, "Reservation not found")
	})

	t.Run("malformed id", func(t *testing.T) {
		mockSvc := new(MockReservationService)

		h := NewReservationHandler(mockSvc)
		c, _ := newTestContext(t, http.MethodGet, "/api/reservations/nope", "")
		c.SetParamNames("id")
		c.SetParamValues("nope")

		assertHTTPError(t, h.GetReservation(c), http.StatusNotFound, "Reservation not found")
		mockSvc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestReservationHandler_ListReservations(t *testing.T) {
	mockSvc := new(MockReservationService)
	mockSvc.On("List", mock.Anything, service.ListReservationsInput{Status: "pending", Date: "2030-05-20"}).
		Return([]model.Reservation{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	h := NewReservationHandler(mockSvc)
	c, rec := newTestContext(t, http.MethodGet, "/api/reservations?status=pending&date=2030-05-20", "")

	assert.NoError(t, h.ListReservations(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ListReservationsResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Reservations, 2)
	mockSvc.AssertExpectations(t)
}

func TestReservationHandler_UpdateReservationStatus(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		mockSvc := new(MockReservationService)
		id := uuid.New()
		mockSvc.On("UpdateStatus", mock.Anything, id, model.ReservationStatusConfirmed).
			Return(&model.Reservation{ID: id, Status: model.ReservationStatusConfirmed}, nil)

		h := NewReservationHandler(mockSvc)
		c, rec := newTestContext(t, http.MethodPatch, "/api/reservations/"+id.String()+"/status",
			`{"status":"confirmed"}`)
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		assert.NoError(t, h.UpdateReservationStatus(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp ReservationResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Reservation status updated successfully", resp.Message)
		assert.Equal(t, model.ReservationStatusConfirmed, resp.Reservation.Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		mockSvc := new(MockReservationService)
		id := uuid.New()
		mockSvc.On("UpdateStatus", mock.Anything, id, model.ReservationStatus("archived")).
			Return(nil, errors.NewValidationError("Invalid status"))

		h := NewReservationHandler(mockSvc)
		c, _ := newTestContext(t, http.MethodPatch, "/api/reservations/"+id.String()+"/status",
			`{"status":"archived"}`)
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		assertHTTPError(t, h.UpdateReservationStatus(c), http.StatusBadRequest, "Invalid status")
	})
}

func TestReservationHandler_DeleteReservation(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		mockSvc := new(MockReservationService)
		id := uuid.New()
		mockSvc.On("Delete", mock.Anything, id).Return(nil)

		h := NewReservationHandler(mockSvc)
		c, rec := newTestContext(t, http.MethodDelete, "/api/reservations/"+id.String(), "")
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		assert.NoError(t, h.DeleteReservation(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp MessageResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Reservation deleted successfully", resp.Message)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockSvc := new(MockReservationService)
		id := uuid.New()
		mockSvc.On("Delete", mock.Anything, id).Return(errors.ErrReservationNotFound)

		h := NewReservationHandler(mockSvc)
		c, _ := newTestContext(t, http.MethodDelete, "/api/reservations/"+id.String(), "")
		c.SetParamNames("id")
		c.SetParamValues(id.String())

		assertHTTPError(t, h.DeleteReservation(c), http.StatusNotFound, "Reservation not found")
	})
}
