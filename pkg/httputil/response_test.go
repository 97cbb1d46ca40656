package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-admin/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/appointments", nil)

	RespondWithError(c, err)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRespondWithErrorConflict(t *testing.T) {
	id := uuid.New()
	w, body := respond(t, errors.NewConflict("Doctor is already booked at this time", id))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "Doctor is already booked at this time", body.Message)
	require.NotNil(t, body.ConflictID)
	assert.Equal(t, id, *body.ConflictID)
}

func TestRespondWithErrorHidesStorageDetails(t *testing.T) {
	w, body := respond(t, errors.NewStorage(fmt.Errorf("dial tcp 10.0.0.1:5432: connection refused")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Server Error", body.Message)
	assert.Nil(t, body.ConflictID)
}

func TestRespondWithErrorNotFound(t *testing.T) {
	w, body := respond(t, errors.NewNotFound("Appointment", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Appointment not found", body.Message)
}
