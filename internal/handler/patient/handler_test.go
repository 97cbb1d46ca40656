package patient

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository/mocks"
	patientsvc "github.com/jwalitptl/hospital-admin/internal/service/patient"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/httputil"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.RegisterGin()
}

func setup() (*gin.Engine, *mocks.PatientRepository) {
	repo := &mocks.PatientRepository{}
	r := gin.New()
	forbid := func(c *gin.Context) {
		httputil.RespondWithError(c, apperrors.Forbidden("Admin access required"))
	}
	NewHandler(patientsvc.NewService(repo)).RegisterRoutes(r.Group("/api"), forbid)
	return r, repo
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestStaffCanRegisterPatient(t *testing.T) {
	r, repo := setup()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Patient) bool {
		return p.Name == "Jane Doe" && p.Age == 0 && p.Gender == model.GenderFemale
	})).Return(nil)

	w := do(r, http.MethodPost, "/api/patients", `{"name":"Jane Doe","age":0,"gender":"Female","contact":"555-0101"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	repo.AssertExpectations(t)
}

func TestCreatePatientRequiresAge(t *testing.T) {
	r, repo := setup()
	w := do(r, http.MethodPost, "/api/patients", `{"name":"Jane Doe","gender":"Female","contact":"555-0101"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "age is required")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeletePatientAdminOnly(t *testing.T) {
	r, repo := setup()
	w := do(r, http.MethodDelete, "/api/patients/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestGetPatientMissing(t *testing.T) {
	r, repo := setup()
	id := uuid.New()
	repo.On("Get", mock.Anything, id).Return(nil, apperrors.NewNotFound("Patient", nil))

	w := do(r, http.MethodGet, "/api/patients/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Patient not found")
}
