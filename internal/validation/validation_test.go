package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parishkit/parishkit/internal/errs"
)

type signupPayload struct {
	Name  string `json:"name" validate:"required,min=2"`
	Email string `json:"email" validate:"required,email"`
	Kind  string `json:"kind" validate:"omitempty,oneof=tithe offering"`
}

func (p *signupPayload) Validate() error {
	return Validator.Struct(p)
}

func bind(t *testing.T, body string, payload Validatable) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	return BindAndValidate(c, payload)
}

func TestBindAndValidateAcceptsValidPayload(t *testing.T) {
	var p signupPayload
	err := bind(t, `{"name":"Ana","email":"ana@example.org"}`, &p)

	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, "ana@example.org", p.Email)
}

func TestBindAndValidateReportsFieldErrors(t *testing.T) {
	var p signupPayload
	err := bind(t, `{"name":"A","email":"nope","kind":"loan"}`, &p)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 3)

	byField := map[string]string{}
	for _, fe := range httpErr.Errors {
		byField[fe.Field] = fe.Error
	}
	assert.Equal(t, "must be at least 2 characters", byField["name"])
	assert.Equal(t, "must be a valid email address", byField["email"])
	assert.Equal(t, "must be one of: tithe offering", byField["kind"])
}

func TestBindAndValidateReportsMissingFields(t *testing.T) {
	var p signupPayload
	err := bind(t, `{}`, &p)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 2)
	assert.Equal(t, "name", httpErr.Errors[0].Field)
	assert.Equal(t, "is required", httpErr.Errors[0].Error)
}

func TestBindAndValidateRejectsMalformedJSON(t *testing.T) {
	var p signupPayload
	err := bind(t, `{"name":`, &p)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestExtractValidationErrorCustomErrors(t *testing.T) {
	custom := CustomValidationErrors{
		{Field: "publishAt", Message: "must be before expiresAt"},
	}

	msg, fieldErrors := extractValidationError(custom)

	assert.Equal(t, "Validation failed", msg)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "publishAt", fieldErrors[0].Field)
	assert.Equal(t, "must be before expiresAt", fieldErrors[0].Error)
}
