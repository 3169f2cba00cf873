package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respond(err error) (*httptest.ResponseRecorder, HTTPError) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Respond(c, err)

	var body HTTPError
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestRespondMapsKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{Validation("bad", "bad input"), http.StatusBadRequest},
		{NotFoundErr("missing", "gone"), http.StatusNotFound},
		{Conflict("dup", "taken"), http.StatusConflict},
		{Protected("in_use", "referenced"), http.StatusConflict},
		{Forbidden("nope", "not yours"), http.StatusForbidden},
		{UnauthorizedErr("who", "login"), http.StatusUnauthorized},
	}

	for _, tc := range cases {
		w, body := respond(tc.err)
		if w.Code != tc.status {
			t.Errorf("%v: status = %d, want %d", tc.err, w.Code, tc.status)
		}
		var be BusinessError
		errors.As(tc.err, &be)
		if body.Code != be.Code || body.Message != be.Message {
			t.Errorf("%v: body = %+v", tc.err, body)
		}
	}
}

func TestRespondWrappedAndUnknown(t *testing.T) {
	w, body := respond(fmt.Errorf("update: %w", Conflict("dup", "taken")))
	if w.Code != http.StatusConflict || body.Code != "dup" {
		t.Fatalf("wrapped error: %d %+v", w.Code, body)
	}

	w, body = respond(errors.New("connection reset"))
	if w.Code != http.StatusInternalServerError || body.Code != "internal_error" {
		t.Fatalf("unknown error: %d %+v", w.Code, body)
	}
	if strings.Contains(w.Body.String(), "connection reset") {
		t.Fatal("internal details leaked")
	}

	_, body = respond(ErrBusiness("only_code"))
	if body.Message != "only_code" {
		t.Fatalf("message fallback = %q", body.Message)
	}
}

func TestIsBusinessAndIsKind(t *testing.T) {
	err := fmt.Errorf("wrap: %w", Protected("in_use", ""))
	if !IsBusiness(err, "in_use") || IsBusiness(err, "other") {
		t.Fatal("IsBusiness must unwrap and compare codes")
	}
	if !IsKind(err, KindProtected) || IsKind(err, KindConflict) {
		t.Fatal("IsKind must compare kinds")
	}
	if IsBusiness(errors.New("x"), "x") {
		t.Fatal("plain errors are not business errors")
	}
}

type sample struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Age   int    `json:"age" binding:"min=18"`
}

func TestSanitizeBindingError(t *testing.T) {
	UseJSONFieldNames()

	err := binding.Validator.ValidateStruct(&sample{Email: "nope", Age: 3})
	msg := SanitizeBindingError(err)

	for _, want := range []string{"name is required", "email must be a valid email address", "age must be at least 18"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q misses %q", msg, want)
		}
	}
	if strings.Contains(msg, "sample") {
		t.Fatalf("struct name leaked: %q", msg)
	}

	if SanitizeBindingError(errors.New("EOF")) != "Invalid request body" {
		t.Fatal("non-validation errors get a generic message")
	}
}
