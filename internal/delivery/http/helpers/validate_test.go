package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (c *contactRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if !strings.Contains(c.Email, "@") {
		errs = append(errs, "email is invalid")
	}
	return errs
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantFields []string
		wantPrefix string
	}{
		{name: "empty body", body: "", wantFields: []string{"request body is required"}},
		{name: "malformed", body: `{"name": }`, wantPrefix: "malformed JSON at offset"},
		{name: "truncated", body: `{"name": "a"`, wantFields: []string{"request body is truncated"}},
		{name: "wrong type", body: `{"name": 5}`, wantFields: []string{"name must be a string, got number"}},
		{name: "not an object", body: `[1]`, wantFields: []string{"request body must be a JSON object, got array"}},
		{name: "unknown field", body: `{"name": "a", "nickname": "b"}`, wantFields: []string{`unknown field "nickname" is not allowed`}},
		{name: "trailing object", body: `{"name": "a", "email": "a@b.c"} {}`, wantFields: []string{"request body must hold a single JSON object"}},
		{name: "every failing field", body: `{"email": "nope"}`, wantFields: []string{"name is required", "email is invalid"}},
		{name: "too large", body: `{"name": "` + strings.Repeat("a", maxBodyBytes) + `"}`, wantPrefix: "request body exceeds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dest contactRequest

			require.False(t, DecodeAndValidate(rr, req, &dest))
			require.Equal(t, http.StatusBadRequest, rr.Code)

			var body ErrorBody
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, ErrNameValidation, body.Name)
			assert.Equal(t, http.StatusBadRequest, body.Code)
			if tt.wantPrefix != "" {
				require.Len(t, body.Fields, 1)
				assert.True(t, strings.HasPrefix(body.Fields[0], tt.wantPrefix), body.Fields[0])
				return
			}
			assert.Equal(t, tt.wantFields, body.Fields)
			assert.Equal(t, strings.Join(tt.wantFields, "; "), body.Message)
		})
	}
}

func TestDecodeAndValidate_Valid(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": "Ada", "email": "ada@example.com"}`))
	var dest contactRequest

	require.True(t, DecodeAndValidate(rr, req, &dest))
	assert.Equal(t, contactRequest{Name: "Ada", Email: "ada@example.com"}, dest)
	assert.Zero(t, rr.Body.Len())
}

func TestWriteJSONError_OmitsFields(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSONError(rr, http.StatusNotFound, ErrNameResourceNotExists, "gone")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotContains(t, rr.Body.String(), `"fields"`)
}
