package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/qboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	Setup()
}

func bindBody(t *testing.T, body string) (model.SaveQuestionsRequest, map[string]string) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/questions", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req model.SaveQuestionsRequest
	fields := Bind(c, &req)
	return req, fields
}

func TestBind_AcceptsArrays(t *testing.T) {
	req, fields := bindBody(t, `{"questions":["A","B"],"revealed":[false,true]}`)
	require.Nil(t, fields)
	assert.Equal(t, []string{"A", "B"}, req.Questions)
	assert.Equal(t, []bool{false, true}, req.Revealed)
}

func TestBind_AcceptsEmptyArrays(t *testing.T) {
	req, fields := bindBody(t, `{"questions":[],"revealed":[]}`)
	require.Nil(t, fields)
	assert.Empty(t, req.Questions)
}

func TestBind_RejectsNonArrays(t *testing.T) {
	substitutes := []string{`"not-an-array"`, `42`, `{"a":1}`, `null`, `true`}
	for _, sub := range substitutes {
		t.Run("questions="+sub, func(t *testing.T) {
			_, fields := bindBody(t, `{"questions":`+sub+`,"revealed":[]}`)
			assert.NotNil(t, fields)
		})
		t.Run("revealed="+sub, func(t *testing.T) {
			_, fields := bindBody(t, `{"questions":["A"],"revealed":`+sub+`}`)
			assert.NotNil(t, fields)
		})
	}
}

func TestBind_RejectsMissingFields(t *testing.T) {
	_, fields := bindBody(t, `{"questions":["A"]}`)
	require.NotNil(t, fields)
	assert.Contains(t, fields, "revealed")

	_, fields = bindBody(t, `{}`)
	assert.NotNil(t, fields)
}

func TestBind_RejectsMismatchedLengths(t *testing.T) {
	_, fields := bindBody(t, `{"questions":["A","B"],"revealed":[false]}`)
	require.NotNil(t, fields)
	assert.Contains(t, fields, "revealed")
}
