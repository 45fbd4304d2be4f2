package echoapi_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/codedaily/services/llm"
	"github.com/trezcool/codedaily/tests"
)

func Test_tutorApi_explain(t *testing.T) {
	db.Reset()

	student := testutil.CreateUser(t, usrRepo, "student@test.cd", "Student", "", "", true)
	token := getToken(t, student)

	tests := []struct {
		httpTest
		response *llm.MockResponse
		wantCall bool
		wantLog  bool
	}{
		{httpTest: httpTest{
			name: "Auth required", body: []byte(`{"content": "loops"}`),
			wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken),
		}},
		{httpTest: httpTest{
			name: "Content required", body: []byte(`{"content": "   "}`), token: token,
			wantCode: http.StatusBadRequest, wantData: marshallObj(t, httpErr{Error: "Content is required"}),
		}},
		{httpTest: httpTest{
			name: "Invalid difficulty", body: []byte(`{"content": "loops", "difficulty": "expert"}`), token: token,
			wantCode: http.StatusBadRequest, wantData: []byte(`{"difficulty": "must be one of beginner, intermediate or advanced"}`),
		}},
		{
			httpTest: httpTest{
				name: "Upstream failure", body: []byte(`{"content": "loops"}`), token: token,
				wantCode: http.StatusBadGateway, wantData: marshallObj(t, httpErr{Error: "explanation unavailable"}),
			},
			response: &llm.MockResponse{Err: errors.New("boom")},
			wantCall: true,
			wantLog:  true,
		},
		{
			httpTest: httpTest{
				name: "Success", body: []byte(`{"content": "loops", "difficulty": "Advanced"}`), token: token,
				wantCode: http.StatusOK, wantData: []byte(`{"explanation": "Loops repeat things."}`),
			},
			response: &llm.MockResponse{Content: "Loops repeat things."},
			wantCall: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := llmProvider.CallCount()
			logged := len(logs.errors)
			if tt.response != nil {
				llmProvider.AddResponse(*tt.response)
			}

			req, rec := newAuthRequest(http.MethodPost, "/v1/ai/explain", tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt.httpTest, rec)

			if !tt.wantCall {
				assert.Equal(t, calls, llmProvider.CallCount())
				return
			}
			require.Equal(t, calls+1, llmProvider.CallCount())
			if tt.wantLog {
				assert.Greater(t, len(logs.errors), logged)
			}
			if tt.wantCode == http.StatusOK {
				call, ok := llmProvider.LastCall()
				require.True(t, ok)
				assert.Contains(t, call.Messages[len(call.Messages)-1].Content,
					"Explain the following lesson content for a advanced level student in simple terms:\n\nloops")
			}
		})
	}
}
