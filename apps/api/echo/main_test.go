package echoapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/codedaily/apps/api/echo"
	"github.com/trezcool/codedaily/core"
	"github.com/trezcool/codedaily/core/course"
	"github.com/trezcool/codedaily/core/progress"
	"github.com/trezcool/codedaily/core/quiz"
	"github.com/trezcool/codedaily/core/tutor"
	"github.com/trezcool/codedaily/core/user"
	"github.com/trezcool/codedaily/services/llm"
	"github.com/trezcool/codedaily/storage/database/dummy"
	"github.com/trezcool/codedaily/tests"
)

var (
	conf         *core.Config
	db           *dummydb.DB
	app          *Server
	usrRepo      user.Repository
	courseRepo   course.Repository
	quizRepo     quiz.Repository
	progressRepo progress.Repository
	llmProvider  *llm.MockProvider
	logs         *logRecorder

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errNotFound     = httpErr{Error: "not found"}
	errForbidden    = httpErr{Error: "permission denied"}
)

type logRecorder struct {
	errors []string
}

func (l *logRecorder) Debug(string, ...interface{}) {}
func (l *logRecorder) Info(string, ...interface{})  {}
func (l *logRecorder) Warn(string, ...interface{})  {}
func (l *logRecorder) Error(msg string, _ ...interface{}) {
	l.errors = append(l.errors, msg)
}
func (l *logRecorder) Fatal(string, ...interface{}) {}

func TestMain(m *testing.M) {
	conf = &core.Config{
		AppName:   "CodeDaily",
		TestMode:  true,
		SecretKey: "test-secret",
		Server: core.ServerConfig{
			DisableReqLogs:            true,
			JWTExpirationDelta:        10 * time.Minute,
			JWTRefreshExpirationDelta: 4 * time.Hour,
			CacheMaxAge:               time.Hour,
		},
	}

	// set up DB & repos
	db = dummydb.Open()
	usrRepo = dummydb.NewUserRepository(db)
	courseRepo = dummydb.NewCourseRepository(db)
	quizRepo = dummydb.NewQuizRepository(db)
	progressRepo = dummydb.NewProgressRepository(db)

	// set up services
	logs = new(logRecorder)
	llmProvider = llm.NewMockProvider()
	validate, translator := testutil.NewValidator()
	courseSvc := course.NewService(courseRepo)

	// set up server
	app = NewServer(ServerDeps{
		Conf:        conf,
		Logger:      logs,
		Validate:    validate,
		Translator:  translator,
		UserSvc:     user.NewService(usrRepo),
		CourseSvc:   courseSvc,
		QuizSvc:     quiz.NewService(quizRepo, courseSvc),
		ProgressSvc: progress.NewService(progressRepo, courseSvc),
		TutorSvc:    tutor.NewService(llm.NewCompleter(llmProvider, conf.LLM), logs),
	})

	os.Exit(m.Run())
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	token, err := GenerateToken(conf, GetUserClaims(conf, usr))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func marshallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marshallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	assert.Equal(t, tt.wantCode, rec.Code, "code")
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runTests(t *testing.T, tests []httpTest) {
	for _, tt := range tests {
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestServer_home(t *testing.T) {
	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to CodeDaily API!", rec.Body.String())
}
