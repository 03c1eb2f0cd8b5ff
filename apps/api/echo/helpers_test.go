package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpeck07/StudentoS/core"
	"github.com/rpeck07/StudentoS/core/assignment"
	"github.com/rpeck07/StudentoS/core/engine"
	"github.com/rpeck07/StudentoS/core/user"
	logsvc "github.com/rpeck07/StudentoS/services/logger"
	"github.com/rpeck07/StudentoS/storage/filestore"
	"github.com/rpeck07/StudentoS/testutil"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testApp struct {
	server  *Server
	usrRepo user.Repository
	asgRepo assignment.Repository
	usrSvc  *user.Service
}

func testConfig() *core.Config {
	return &core.Config{
		AppName:   "StudentOS",
		Env:       "TEST",
		TestMode:  true,
		SecretKey: "test-secret",
		Server: core.ServerConfig{
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 24 * time.Hour,
			CORSOrigins:               []string{"*"},
			DisableReqLogs:            true,
		},
		Engine: core.EngineConfig{
			CurrentGrade:    85,
			StressWindow:    engine.DefaultStressWindow,
			WorkloadWindow:  engine.DefaultHoursWindow,
			ProjectionDays:  engine.DefaultProjectionDays,
			BlocksPerHour:   engine.DefaultBlocksPerHour,
			CrunchThreshold: engine.DefaultCrunchThreshold,
			CurveMaxDelay:   engine.DefaultCurveMaxDelay,
		},
	}
}

func setup(t *testing.T) *testApp {
	conf := testConfig()

	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	usrRepo := filestore.NewUserRepository(store)
	asgRepo := filestore.NewAssignmentRepository(store)

	validate, translator := testutil.NewValidator()
	usrSvc := user.NewService(usrRepo, validate)
	server := NewServer(ServerDeps{
		Conf:          conf,
		Logger:        testLogger(),
		UserSvc:       usrSvc,
		AssignmentSvc: assignment.NewService(asgRepo, validate),
		Validate:      validate,
		Translator:    translator,
	})
	t.Cleanup(func() { _ = server.Shutdown(context.Background()) })

	return &testApp{server: server, usrRepo: usrRepo, asgRepo: asgRepo, usrSvc: usrSvc}
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

func (app *testApp) getToken(t *testing.T, usr user.User) string {
	token, err := app.server.auth.tokenFor(usr)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func (app *testApp) do(method, path, token string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newAuthRequest(method, path, token, data...)
	app.server.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) run(t *testing.T, tests []httpTest) {
	for _, tt := range tests {
		if tt.method == "" {
			tt.method = http.MethodGet
		}
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(tt.method, tt.path, tt.token, tt.body)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		if rec.Body.Len() != 0 {
			t.Errorf("failed! data = %v; want no data", rec.Body.String())
		}
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func testLogger() core.Logger {
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), testConfig())
	logger.Enable(false)
	return logger
}
