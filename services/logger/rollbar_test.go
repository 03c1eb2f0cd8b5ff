package logsvc

import (
	"bytes"
	"fmt"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/rpeck07/StudentoS/core"
	"github.com/rpeck07/StudentoS/core/user"
)

func newTestLogger() (*RollbarLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewRollbarLogger(log.New(&buf, "", 0), &core.Config{Env: "TEST"})
	l.Enable(false)
	return l, &buf
}

func TestRollbarLogger_prepare(t *testing.T) {
	l, _ := newTestLogger()
	err := errors.New("boom")
	extras := map[string]interface{}{"path": "/v1/dashboard"}
	alice := user.User{ID: "u1", Username: "alice"}
	bob := user.User{ID: "u2", Username: "bob"}

	got := l.prepare("request failed", []interface{}{err, alice, extras, bob})
	assert.Equal(t, []interface{}{"request failed", err, extras}, got)
}

func TestRollbarLogger_print(t *testing.T) {
	l, buf := newTestLogger()

	l.Error("request failed", fmt.Errorf("boom"), user.User{ID: "u1", Username: "alice"})
	assert.Equal(t, "ERROR request failed\n  boom\n  user: alice (u1)\n", buf.String())

	buf.Reset()
	l.Info("Application stopped")
	assert.Equal(t, "INFO Application stopped\n", buf.String())
}
