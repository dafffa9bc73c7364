package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func newTestServer(t *testing.T, opts ...zaptest.LoggerOption) *echo.Echo {
	s, err := NewServer(ServerConfig{Logger: zaptest.NewLogger(t, opts...)})
	require.NoError(t, err)
	return s.Handler()
}

func do(t *testing.T, e *echo.Echo, method, target, body string) (code int, reply map[string]any) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	code = rec.Code
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	}
	return
}

func TestServerRun(t *testing.T) {
	assert := assert.New(t)

	e := newTestServer(t)

	code, reply := do(t, e, http.MethodPost, "/program", "2005 2103\n5201 C000\n")
	assert.Equal(http.StatusOK, code)
	assert.Equal(float64(8), reply["size"])
	assert.Equal("2005 2103 5201 C000", reply["tokens"])

	code, reply = do(t, e, http.MethodPost, "/run", "")
	assert.Equal(http.StatusOK, code)
	assert.Equal([]any{"Program Halted", "PC: 06  IR: C000"}, reply["messages"])
	regs := reply["registers"].([]any)
	assert.Equal([]any{"05", "03", "08"}, regs[:3])
	assert.Equal(float64(8), reply["pc"])
	assert.NotContains(reply, "error")

	code, reply = do(t, e, http.MethodGet, "/status", "")
	assert.Equal(http.StatusOK, code)
	memory := reply["memory"].([]any)
	assert.Len(memory, 16)
	assert.Equal("20", memory[0].([]any)[0])
}

func TestServerAssemble(t *testing.T) {
	assert := assert.New(t)

	e := newTestServer(t)

	code, reply := do(t, e, http.MethodPost, "/program?format=asm", "loadi r0 9\nloadi r1 8\nadd r2 r0 r1\nhalt\n")
	assert.Equal(http.StatusOK, code)
	assert.Equal("2009 2108 5201 C000", reply["tokens"])

	code, reply = do(t, e, http.MethodPost, "/run", "")
	assert.Equal(http.StatusOK, code)
	assert.Equal("01", reply["registers"].([]any)[2])
}

func TestServerStep(t *testing.T) {
	assert := assert.New(t)

	e := newTestServer(t)

	code, _ := do(t, e, http.MethodPost, "/program", "2005 C000")
	assert.Equal(http.StatusOK, code)

	code, reply := do(t, e, http.MethodPost, "/step", "")
	assert.Equal(http.StatusOK, code)
	assert.Equal(false, reply["done"])
	assert.Equal([]any{"PC: 00  IR: 2005"}, reply["messages"])

	code, reply = do(t, e, http.MethodPost, "/step", "")
	assert.Equal(http.StatusOK, code)
	assert.Equal(true, reply["done"])
	assert.Equal([]any{"Program Halted", "PC: 02  IR: C000"}, reply["messages"])
}

func TestServerErrors(t *testing.T) {
	assert := assert.New(t)

	e := newTestServer(t)

	code, reply := do(t, e, http.MethodPost, "/program", "2005 210")
	assert.Equal(http.StatusBadRequest, code)
	assert.Contains(reply["error"], "210")

	code, reply = do(t, e, http.MethodPost, "/program?format=asm", "bogus")
	assert.Equal(http.StatusBadRequest, code)
	assert.Contains(reply, "error")

	code, _ = do(t, e, http.MethodPost, "/program?format=elf", "")
	assert.Equal(http.StatusBadRequest, code)

	code, _ = do(t, e, http.MethodPost, "/program", "2005 D000")
	assert.Equal(http.StatusOK, code)

	code, reply = do(t, e, http.MethodPost, "/run", "")
	assert.Equal(http.StatusUnprocessableEntity, code)
	assert.Contains(reply, "error")
	assert.Equal("05", reply["registers"].([]any)[0])
}

func TestServerReset(t *testing.T) {
	assert := assert.New(t)

	e := newTestServer(t)

	code, _ := do(t, e, http.MethodPost, "/program", "2005 C000")
	assert.Equal(http.StatusOK, code)

	code, _ = do(t, e, http.MethodPost, "/run", "")
	assert.Equal(http.StatusOK, code)

	code, _ = do(t, e, http.MethodPost, "/reset", "")
	assert.Equal(http.StatusNoContent, code)

	code, reply := do(t, e, http.MethodGet, "/status", "")
	assert.Equal(http.StatusOK, code)
	assert.Equal(float64(0), reply["pc"])
	assert.Equal("00", reply["registers"].([]any)[0])
	assert.Equal("00", reply["memory"].([]any)[0].([]any)[0])
}

func TestServerRunTimeout(t *testing.T) {
	assert := assert.New(t)

	e := newTestServer(t, zaptest.Level(zap.WarnLevel))

	// Jumps back to 00 and never halts.
	code, _ := do(t, e, http.MethodPost, "/program", "2000 B000")
	assert.Equal(http.StatusOK, code)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodPost, "/run", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(http.StatusServiceUnavailable, rec.Code)
	var reply map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Contains(reply["error"], "deadline")
	assert.Len(reply["messages"], 1)

	// The machine is free for the next request.
	finished := make(chan int)
	go func() {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
		finished <- rec.Code
	}()

	select {
	case code = <-finished:
		assert.Equal(http.StatusOK, code)
	case <-time.After(2 * time.Second):
		assert.Fail("status request blocked after the run was stopped")
	}

	code, _ = do(t, e, http.MethodPost, "/reset", "")
	assert.Equal(http.StatusNoContent, code)
}
