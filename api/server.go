// Package api serves a Vole machine over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ezrec/vole/cpu"
	"github.com/ezrec/vole/display"
	"github.com/ezrec/vole/emulator"
)

type ServerConfig struct {
	ListenerAddr string
	Logger       *zap.Logger
}

// Server owns one machine and serializes every request against it.
type Server struct {
	ServerConfig

	mu      sync.Mutex
	machine *emulator.Machine
	record  *display.Record

	logger *zap.Logger
}

func NewServer(config ServerConfig) (*Server, error) {
	if config.Logger == nil {
		config.Logger, _ = zap.NewDevelopment()
	}
	record := &display.Record{}
	s := &Server{
		ServerConfig: config,
		record:       record,
		machine: emulator.NewMachine(
			emulator.LoggerOpt(config.Logger),
			emulator.DisplayOpt(record),
		),
		logger: config.Logger.Named("api"),
	}

	return s, nil
}

// Handler returns the routes of the server.
func (s *Server) Handler() *echo.Echo {
	echoer := echo.New()
	echoer.HideBanner = true

	echoer.POST("/program", s.handleProgram)
	echoer.POST("/run", s.handleRun)
	echoer.POST("/step", s.handleStep)
	echoer.GET("/status", s.handleStatus)
	echoer.POST("/reset", s.handleReset)

	return echoer
}

func (s *Server) Start() error {
	s.logger.Info("api server starting",
		zap.String("addr", s.ListenerAddr))

	return s.Handler().Start(s.ListenerAddr)
}

func errorJSON(ectx echo.Context, code int, err error) error {
	return ectx.JSON(code,
		map[string]any{
			"error": err.Error(),
		})
}

func (s *Server) handleProgram(ectx echo.Context) error {
	body := ectx.Request().Body
	defer body.Close()

	var tokens []string
	var err error
	switch ectx.QueryParam("format") {
	case "asm":
		asm := &cpu.Assembler{Logger: s.logger}
		var prog *cpu.Program
		prog, err = asm.Parse(body)
		if err == nil {
			tokens = prog.Tokens()
		}
	case "", "hex":
		tokens, err = cpu.ReadTokens(body)
	default:
		err = errors.New(f("unknown format %v", ectx.QueryParam("format")))
	}
	if err != nil {
		return errorJSON(ectx, http.StatusBadRequest, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.machine.Reset()
	s.record.Reset()
	err = s.machine.Load(tokens)
	if err != nil {
		return errorJSON(ectx, http.StatusBadRequest, err)
	}

	return ectx.JSON(http.StatusOK,
		map[string]any{
			"size":   s.machine.ProgramSize,
			"tokens": strings.Join(tokens, " "),
		})
}

func (s *Server) handleRun(ectx echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record.Reset()
	err := s.machine.RunContext(ectx.Request().Context())

	return s.reply(ectx, err, nil)
}

func (s *Server) handleStep(ectx echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record.Reset()
	done, err := s.machine.Step()

	return s.reply(ectx, err, &done)
}

func (s *Server) handleStatus(ectx echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record.Reset()
	s.machine.Status()

	return s.reply(ectx, nil, nil)
}

func (s *Server) handleReset(ectx echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.machine.Reset()
	s.record.Reset()

	return ectx.NoContent(http.StatusNoContent)
}

// status is the body of every machine reply.
type status struct {
	Pc   int   `json:"pc"`
	Done *bool `json:"done,omitempty"`
	display.Record
	Error string `json:"error,omitempty"`
}

// reply sends the recorded display, the program counter, and any fault.
// A run stopped by its request context is 503, a machine fault is 422.
// Must be called with the lock held.
func (s *Server) reply(ectx echo.Context, err error, done *bool) error {
	body := status{
		Pc:     s.machine.Cpu.Pc,
		Done:   done,
		Record: s.record.Snapshot(),
	}

	code := http.StatusOK
	if err != nil {
		body.Error = err.Error()
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			s.logger.Warn("run stopped", zap.Error(err))
			code = http.StatusServiceUnavailable
		default:
			s.logger.Warn("machine fault", zap.Error(err))
			code = http.StatusUnprocessableEntity
		}
	}

	return ectx.JSON(code, body)
}
