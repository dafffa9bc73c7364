// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"

	"github.com/ezrec/vole/api"
	"github.com/ezrec/vole/cpu"
	"github.com/ezrec/vole/display"
	"github.com/ezrec/vole/emulator"
	"github.com/ezrec/vole/menu"
	"github.com/ezrec/vole/translate"
)

func main() {
	var program string
	var assemble string
	var step bool
	var listen string
	var lang string
	var verbose bool

	flag.StringVar(&program, "p", "", "hex token program file to run")
	flag.StringVar(&assemble, "a", "", ".vasm file to assemble and run")
	flag.BoolVar(&step, "s", false, "Step mode, show status after every instruction")
	flag.StringVar(&listen, "http", "", "Serve the machine over HTTP on this address")
	flag.StringVar(&lang, "lang", "", "Message language (BCP 47 tag), default from locale")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	config := zap.NewDevelopmentConfig()
	if !verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	logger, err := config.Build()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if flag.NArg() != 0 {
		logger.Fatal("unknown arguments", zap.Strings("args", flag.Args()))
	}

	if len(lang) != 0 {
		tag, err := language.Parse(lang)
		if err != nil {
			logger.Fatal("language", zap.String("lang", lang), zap.Error(err))
		}
		translate.Use(tag)
	}

	if len(listen) != 0 {
		srv, err := api.NewServer(api.ServerConfig{ListenerAddr: listen, Logger: logger})
		if err != nil {
			logger.Fatal("api", zap.Error(err))
		}
		err = srv.Start()
		if err != nil {
			logger.Fatal("api", zap.Error(err))
		}
		return
	}

	machine := emulator.NewMachine(
		emulator.LoggerOpt(logger),
		emulator.DisplayOpt(&display.Text{Output: os.Stdout}),
	)

	var tokens []string
	switch {
	case len(assemble) != 0:
		inf, err := os.Open(assemble)
		if err != nil {
			logger.Fatal("open", zap.String("file", assemble), zap.Error(err))
		}
		defer inf.Close()

		asm := &cpu.Assembler{Logger: logger}
		prog, err := asm.Parse(inf)
		if err != nil {
			logger.Fatal("assemble", zap.String("file", assemble), zap.Error(err))
		}
		tokens = prog.Tokens()
	case len(program) != 0:
		inf, err := os.Open(program)
		if err != nil {
			logger.Fatal("open", zap.String("file", program), zap.Error(err))
		}
		defer inf.Close()

		tokens, err = cpu.ReadTokens(inf)
		if err != nil {
			logger.Fatal("read", zap.String("file", program), zap.Error(err))
		}
	default:
		mn := &menu.Menu{
			Machine: machine,
			Input:   os.Stdin,
			Output:  os.Stdout,
		}
		err = mn.Run()
		if err != nil {
			logger.Fatal("menu", zap.Error(err))
		}
		return
	}

	err = machine.Load(tokens)
	if err != nil {
		logger.Fatal("load", zap.Error(err))
	}

	if step {
		for done := false; !done; {
			done, err = machine.Step()
		}
	} else {
		err = machine.Run()
	}
	machine.ShowMemory()

	if err != nil {
		logger.Fatal("run", zap.Error(err))
	}
}
