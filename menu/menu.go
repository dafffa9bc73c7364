// Package menu is the interactive console front end for a Vole machine.
package menu

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/vole/cpu"
	"github.com/ezrec/vole/emulator"
	"github.com/ezrec/vole/translate"
)

var f = translate.From

// ASM_SUFFIX marks program files holding assembly rather than hex tokens.
const ASM_SUFFIX = ".vasm"

// Menu reads choices from Input and drives Machine, writing to Output.
type Menu struct {
	Machine *emulator.Machine
	Input   io.Reader
	Output  io.Writer

	// Open opens a program file. Defaults to os.Open.
	Open func(name string) (io.ReadCloser, error)

	realInput bool
	scanner   *bufio.Scanner
}

// isTerminal reports whether the stream is an interactive terminal.
func isTerminal(stream any) bool {
	file, ok := stream.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

func (mn *Menu) printf(format string, args ...any) {
	fmt.Fprint(mn.Output, f(format, args...))
}

// prompt shows text only when a person is typing.
func (mn *Menu) prompt(text string) {
	if mn.realInput {
		fmt.Fprint(mn.Output, text)
	}
}

// readLine returns the next trimmed input line; ok is false at end of input.
func (mn *Menu) readLine() (line string, ok bool) {
	if !mn.scanner.Scan() {
		return
	}
	return strings.TrimSpace(mn.scanner.Text()), true
}

// Run shows the menu until the exit choice or end of input.
func (mn *Menu) Run() (err error) {
	if mn.Open == nil {
		mn.Open = func(name string) (io.ReadCloser, error) { return os.Open(name) }
	}
	mn.realInput = isTerminal(mn.Input)
	mn.scanner = bufio.NewScanner(mn.Input)

	for {
		mn.prompt(f("\n1. Load program from file\n" +
			"2. Execute program\n" +
			"3. Step through program\n" +
			"4. Display status\n" +
			"5. Reset machine\n" +
			"6. Exit\n" +
			"Choose an option: "))

		choice, ok := mn.readLine()
		if !ok {
			return mn.scanner.Err()
		}

		switch choice {
		case "1":
			mn.prompt(f("Enter file name: "))
			name, ok := mn.readLine()
			if !ok {
				return mn.scanner.Err()
			}
			mn.load(name)
		case "2":
			err = mn.Machine.Run()
			if err != nil {
				mn.printf("Error: %v\n", err)
			}
		case "3":
			mn.step()
		case "4":
			mn.Machine.Status()
		case "5":
			mn.Machine.Reset()
			mn.printf("Machine reset\n")
		case "6", "q", "quit", "exit":
			return nil
		case "":
			// ignore blank lines
		default:
			mn.printf("Invalid choice '%v'\n", choice)
		}
	}
}

// load reads a program file and loads it into a freshly reset machine.
func (mn *Menu) load(name string) {
	tokens, err := mn.readProgram(name)
	if err != nil {
		mn.printf("Error: %v\n", err)
		return
	}

	mn.Machine.Reset()
	err = mn.Machine.Load(tokens)
	if err != nil {
		mn.printf("Error: %v\n", err)
		return
	}

	mn.printf("Loaded %d instructions from %v\n", len(tokens), name)
}

// readProgram returns the tokens of a hex or assembly program file.
func (mn *Menu) readProgram(name string) (tokens []string, err error) {
	inf, err := mn.Open(name)
	if err != nil {
		return
	}
	defer inf.Close()

	if !strings.HasSuffix(name, ASM_SUFFIX) {
		return cpu.ReadTokens(inf)
	}

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(inf)
	if err != nil {
		return
	}

	tokens = prog.Tokens()
	return
}

// step executes one instruction per line of input until the program
// stops or the user enters 'q'.
func (mn *Menu) step() {
	for {
		done, err := mn.Machine.Step()
		if err != nil {
			mn.printf("Error: %v\n", err)
		}
		if done {
			return
		}

		mn.prompt(f("Press Enter to continue, q to stop: "))
		line, ok := mn.readLine()
		if !ok || line == "q" {
			return
		}
	}
}
