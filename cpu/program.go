package cpu

import (
	"bufio"
	"io"
	"iter"
)

// Line is a line of assembled code with its source location and generated instruction.
type Line struct {
	LineNo    int
	Addr      int
	Words     []string
	Code      Instruction
	LinkLabel string
}

// Program is an assembled instruction listing.
type Program struct {
	Lines []Line
}

// Debug returns the line that generated the instruction at addr, or nil.
func (prog *Program) Debug(addr int) (line *Line) {
	for n, ln := range prog.Lines {
		if addr >= ln.Addr && addr < ln.Addr+2 {
			line = &prog.Lines[n]
			break
		}
	}

	return
}

// Codes returns the instructions keyed by byte address.
func (prog *Program) Codes() iter.Seq2[int, Instruction] {
	return func(yield func(addr int, code Instruction) bool) {
		for _, ln := range prog.Lines {
			if !yield(ln.Addr, ln.Code) {
				return
			}
		}
	}
}

// Tokens returns the program as four digit hex tokens, ready to load.
func (prog *Program) Tokens() (tokens []string) {
	for _, code := range prog.Codes() {
		tokens = append(tokens, code.Token())
	}

	return
}

// ReadTokens splits a program image into its whitespace separated tokens.
// Tokens are not validated; the loader rejects malformed ones.
func ReadTokens(input io.Reader) (tokens []string, err error) {
	scanner := bufio.NewScanner(input)
	scanner.Split(bufio.ScanWords)

	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}

	err = scanner.Err()
	return
}
