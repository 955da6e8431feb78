package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio is the terminal implementation of IO
type Stdio struct {
	in     *bufio.Reader
	out    io.Writer
	stdin  *os.File // nil когда ввод не из файла, пароль читается как строка
	prompt io.Writer
}

// NewStdio returns IO bound to os.Stdin and os.Stdout
func NewStdio() IO {
	return &Stdio{
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		stdin:  os.Stdin,
		prompt: os.Stdout,
	}
}

// NewStream returns IO over arbitrary streams, passwords are read as plain lines
func NewStream(in io.Reader, out io.Writer) IO {
	return &Stdio{
		in:     bufio.NewReader(in),
		out:    out,
		prompt: out,
	}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	_, _ = fmt.Fprint(s.prompt, prompt)
	input, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func (s *Stdio) ReadPassword(prompt string) (string, error) {
	if s.stdin == nil || !term.IsTerminal(int(s.stdin.Fd())) {
		// pipe или файл: эха нет, читаем строку
		return s.ReadInput(prompt)
	}

	_, _ = fmt.Fprint(s.prompt, prompt)
	pwBytes, err := term.ReadPassword(int(s.stdin.Fd()))
	_, _ = fmt.Fprintln(s.prompt)
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}
