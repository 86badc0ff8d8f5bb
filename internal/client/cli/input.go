package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetText prompts on w and reads one trimmed line from reader. An empty
// answer yields def, which is shown in brackets when set. A last line
// without a newline is accepted.
func GetText(reader *bufio.Reader, w io.Writer, prompt, def string) (string, error) {
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, def)
	}
	if _, err := fmt.Fprintf(w, "%s\n> ", prompt); err != nil {
		return "", err
	}

	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}

	if v := strings.TrimSpace(line); v != "" {
		return v, nil
	}
	return def, nil
}

// GetPassword prompts on w and reads a password from the terminal without
// echo. Callers wipe the result with common.WipeByteArray.
func GetPassword(w io.Writer) ([]byte, error) {
	fmt.Fprint(w, "Password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return pw, nil
}
