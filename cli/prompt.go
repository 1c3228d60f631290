// Package cli holds the terminal prompts shared by the operator tools.
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

// AskYesNo prints question and reads a y/n answer. Anything other than
// "y" or "yes" counts as no.
func AskYesNo(reader *bufio.Reader, w io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprintf(w, "%s (y/n): ", question); err != nil {
		return false, err
	}
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// GetPassword reads a password without echo, asking twice so typos are
// caught before anything is written.
func GetPassword(w io.Writer) (string, error) {
	first, err := readHidden(w, "New password: ")
	if err != nil {
		return "", err
	}
	second, err := readHidden(w, "Repeat password: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.New("passwords do not match")
	}
	if first == "" {
		return "", errors.New("password must not be empty")
	}
	return first, nil
}

func readHidden(w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
