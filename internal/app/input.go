package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// GetSimpleText prints a prompt to w and reads a single line of input from
// reader. The trailing newline is trimmed. If EOF occurs after some input
// was read, the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetChoice prompts until the user enters one of the allowed values
// (case-insensitive). An empty line returns an error so flows can bail out.
func GetChoice(reader *bufio.Reader, prompt string, w io.Writer, allowed ...string) (string, error) {
	for {
		line, err := GetSimpleText(reader, fmt.Sprintf("%s [%s]", prompt, strings.Join(allowed, "/")), w)
		if err != nil {
			return "", err
		}
		if line == "" {
			return "", errors.New("cancelled")
		}
		for _, a := range allowed {
			if strings.EqualFold(line, a) {
				return a, nil
			}
		}
		fmt.Fprintf(w, "Please enter one of: %s\n", strings.Join(allowed, ", "))
	}
}
