package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ReadPassword prompts for a secret without echoing it. When stdin is
// not a terminal (tests, pipes) it falls back to a plain line read.
func ReadPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, PromptStyleRender(prompt))

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// PromptStyleRender renders a prompt label.
func PromptStyleRender(prompt string) string {
	return BoldStyle.Render(prompt) + " "
}
