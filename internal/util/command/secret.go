package command

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// ReadSecret reads a single secret. See ReadSecrets.
func ReadSecret(in io.Reader, prompt io.Writer, label string) (string, error) {
	secrets, err := ReadSecrets(in, prompt, label)
	if err != nil {
		return "", err
	}
	return secrets[0], nil
}

// ReadSecrets reads one secret per label, one per line. On a terminal each
// one is prompted for without echo.
func ReadSecrets(in io.Reader, prompt io.Writer, labels ...string) ([]string, error) {
	if len(labels) == 0 {
		return nil, errors.New("no secrets requested")
	}

	secrets := make([]string, 0, len(labels))

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		for _, label := range labels {
			fmt.Fprintf(prompt, "%s: ", label)
			b, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(prompt)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to read %s", label)
			}
			secrets = append(secrets, strings.TrimSpace(string(b)))
		}
		return secrets, nil
	}

	r := bufio.NewReader(in)
	for _, label := range labels {
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Wrapf(err, "failed to read %s", label)
		}

		secret := strings.TrimSpace(line)
		if secret == "" {
			return nil, errors.Errorf("%s is missing", label)
		}
		secrets = append(secrets, secret)
	}

	return secrets, nil
}

// NumberedLabels returns "<label> 1/n" ... "<label> n/n".
func NumberedLabels(label string, n int) []string {
	if n < 0 {
		n = 0
	}
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("%s %d/%d", label, i+1, n)
	}
	return labels
}
