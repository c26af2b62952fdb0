package sheetnames

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword prompts on out and reads one line from in, without echo
// when in is a terminal. An empty entry is a valid result and leaves
// the batch passwordless.
func readPassword(in *os.File, out io.Writer) (string, error) {
	fmt.Fprint(out, "Workbook password: ")

	if term.IsTerminal(int(in.Fd())) {
		raw, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}

	// Piped input, as in scripts and tests.
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
