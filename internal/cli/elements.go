package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"listmenu/internal/discovery"
)

// ErrNoElements is returned when no elements were given and stdin is a terminal
var ErrNoElements = errors.New("no elements: pass them as arguments, with --file, --walk or on stdin")

// source says where elements come from when no arguments are given
type source struct {
	file string
	walk string
	scan discovery.Options
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// elements picks the menu entries from the arguments, the --file flag, the
// --walk directory or a piped stdin, in that order
func (a *App) elements(ctx context.Context, args []string, src source) ([]string, error) {
	switch {
	case len(args) > 0:
		return args, nil
	case src.file == "-":
		return readLines(a.In)
	case src.file != "":
		f, err := os.Open(src.file)
		if err != nil {
			return nil, fmt.Errorf("failed to open elements file: %w", err)
		}
		defer f.Close()
		return readLines(f)
	case src.walk != "":
		found, err := discovery.Scan(ctx, src.walk, src.scan)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("%w: no files under %s", ErrNoElements, src.walk)
		}
		return found, nil
	case !a.StdinIsTerminal():
		return readLines(a.In)
	}
	return nil, ErrNoElements
}
