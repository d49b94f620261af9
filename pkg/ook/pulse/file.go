package pulse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Text capture format: one "pulse gap" pair per line, ";train" starts
// a new train, any other line beginning with ';' is a comment.  This
// is the interchange format written by capture tooling upstream of the
// demodulators.

const trainMarker = ";train"

// ReadAll parses every train in a capture stream.
func ReadAll(r io.Reader) ([]*Train, error) {
	var trains []*Train
	var cur *Train

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ";") {
			if line == trainMarker {
				cur = &Train{}
				trains = append(trains, cur)
			}
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected \"pulse gap\", got %q", lineNum, line)
		}
		p, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad pulse duration: %w", lineNum, err)
		}
		g, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad gap duration: %w", lineNum, err)
		}
		if p < 0 || g < 0 {
			return nil, fmt.Errorf("line %d: negative duration", lineNum)
		}

		if cur == nil {
			cur = &Train{}
			trains = append(trains, cur)
		}
		cur.Append(p, g)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return trains, nil
}

// WriteTo writes the train in the text capture format.
func (t *Train) WriteTo(w io.Writer) (int64, error) {
	var written int64

	n, err := fmt.Fprintln(w, trainMarker)
	written += int64(n)
	if err != nil {
		return written, err
	}

	for i := 0; i < t.Len(); i++ {
		n, err := fmt.Fprintf(w, "%d %d\n", t.Pulse(i), t.Gap(i))
		written += int64(n)
		if err != nil {
			return written, err
		}
	}

	return written, nil
}
