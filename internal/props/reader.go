package props

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log"
)

// ReaderSource reads one JSON property object per line.
type ReaderSource struct {
	r io.Reader
}

func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r}
}

// Run returns when the input ends or ctx is done. A read blocked on a
// stream that never ends (stdin) is abandoned on cancel rather than waited for.
func (s *ReaderSource) Run(ctx context.Context, emit func(Update)) error {
	lines := make(chan []byte)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(s.r)
		for sc.Scan() {
			line := bytes.TrimSpace(sc.Bytes())
			if len(line) == 0 {
				continue
			}
			select {
			case lines <- append([]byte(nil), line...):
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errc:
					return err
				default:
					return nil
				}
			}
			u, err := Decode(line)
			if err != nil {
				log.Printf("props: %v", err)
			}
			emit(u)
		}
	}
}
