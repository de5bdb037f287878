// Package bytestream adapts a raw io.Reader byte source into a
// stream.Renderer's push/end calls, the simplest of the three transport
// adapters the wire protocol describes.
package bytestream

import (
	"bufio"
	"context"
	"io"
	"unicode/utf8"

	"github.com/livellm/livellm/pkg/livellm/stream"
)

// Extractor optionally transforms a decoded chunk before it's pushed
// (e.g. stripping a provider-specific prefix). A nil Extractor passes
// chunks through unchanged.
type Extractor func(chunk string) string

// Adapter reads from Source in fixed-size reads, reassembling any UTF-8
// rune that a read boundary split, and pushes the result into Renderer.
type Adapter struct {
	Source    io.Reader
	Renderer  *stream.Renderer
	Extract   Extractor
	BufSize   int
}

// DefaultBufSize is used when Adapter.BufSize is unset.
const DefaultBufSize = 4096

// Run reads Source until EOF or ctx is cancelled, pushing each decoded
// chunk into Renderer, then calls Renderer.End(). A read error other than
// io.EOF aborts the stream via Renderer.Abort() and is returned.
func (a *Adapter) Run(ctx context.Context) error {
	bufSize := a.BufSize
	if bufSize <= 0 {
		bufSize = DefaultBufSize
	}

	r := bufio.NewReaderSize(a.Source, bufSize)
	var pending []byte

	buf := make([]byte, bufSize)
	for {
		select {
		case <-ctx.Done():
			a.Renderer.Abort()
			return ctx.Err()
		default:
		}

		n, err := r.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			complete, rest := splitTrailingIncompleteRune(pending)
			pending = rest
			if len(complete) > 0 {
				chunk := string(complete)
				if a.Extract != nil {
					chunk = a.Extract(chunk)
				}
				a.Renderer.Push(chunk)
			}
		}
		if err == io.EOF {
			if len(pending) > 0 {
				a.Renderer.Push(string(pending))
			}
			a.Renderer.End()
			return nil
		}
		if err != nil {
			a.Renderer.Abort()
			return err
		}
	}
}

// splitTrailingIncompleteRune returns the longest valid-UTF-8 prefix of
// buf and the remaining trailing bytes that might be the start of a
// multi-byte rune split across a read boundary.
func splitTrailingIncompleteRune(buf []byte) (complete, rest []byte) {
	if len(buf) == 0 || utf8.FullRune(buf) {
		return buf, nil
	}
	// Back up at most utf8.UTFMax-1 bytes looking for where a partial
	// rune might begin.
	limit := len(buf) - utf8.UTFMax
	if limit < 0 {
		limit = 0
	}
	for i := len(buf) - 1; i >= limit; i-- {
		if utf8.RuneStart(buf[i]) {
			if utf8.FullRune(buf[i:]) {
				return buf, nil
			}
			return buf[:i], buf[i:]
		}
	}
	return buf, nil
}
