package cmpres

import (
	"fmt"
	"io"
	"log/slog"
)

// passContext is the state one decoder works on: its input cursor and the
// output buffer sized to the declared length.
type passContext struct {
	index    int
	in       *byteCursor
	out      []byte
	warnings []Warning
	log      *slog.Logger
}

// warn records a non-fatal condition at the current input offset.
func (p *passContext) warn(err error) {
	w := Warning{Pass: p.index, Offset: p.in.pos, Err: err}
	p.warnings = append(p.warnings, w)
	p.log.Warn("decode warning", "pass", w.Pass, "offset", w.Offset, "err", err)
}

// Decompress decodes every pass of src and returns the final buffer with
// any warnings collected on the way.
// Options nil means DefaultOptions (all passes, no logging).
// With opts.MaxPasses set, decoding stops after that many passes and the
// intermediate buffer is returned without error.
func Decompress(src []byte, opts *Options) ([]byte, []Warning, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	log := opts.logger()

	in := newByteCursor(src)
	ch, err := readContainer(in)
	if err != nil {
		return nil, nil, &DecodeError{Pass: -1, Offset: in.pos, Err: err}
	}
	if ch.passes == 0 {
		return nil, nil, &DecodeError{Pass: -1, Offset: in.pos, Err: ErrNoPasses}
	}

	log.Debug("container header",
		"multi_pass", ch.multi,
		"passes", ch.passes,
		"final_length_hint", ch.hint,
	)

	var (
		out      []byte
		warnings []Warning
	)

	for i := 0; i < ch.passes; i++ {
		var pending *byte
		if i == 0 {
			pending = ch.pending()
		}

		typ, length, err := readPassHeader(in, pending)
		if err != nil {
			return nil, warnings, &DecodeError{Pass: i, Offset: in.pos, Err: err}
		}

		p := &passContext{
			index: i,
			in:    in,
			out:   make([]byte, length),
			log:   log,
		}

		if length > 0 {
			switch typ {
			case PassRLE:
				err = decodeRLE(p)
			case PassHuffman:
				err = decodeHuffman(p)
			}
		}
		warnings = append(warnings, p.warnings...)
		if err != nil {
			return nil, warnings, &DecodeError{Pass: i, Offset: in.pos, Err: err}
		}

		log.Debug("pass decoded",
			"pass", i,
			"type", typ,
			"declared_len", length,
			"consumed", in.pos,
			"input_len", len(in.data),
		)

		out = p.out
		if i+1 == ch.passes {
			break
		}
		if opts.MaxPasses > 0 && i+1 >= opts.MaxPasses {
			log.Debug("pass limit reached", "done", i+1, "passes", ch.passes)
			break
		}

		// The produced buffer is the next pass's input; the old one is dropped.
		in = newByteCursor(out)
	}

	return out, warnings, nil
}

// DecompressFromReader reads the whole blob from r and decodes it.
// It returns the decoded bytes, warnings, and the number of bytes read from r.
func DecompressFromReader(r io.Reader, opts *Options) ([]byte, []Warning, int64, error) {
	if r == nil {
		return nil, nil, 0, ErrNilReader
	}

	src, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, int64(len(src)), fmt.Errorf("read input: %w", err)
	}

	out, warnings, err := Decompress(src, opts)

	return out, warnings, int64(len(src)), err
}
