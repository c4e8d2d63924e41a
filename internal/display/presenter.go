package display

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/harrison/lgrep/internal/models"
)

// Outcome tells the caller what Present did with a line.
type Outcome int

const (
	// OutcomeNone means the line was ignored: it did not match, or it is a
	// binary line under the skip policy.
	OutcomeNone Outcome = iota
	// OutcomeMatched means the line matched and was printed (or silently
	// acknowledged in quiet mode).
	OutcomeMatched
	// OutcomeCounted means the line matched and should be added to the
	// per-source count; nothing was printed.
	OutcomeCounted
	// OutcomeStop means a binary line matched, the binary-file notice was
	// printed, and the source must not be scanned any further.
	OutcomeStop
)

// String returns the outcome name
func (o Outcome) String() string {
	switch o {
	case OutcomeMatched:
		return "matched"
	case OutcomeCounted:
		return "counted"
	case OutcomeStop:
		return "stop"
	default:
		return "none"
	}
}

// IsMatch reports whether the outcome came from a matching line
func (o Outcome) IsMatch() bool {
	return o != OutcomeNone
}

// PresenterOptions is the part of the run configuration the presenter reads.
type PresenterOptions struct {
	Quiet       bool
	Count       bool
	Color       bool
	LineNumbers bool
	BinaryMode  models.BinaryMode
}

// Presenter renders verdicts to the primary output stream.
// It is not safe for concurrent use.
type Presenter struct {
	out  io.Writer
	opts PresenterOptions
	buf  bytes.Buffer
	err  error

	filename   *color.Color
	lineNumber *color.Color
	match      *color.Color
}

// NewPresenter creates a Presenter writing to out. Colors follow
// opts.Color only; the fatih/color global NO_COLOR detection is bypassed
// because the decision was already made when the configuration was built.
func NewPresenter(out io.Writer, opts PresenterOptions) *Presenter {
	p := &Presenter{
		out:        out,
		opts:       opts,
		filename:   color.New(color.FgBlue),
		lineNumber: color.New(color.FgMagenta),
		match:      color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.filename, p.lineNumber, p.match} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Present applies the presentation rules to one evaluated line, in order:
// binary lines under the skip policy and non-matching lines produce nothing;
// quiet mode only acknowledges the match; count mode defers to FlushCount;
// a matching binary line under the binary policy prints a single notice and
// stops the source; anything else is printed with its prefixes and spans.
func (p *Presenter) Present(v models.Verdict, line models.Line, source string, showFilename bool) Outcome {
	if line.IsBinary() && p.opts.BinaryMode == models.BinaryModeSkip {
		return OutcomeNone
	}
	if !v.Matched {
		return OutcomeNone
	}
	if p.opts.Quiet {
		return OutcomeMatched
	}
	if p.opts.Count {
		return OutcomeCounted
	}

	p.buf.Reset()
	if line.IsBinary() && p.opts.BinaryMode == models.BinaryModeBinary {
		p.buf.WriteString("binary file ")
		p.buf.WriteString(p.filename.Sprint(source))
		p.buf.WriteString(" matches\n")
		p.flush()
		return OutcomeStop
	}

	if showFilename {
		p.buf.WriteString(p.filename.Sprint(source + ":"))
	}
	if p.opts.LineNumbers {
		p.buf.WriteString(p.lineNumber.Sprint(strconv.Itoa(line.Number) + ":"))
	}
	p.highlight(line.Data, v.Spans)
	p.buf.WriteByte('\n')
	p.flush()
	return OutcomeMatched
}

// highlight writes data with every span colored and the bytes between spans
// copied unchanged, so removing the color codes gives back data exactly.
func (p *Presenter) highlight(data []byte, spans []models.MatchSpan) {
	last := 0
	for _, s := range spans {
		if s.Offset < last || s.End() > len(data) {
			continue
		}
		p.buf.Write(data[last:s.Offset])
		if s.Length > 0 {
			p.buf.WriteString(p.match.Sprint(string(data[s.Offset:s.End()])))
		}
		last = s.End()
	}
	p.buf.Write(data[last:])
}

// FlushCount prints the per-source match count at the end of a source.
// It prints nothing in quiet mode.
func (p *Presenter) FlushCount(source string, count int, showFilename bool) {
	if p.opts.Quiet {
		return
	}
	p.buf.Reset()
	if showFilename {
		fmt.Fprintf(&p.buf, "%s:%d\n", source, count)
	} else {
		fmt.Fprintf(&p.buf, "%d\n", count)
	}
	p.flush()
}

// Err returns the first error encountered while writing output
func (p *Presenter) Err() error {
	return p.err
}

func (p *Presenter) flush() {
	if p.err != nil {
		return
	}
	if _, err := p.out.Write(p.buf.Bytes()); err != nil {
		p.err = fmt.Errorf("failed to write output: %w", err)
	}
}
