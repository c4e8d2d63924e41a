// Package walker drives a search run: it selects the input sources, reads
// them line by line and hands every line to the matcher and presenter.
//
// Sources are scanned one at a time on the calling goroutine. Failures to
// open or read a source are logged and counted but never stop the run.
package walker

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/harrison/lgrep/internal/config"
	"github.com/harrison/lgrep/internal/display"
	"github.com/harrison/lgrep/internal/fileutil"
	"github.com/harrison/lgrep/internal/matcher"
	"github.com/harrison/lgrep/internal/models"
	"github.com/harrison/lgrep/internal/pattern"
)

// StdinName is the display name of standard input
const StdinName = "stdin"

// ErrIsDirectory is reported for a directory source in a non-recursive run
var ErrIsDirectory = errors.New("is a directory")

// Logger receives per-source diagnostics and tracing
type Logger interface {
	LogError(message string)
	LogDebug(message string)
	LogTrace(message string)
}

type nopLogger struct{}

func (nopLogger) LogError(string) {}
func (nopLogger) LogDebug(string) {}
func (nopLogger) LogTrace(string) {}

// Result summarises a finished run
type Result struct {
	// AnyMatch is true if at least one line matched in any source
	AnyMatch bool

	// Sources is the number of sources that were opened and scanned
	Sources int

	// Lines is the number of lines read across all sources
	Lines int

	// Matches is the number of matched lines across all sources
	Matches int

	// Errors is the number of sources that could not be opened or read
	Errors int
}

// Walker scans sources against a compiled pattern set
type Walker struct {
	cfg       config.Config
	set       *pattern.Set
	presenter *display.Presenter
	log       Logger

	tally   models.RunTally
	result  Result
	stopped bool
}

// New creates a Walker. Matched output goes to out; diagnostics go to log,
// which may be nil.
func New(cfg config.Config, set *pattern.Set, out io.Writer, log Logger) *Walker {
	if log == nil {
		log = nopLogger{}
	}
	return &Walker{
		cfg: cfg,
		set: set,
		presenter: display.NewPresenter(out, display.PresenterOptions{
			Quiet:       cfg.Quiet,
			Count:       cfg.Count,
			Color:       cfg.Color,
			LineNumbers: cfg.LineNumbers,
			BinaryMode:  cfg.BinaryMode,
		}),
		log: log,
	}
}

// Run scans sources and returns the run summary. With no sources a
// non-recursive run reads stdin and a recursive run expands the current
// directory. The error is non-nil only when writing to the output fails.
func (w *Walker) Run(sources []string, stdin io.Reader) (Result, error) {
	switch {
	case w.cfg.Recursive:
		roots := sources
		if len(roots) == 0 {
			roots = []string{"."}
		}
		for _, root := range roots {
			if w.stopped {
				break
			}
			w.expand(root)
		}
	case len(sources) == 0:
		w.scan(StdinName, stdin, false)
	default:
		showFilename := len(sources) >= 2
		for _, source := range sources {
			if w.stopped {
				break
			}
			w.scanFile(source, showFilename)
		}
	}

	w.result.AnyMatch = w.tally.AnyMatch
	w.result.Matches = w.tally.TotalCount
	if err := w.presenter.Err(); err != nil {
		return w.result, fmt.Errorf("write output: %w", err)
	}
	return w.result, nil
}

func (w *Walker) expand(root string) {
	w.log.LogDebug(fmt.Sprintf("expanding %s", root))
	for leaf, err := range fileutil.Expand(root) {
		if err != nil {
			w.result.Errors++
			w.reportError(err.Error())
			continue
		}
		w.scanFile(leaf.Path, true)
		if w.stopped {
			break
		}
	}
}

func (w *Walker) scanFile(path string, showFilename bool) {
	f, err := os.Open(path)
	if err != nil {
		w.sourceFailed(path, err)
		return
	}
	defer f.Close()

	if !w.cfg.Recursive {
		if info, err := f.Stat(); err == nil && info.IsDir() {
			w.sourceFailed(path, ErrIsDirectory)
			return
		}
	}

	w.scan(path, f, showFilename)
}

func (w *Walker) scan(name string, r io.Reader, showFilename bool) {
	if err := w.ScanReader(name, r, showFilename); err != nil {
		w.sourceFailed(name, err)
	}
}

// ScanReader scans a single stream named name. The per-source count is
// flushed once the stream is done, even when reading it failed part way.
func (w *Walker) ScanReader(name string, r io.Reader, showFilename bool) error {
	w.log.LogDebug(fmt.Sprintf("scanning %s", name))
	w.tally.StartSource()
	w.result.Sources++
	defer func() {
		if w.cfg.Count {
			w.presenter.FlushCount(name, w.tally.SourceCount, showFilename)
		}
	}()

	reader := bufio.NewReader(r)
	number := 0
	for {
		data, err := reader.ReadBytes('\n')
		if len(data) == 0 && err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		number++
		w.result.Lines++
		line := matcher.NewLine(bytes.TrimSuffix(data, []byte{'\n'}), number)
		if w.handleLine(line, name, showFilename) {
			return nil
		}

		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// handleLine evaluates and presents one line and reports whether the
// current source is finished.
func (w *Walker) handleLine(line models.Line, name string, showFilename bool) bool {
	verdict := matcher.Evaluate(line, w.set, w.cfg.Invert)
	outcome := w.presenter.Present(verdict, line, name, showFilename)
	if w.presenter.Err() != nil {
		w.stopped = true
		return true
	}
	if !outcome.IsMatch() {
		return false
	}

	w.tally.Record()
	w.log.LogTrace(fmt.Sprintf("%s:%d %s", name, line.Number, outcome))

	if w.cfg.Quiet {
		w.stopped = true
		return true
	}
	// a matched binary line ends its source in every output mode
	if line.IsBinary() && w.cfg.BinaryMode == models.BinaryModeBinary {
		return true
	}
	return outcome == display.OutcomeStop
}

func (w *Walker) sourceFailed(name string, err error) {
	w.result.Errors++
	w.reportError(fmt.Sprintf("Failed with file %s: %v", name, err))
}

func (w *Walker) reportError(message string) {
	if w.cfg.SuppressErrors {
		return
	}
	w.log.LogError(message)
}
