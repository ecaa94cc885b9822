// Package separate splits GPX files on disk into per-category files.
package separate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Miitto/gpx-separator/pkg/gpx"
)

// Errors returned by Run. Every failure wraps exactly one of them.
var (
	ErrSourceOpen = gpx.ErrSourceOpen
	ErrDecode     = gpx.ErrInvalidEncoding
	ErrWrite      = gpx.ErrWrite
	ErrCreate     = errors.New("failed to create output file")
	ErrNoBaseName = errors.New("cannot derive base name")
)

const tokensSuffix = "_tokens.txt"

type (
	// Confirmer is asked before existing outputs are overwritten. It receives
	// the paths that already exist.
	Confirmer func(existing []string) (bool, error)

	// Notifier is told about every successful split.
	Notifier interface {
		Written(Result)
	}

	// NotifierFunc adapts a function to Notifier.
	NotifierFunc func(Result)

	// Options configures Run.
	Options struct {
		// Dir receives the outputs; empty means the source's directory.
		Dir string
		// Force overwrites existing outputs without asking.
		Force    bool
		Confirm  Confirmer
		Notifier Notifier
		Logger   logrus.FieldLogger
	}

	// Outputs names the files produced for one source.
	Outputs struct {
		Dir  string
		Base string
	}

	// Result describes one finished or cancelled run.
	Result struct {
		Source    string
		Path      string
		Outputs   Outputs
		Stats     gpx.Stats
		Written   bool
		Cancelled bool
	}
)

// Written calls f(r).
func (f NotifierFunc) Written(r Result) { f(r) }

// BaseName returns the file name of path up to its first '.'.
func BaseName(path string) (string, error) {
	name := filepath.Base(path)
	if path == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return "", fmt.Errorf("%w: %q", ErrNoBaseName, path)
	}

	base, _, _ := strings.Cut(name, ".")
	if base == "" {
		return "", fmt.Errorf("%w: %q", ErrNoBaseName, path)
	}
	return base, nil
}

// Path returns the output path for category c.
func (o Outputs) Path(c gpx.Category) string {
	return filepath.Join(o.Dir, o.Base+c.Suffix())
}

// TokensPath returns the path of the token dump.
func (o Outputs) TokensPath() string {
	return filepath.Join(o.Dir, o.Base+tokensSuffix)
}

// Paths returns the three category output paths in category order.
func (o Outputs) Paths() []string {
	var paths []string
	for _, c := range gpx.Categories() {
		paths = append(paths, o.Path(c))
	}
	return paths
}

// Existing returns the category outputs that are already on disk.
func (o Outputs) Existing() []string {
	var existing []string
	for _, p := range o.Paths() {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	return existing
}

func (opts Options) logger() logrus.FieldLogger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return logrus.StandardLogger()
}

// Run splits src into waypoint, route and track files.
//
// The token dump is always written before the overwrite check. A declined
// overwrite returns a cancelled Result and no error. Files written before a
// failure are left as they are.
func Run(src string, opts Options) (Result, error) {
	log := opts.logger().WithField("file", src)
	res := Result{Source: src}

	tokens, err := gpx.TokenizeFile(src)
	if err != nil {
		return res, err
	}
	log.WithField("tokens", len(tokens)).Debug("tokenized file")

	base, err := BaseName(src)
	if err != nil {
		return res, err
	}

	dir := opts.Dir
	if dir == "" {
		dir = filepath.Dir(src)
	}
	res.Outputs = Outputs{Dir: dir, Base: base}
	res.Path = filepath.Join(dir, base)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return res, fmt.Errorf("%w: %w", ErrCreate, err)
	}

	if err := writeTokenDump(res.Outputs.TokensPath(), tokens); err != nil {
		return res, err
	}

	if existing := res.Outputs.Existing(); len(existing) > 0 && !opts.Force {
		ok := false
		if opts.Confirm != nil {
			if ok, err = opts.Confirm(existing); err != nil {
				return res, err
			}
		}
		if !ok {
			log.Info("overwrite declined")
			res.Cancelled = true
			return res, nil
		}
	}

	log.WithField("dir", dir).Debug("writing files")
	stats, err := writeCategories(res.Outputs, tokens, log)
	res.Stats = stats
	if err != nil {
		return res, err
	}

	log.WithFields(logrus.Fields{
		"waypoints": stats.Captures[gpx.Waypoints],
		"routes":    stats.Captures[gpx.Routes],
		"tracks":    stats.Captures[gpx.Tracks],
	}).Info("files written")
	res.Written = true

	if opts.Notifier != nil {
		opts.Notifier.Written(res)
	}
	return res, nil
}

func writeTokenDump(path string, tokens []gpx.Token) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCreate, err)
	}

	w := bufio.NewWriter(f)
	return flushClose(gpx.WriteTokens(w, tokens), w, f)
}

func writeCategories(out Outputs, tokens []gpx.Token, log logrus.FieldLogger) (gpx.Stats, error) {
	var (
		files   []*os.File
		buffers []*bufio.Writer
	)
	for _, p := range out.Paths() {
		f, err := os.Create(p)
		if err != nil {
			for _, opened := range files {
				_ = opened.Close()
			}
			return gpx.Stats{}, fmt.Errorf("%w: %w", ErrCreate, err)
		}
		files = append(files, f)
		buffers = append(buffers, bufio.NewWriter(f))
	}

	stats, err := gpx.Split(tokens, gpx.Writers{
		Waypoints: buffers[gpx.Waypoints],
		Routes:    buffers[gpx.Routes],
		Tracks:    buffers[gpx.Tracks],
	}, gpx.WithLogger(log))

	// Flush what was written even on failure; nothing is rolled back.
	for i := range files {
		err = flushClose(err, buffers[i], files[i])
	}
	return stats, err
}

// flushClose flushes w and closes c. It returns err when set, otherwise the
// first flush or close failure wrapped in ErrWrite.
func flushClose(err error, w *bufio.Writer, c io.Closer) error {
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = fmt.Errorf("%w: %w", ErrWrite, ferr)
	}
	if cerr := c.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("%w: %w", ErrWrite, cerr)
	}
	return err
}
