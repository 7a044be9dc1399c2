// Package preprocess rewrites sliced G-code so Klipper can cancel individual
// objects. The slicer's object markers are found in a first pass, while the
// extrusion moves of each object are collected in its own hull; a second pass
// writes EXCLUDE_OBJECT_DEFINE lines with each object's outline and replaces
// the slicer markers with EXCLUDE_OBJECT_START and EXCLUDE_OBJECT_END.
package preprocess

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"fortio.org/safecast"

	"github.com/leftmike/gcscan"
	"github.com/leftmike/gcscan/internal/ctxlog"
)

const Version = "0.1.0"

var ErrUnknownSlicer = errors.New("could not identify slicer")

type Options struct {
	// Precision is the grid size used for object hulls; zero means 1.0.
	Precision float64
	Hull      HullMode
}

type Result struct {
	Slicer           string
	AlreadyProcessed bool
	Objects          []*Object
}

type processor struct {
	logger   *slog.Logger
	opts     Options
	parser   *gcscan.Parser
	handlers []func(line string) error

	objects map[string]*Object
	order   []*Object
	active  *Object

	w *bufio.Writer
}

func newProcessor(ctx context.Context, opts Options) *processor {
	if opts.Precision == 0 {
		opts.Precision = 1.0
	}
	return &processor{
		logger:  ctxlog.FromContext(ctx),
		opts:    opts,
		parser:  gcscan.NewParser(),
		objects: map[string]*Object{},
	}
}

func (pr *processor) registerInterest(prefix string, fn func(line string) error) {
	pr.handlers = append(pr.handlers, fn)
	pr.parser.RegisterInterest(prefix, safecast.MustConv[int32](len(pr.handlers)))
}

func (pr *processor) clearInterests() {
	pr.handlers = nil
	pr.parser.ClearInterests()
	pr.parser.SetHull(nil)
}

// feedLine runs the handler of the interest matching line, if any.
func (pr *processor) feedLine(line string) (bool, error) {
	code, ok := pr.parser.FeedLine(line)
	if !ok {
		return false, nil
	}
	return true, pr.handlers[code-1](line)
}

func (pr *processor) defineObject(id, name string) (*Object, error) {
	if obj, ok := pr.objects[id]; ok {
		return obj, nil
	}
	h := gcscan.NewHull()
	err := h.SetPrecision(pr.opts.Precision)
	if err != nil {
		return nil, err
	}
	obj := &Object{ID: id, Name: cleanName(name), Hull: h}
	pr.objects[id] = obj
	pr.order = append(pr.order, obj)
	return obj, nil
}

func (pr *processor) startObject(id, name string) error {
	obj, err := pr.defineObject(id, name)
	if err != nil {
		return err
	}
	pr.parser.SetHull(obj.Hull)
	return nil
}

func (pr *processor) stopObject() {
	pr.parser.SetHull(nil)
}

func (pr *processor) emit(s string) error {
	_, err := pr.w.WriteString(s)
	return err
}

func (pr *processor) outputDefinitions() error {
	err := pr.emit(fmt.Sprintf(
		"\n\n; Pre-Processed for Cancel-Object support by gcscan v%s\n; %d known objects\n",
		Version, len(pr.order)))
	if err != nil {
		return err
	}
	for _, obj := range pr.order {
		s, err := obj.define(pr.opts.Hull)
		if err != nil {
			return err
		}
		err = pr.emit(s)
		if err != nil {
			return err
		}
	}
	return nil
}

func (pr *processor) outputStart(id string) error {
	err := pr.outputEnd()
	if err != nil {
		return err
	}
	obj, ok := pr.objects[id]
	if !ok {
		pr.logger.Warn("object not defined during scan", slog.String("id", id))
		return nil
	}
	pr.active = obj
	return pr.emit("EXCLUDE_OBJECT_START NAME=" + obj.Name + "\n")
}

func (pr *processor) outputEnd() error {
	if pr.active == nil {
		return nil
	}
	name := pr.active.Name
	pr.active = nil
	return pr.emit("EXCLUDE_OBJECT_END NAME=" + name + "\n")
}

func eachLine(ctx context.Context, r io.ReadSeeker, fn func(line string) error) error {
	_, err := r.Seek(0, io.SeekStart)
	if err != nil {
		return err
	}

	br := bufio.NewReader(r)
	for cnt := 0; ; cnt += 1 {
		if cnt%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if err := fn(line); err != nil {
				return err
			}
		}
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
	}
}

const (
	alreadyProcessed int32 = iota + 1
	firstSlicerMarker
)

func identify(ctx context.Context, r io.ReadSeeker) (*slicer, bool, error) {
	p := gcscan.NewParser()
	p.RegisterInterest("EXCLUDE_OBJECT_DEFINE", alreadyProcessed)
	p.RegisterInterest("DEFINE_OBJECT", alreadyProcessed)
	for sdx, s := range slicers {
		p.RegisterInterest(s.marker, firstSlicerMarker+safecast.MustConv[int32](sdx))
	}

	var found *slicer
	errProcessed := errors.New("already processed")
	err := eachLine(ctx, r, func(line string) error {
		code, ok := p.FeedLine(line)
		if !ok {
			return nil
		}
		if code == alreadyProcessed {
			return errProcessed
		}
		// The last marker seen wins.
		found = &slicers[code-firstSlicerMarker]
		return nil
	})
	if errors.Is(err, errProcessed) {
		return nil, true, nil
	} else if err != nil {
		return nil, false, err
	}
	return found, false, nil
}

func (pr *processor) scan(ctx context.Context, r io.ReadSeeker, d dialect) error {
	pr.clearInterests()
	d.startScan(pr)
	err := eachLine(ctx, r, func(line string) error {
		_, err := pr.feedLine(line)
		return err
	})
	pr.stopObject()
	if err != nil {
		return err
	}

	for _, obj := range pr.order {
		pr.logger.Debug("object scanned", slog.String("name", obj.Name),
			slog.Int("points", obj.Hull.Len()))
	}
	return nil
}

func (pr *processor) output(ctx context.Context, r io.ReadSeeker, w io.Writer, d dialect) error {
	pr.w = bufio.NewWriter(w)
	pr.clearInterests()
	d.startOutput(pr)

	err := d.header(pr)
	if err != nil {
		return err
	}
	err = eachLine(ctx, r, func(line string) error {
		ok, err := pr.feedLine(line)
		if ok || err != nil {
			return err
		}
		return pr.emit(line)
	})
	if err != nil {
		return err
	}
	err = pr.outputEnd()
	if err != nil {
		return err
	}
	return pr.w.Flush()
}

func (pr *processor) run(ctx context.Context, r io.ReadSeeker) (*Result, dialect, error) {
	s, processed, err := identify(ctx, r)
	if err != nil {
		return nil, nil, err
	}
	if processed {
		pr.logger.Info("gcode already supports cancellation")
		return &Result{AlreadyProcessed: true}, nil, nil
	}
	if s == nil {
		pr.logger.Warn("could not identify slicer")
		return nil, nil, ErrUnknownSlicer
	}
	pr.logger.Debug("identified slicer", slog.String("slicer", s.name))

	d := s.newDialect()
	err = pr.scan(ctx, r, d)
	if err != nil {
		return nil, nil, err
	}
	return &Result{Slicer: s.name, Objects: pr.order}, d, nil
}

// processTo makes one pass over r to identify the slicer, one to scan it and one
// to write it to the writer returned by create. create is only called once there
// is something to write; with skipProcessed, already processed G-code is not
// written at all.
func processTo(ctx context.Context, r io.ReadSeeker, opts Options, skipProcessed bool,
	create func() (io.Writer, error)) (*Result, error) {

	pr := newProcessor(ctx, opts)
	res, d, err := pr.run(ctx, r)
	if err != nil {
		return nil, err
	}
	if res.AlreadyProcessed && skipProcessed {
		return res, nil
	}

	w, err := create()
	if err != nil {
		return nil, err
	}
	if res.AlreadyProcessed {
		_, err = r.Seek(0, io.SeekStart)
		if err != nil {
			return nil, err
		}
		_, err = io.Copy(w, r)
		if err != nil {
			return nil, err
		}
		return res, nil
	}

	err = pr.output(ctx, r, w, d)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Scan identifies the slicer and collects the objects of the G-code read from r,
// without writing anything.
func Scan(ctx context.Context, r io.ReadSeeker, opts Options) (*Result, error) {
	res, _, err := newProcessor(ctx, opts).run(ctx, r)
	return res, err
}

// Process writes the G-code from r to w with object cancellation markers added.
// G-code that already has them is copied unchanged. ErrUnknownSlicer is
// returned, and nothing written, if the slicer can not be identified.
func Process(ctx context.Context, r io.ReadSeeker, w io.Writer, opts Options) (*Result, error) {
	return processTo(ctx, r, opts, false, func() (io.Writer, error) { return w, nil })
}
