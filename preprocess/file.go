package preprocess

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leftmike/gcscan/internal/ctxlog"
)

// OutputPath returns the file that processing path writes to: the stem of path
// with suffix added before the extension. An empty suffix means path itself.
func OutputPath(path, suffix string) string {
	if suffix == "" {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}

// ProcessFile processes the G-code in path and writes it to OutputPath(path, suffix).
// The output is written to a temporary file in the same directory and renamed into
// place, so path is only replaced when processing succeeds.
func ProcessFile(ctx context.Context, path, suffix string, opts Options) (*Result, error) {
	logger := ctxlog.FromContext(ctx).With(slog.String("file", path))
	ctx = ctxlog.WithLogger(ctx, logger)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	outPath := OutputPath(path, suffix)
	var tmp *os.File
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	// Already processed files rewritten in place are left alone.
	res, err := processTo(ctx, f, opts, outPath == path, func() (io.Writer, error) {
		var err error
		tmp, err = os.CreateTemp(filepath.Dir(outPath), "."+filepath.Base(outPath)+".*")
		return tmp, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if tmp == nil {
		return res, nil
	}

	if st, err := f.Stat(); err == nil {
		tmp.Chmod(st.Mode().Perm())
	}
	err = tmp.Close()
	if err != nil {
		return nil, err
	}
	err = os.Rename(tmp.Name(), outPath)
	if err != nil {
		return nil, err
	}
	tmp = nil

	logger.Info("processed", slog.String("slicer", res.Slicer),
		slog.Int("objects", len(res.Objects)), slog.String("output", outPath))
	return res, nil
}
