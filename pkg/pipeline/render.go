package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/tlfs/pkg/errors"
	"github.com/matzehuels/tlfs/pkg/report"
	"github.com/matzehuels/tlfs/pkg/sink"
)

// Render writes rep in one format without touching the cache.
func Render(rep *report.Report, format string, opts Options) ([]byte, error) {
	opts.SetDefaults()
	data, err := sink.Render(format, rep, opts.SinkOptions()...)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("rendered", "format", format, "bytes", len(data))
	return data, nil
}

// OutputPath returns the file a format is written to: "<base>_TLF.<format>"
// in outDir, or next to input when outDir is empty.
func OutputPath(input, outDir, format string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	return filepath.Join(outDir, base+OutputSuffix+"."+format)
}

// WriteArtifacts writes every artifact of result to disk and returns the
// paths in format order.
func WriteArtifacts(result *Result, opts Options) ([]string, error) {
	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create output dir")
		}
	}

	formats := make([]string, 0, len(result.Artifacts))
	for f := range result.Artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := OutputPath(opts.Input, opts.OutputDir, f)
		if err := errors.ValidateOutputPath(path); err != nil {
			return paths, err
		}
		if err := os.WriteFile(path, result.Artifacts[f], 0o644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
