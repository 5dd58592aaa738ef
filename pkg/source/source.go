package source

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/tlfs/pkg/errors"
	"github.com/matzehuels/tlfs/pkg/report"
)

const defaultSection = report.DefaultSectionTitle

// Format is the encoding of a structure file.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatYAML Format = "yaml"
)

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"unsupported structure file %q (expected .xlsx, .yaml or .yml)", filepath.Base(path))
	}
}

// Parse decodes structure file content of the given format.
func Parse(data []byte, format Format) (*Structure, error) {
	switch format {
	case FormatXLSX:
		return ReadWorkbook(bytes.NewReader(data))
	case FormatYAML:
		return ReadYAML(bytes.NewReader(data))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported structure format %q", format)
	}
}

// ReadFile reads and decodes a structure file.
func ReadFile(path string) (*Structure, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "structure file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return Parse(data, format)
}

// Load reads a structure file and builds its document.
func Load(path string) (*report.Document, error) {
	s, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return s.Document()
}
