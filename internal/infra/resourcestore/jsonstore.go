package resourcestore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/fhir"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/ports"
)

const indexFile = "index.jsonl"

// JSONStore writes one indented JSON file per resource into the output
// directory, named <Kind>_<id>.<extension>.
type JSONStore struct {
	dir             string
	extension       string
	preserveUnicode bool
	writeIndex      bool
	now             func() time.Time
}

type Option func(*JSONStore)

// WithIndex enables the <output>/index.jsonl manifest.
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, out domain.OutputConfig, opts ...Option) *JSONStore {
	dir := out.Directory
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	ext := strings.TrimLeft(out.Extension, ".")
	if ext == "" {
		ext = domain.DefaultConfig().Output.Extension
	}

	s := &JSONStore{
		dir:             dir,
		extension:       ext,
		preserveUnicode: out.PreserveUnicode,
		writeIndex:      true,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ResourceStore = (*JSONStore)(nil)

// Dir is the output directory.
func (s *JSONStore) Dir() string { return s.dir }

// FileName is the file name a resource is written to.
func (s *JSONStore) FileName(res fhir.Resource) string {
	return fmt.Sprintf("%s_%s.%s", res.Kind(), res.ResourceID(), s.extension)
}

func (s *JSONStore) SaveResource(runID string, res fhir.Resource) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "resourcestore.mkdir",
			Kind: domain.KindExecution,
			Path: s.dir,
			Err:  err,
		}
	}

	filename := s.FileName(res)
	path := filepath.Join(s.dir, filename)

	b, err := s.encode(res)
	if err != nil {
		return "", &domain.OpError{
			Op:   "resourcestore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if err := WriteAtomic(path, b, 0o644); err != nil {
		return "", err
	}

	if s.writeIndex {
		_ = s.appendIndex(runID, filename, res)
	}
	return path, nil
}

func (s *JSONStore) encode(res fhir.Resource) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return nil, err
	}
	if s.preserveUnicode {
		return buf.Bytes(), nil
	}
	return escapeNonASCII(buf.Bytes()), nil
}

// WriteAtomic writes b to a temporary file next to path and renames it.
func WriteAtomic(path string, b []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, perm); err != nil {
		return &domain.OpError{
			Op:   "resourcestore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "resourcestore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return nil
}

func (s *JSONStore) appendIndex(runID, filename string, res fhir.Resource) error {
	type idx struct {
		RunID     string    `json:"run_id"`
		Kind      string    `json:"kind"`
		ID        string    `json:"id"`
		File      string    `json:"file"`
		URL       string    `json:"url"`
		Version   string    `json:"version"`
		WrittenAt time.Time `json:"written_at"`
	}
	line, err := json.Marshal(idx{
		RunID:     runID,
		Kind:      string(res.Kind()),
		ID:        res.ResourceID(),
		File:      filename,
		URL:       res.CanonicalURL(),
		Version:   res.ResourceVersion(),
		WrittenAt: s.now().UTC(),
	})
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(s.dir, indexFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// escapeNonASCII rewrites every non-ASCII rune as a \uXXXX escape. Only valid
// for encoder output, where such runes can only occur inside strings.
func escapeNonASCII(b []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		if r < utf8.RuneSelf {
			out.WriteByte(byte(r))
			continue
		}
		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&out, `\u%04x\u%04x`, hi, lo)
			continue
		}
		fmt.Fprintf(&out, `\u%04x`, r)
	}
	return out.Bytes()
}
