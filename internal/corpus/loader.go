package corpus

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/veripack/internal/errors"
	"github.com/ppiankov/veripack/internal/model"
	"github.com/ppiankov/veripack/internal/worker"
)

// linePattern matches corpus lines of the form "L001: content"
var linePattern = regexp.MustCompile(`^L(\d+):\s*(.+)$`)

// LoadDir loads every .txt, .html, and .htm document from dir. Files are
// read concurrently by a worker pool and the result is sorted by document
// id, so the returned corpus is identical across runs. The document id is
// the file name without extension.
func LoadDir(dir string, workers int) (*Corpus, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".txt", ".html", ".htm":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	if len(paths) == 0 {
		return nil, errors.NewConfigurationError("no documents in " + dir)
	}

	jobs := make([]worker.Job, 0, len(paths))
	for _, path := range paths {
		jobs = append(jobs, &loadJob{path: path})
	}

	// Process drains results while submitting; Submit/Wait would wedge
	// once the directory outgrows the pool's channel buffers.
	pool := worker.NewPool(workers)
	pool.Start()

	var docs []model.Document
	for _, result := range pool.Process(jobs) {
		lr := result.(*loadResult)
		if lr.err != nil {
			return nil, fmt.Errorf("load %s: %w", lr.path, lr.err)
		}
		if len(lr.doc.Lines) > 0 {
			docs = append(docs, lr.doc)
		}
	}

	if len(docs) == 0 {
		return nil, errors.NewConfigurationError("no parseable document lines in " + dir)
	}

	return New(docs), nil
}

// loadJob reads and parses one corpus file
type loadJob struct {
	path string
}

type loadResult struct {
	path string
	doc  model.Document
	err  error
}

func (r *loadResult) GetError() error { return r.err }

func (j *loadJob) Execute(ctx context.Context) worker.Result {
	res := &loadResult{path: j.path}
	if err := ctx.Err(); err != nil {
		res.err = err
		return res
	}

	f, err := os.Open(j.path)
	if err != nil {
		res.err = err
		return res
	}
	defer f.Close()

	id := strings.TrimSuffix(filepath.Base(j.path), filepath.Ext(j.path))
	switch strings.ToLower(filepath.Ext(j.path)) {
	case ".html", ".htm":
		res.doc, res.err = ParseHTML(id, f)
	default:
		res.doc, res.err = ParseText(id, f)
	}
	return res
}

// ParseText parses a plain-text document with L-prefixed line numbers.
// Lines that do not match the "L001: content" convention are skipped.
func ParseText(id string, r io.Reader) (model.Document, error) {
	doc := model.Document{ID: id}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		m := linePattern.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		doc.Lines = append(doc.Lines, model.Line{Number: num, Text: m[2]})
	}
	if err := scanner.Err(); err != nil {
		return model.Document{}, fmt.Errorf("scan document %s: %w", id, err)
	}

	return doc, nil
}
