package model

// Model source resolution.
// Uses hashicorp/go-getter so a build can point at a model published
// elsewhere:
//   - Local paths
//   - HTTP(S) URLs
//   - S3/GCS buckets and git repositories (git::https://host/repo//model.yaml)

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter"

	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/logger"
)

// Source is a model location resolved to a local file.
type Source struct {
	// Path is the local file to decode
	Path string
	// Original is the input as given
	Original string
	// Fetched is true when Path is a temporary copy of a remote source
	Fetched bool

	cleanup func()
}

// Cleanup removes any temporary files created for this source.
// Safe to call multiple times.
func (s *Source) Cleanup() {
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
}

// Resolve turns a model location into a local file, fetching it with
// go-getter when it is remote. The returned Source must be cleaned up.
func Resolve(ctx context.Context, input string) (*Source, error) {
	if input == "" {
		return nil, errors.New("no model source given")
	}

	pwd, err := os.Getwd()
	if err != nil {
		pwd = "."
	}

	detected, err := getter.Detect(input, pwd, getter.Detectors)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to detect model source %s", input)
	}

	parsed, err := url.Parse(detected)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse detected source %s", detected)
	}

	if parsed.Scheme == "file" || parsed.Scheme == "" {
		local := input
		if parsed.Scheme == "file" {
			local = parsed.Path
		}
		if !filepath.IsAbs(local) {
			local = filepath.Join(pwd, local)
		}
		return &Source{Path: local, Original: input, cleanup: func() {}}, nil
	}

	return fetch(ctx, input, detected)
}

func fetch(ctx context.Context, input, detected string) (*Source, error) {
	tempDir, err := os.MkdirTemp("", "bindgen-model-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}

	dst := filepath.Join(tempDir, "model"+modelExt(detected))
	client := &getter.Client{
		Ctx:     ctx,
		Src:     detected,
		Dst:     dst,
		Mode:    getter.ClientModeFile,
		Getters: getter.Getters,
	}

	logger.Infow("Fetching model",
		logger.FieldSource, input,
		"detected", detected,
		logger.FieldPath, dst)

	if err := client.Get(); err != nil {
		os.RemoveAll(tempDir)
		return nil, errors.Wrapf(err, "failed to fetch model %s", input)
	}

	return &Source{
		Path:     dst,
		Original: input,
		Fetched:  true,
		cleanup: func() {
			logger.Debugw("Removing fetched model", logger.FieldPath, tempDir)
			os.RemoveAll(tempDir)
		},
	}, nil
}

// modelExt keeps the remote file's extension so error messages name a
// recognizable file; the decoder itself does not depend on it.
func modelExt(detected string) string {
	u, err := url.Parse(detected)
	if err != nil {
		return ".yaml"
	}
	p := u.Path
	if i := strings.Index(p, "//"); i >= 0 {
		p = p[i+2:]
	}
	switch ext := filepath.Ext(p); ext {
	case ".json", ".yaml", ".yml":
		return ext
	default:
		return ".yaml"
	}
}

// Load resolves and decodes a model in one step, removing any fetched copy
// before returning.
func Load(ctx context.Context, input string) (*Model, error) {
	src, err := Resolve(ctx, input)
	if err != nil {
		return nil, err
	}
	defer src.Cleanup()

	return DecodeFile(src.Path)
}
