package bindgen

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/logger"
)

// StdoutPath selects standard output as the write destination.
const StdoutPath = "-"

// FilePlaceholder marks where a format command takes the file to format.
// Without it the path is appended as the last argument.
const FilePlaceholder = "{file}"

// OutputPermissions is the mode of written modules.
const OutputPermissions = 0644

// Writer writes generated modules.
type Writer struct {
	// FormatCommand runs on the finished module before it is published,
	// e.g. "black -q {file}". Empty disables formatting.
	FormatCommand string
	// Ext names scratch files formatted outside the destination, e.g. ".py"
	Ext string
	// Stdout receives the module when the path is StdoutPath
	Stdout io.Writer
}

// Write publishes content at path atomically: readers see either the old
// file or the complete new one, never a partial write. When formatting or
// any step fails the destination is left untouched.
func (w *Writer) Write(ctx context.Context, path string, content []byte) error {
	if path == StdoutPath {
		if w.FormatCommand != "" {
			formatted, err := w.formatBytes(ctx, content)
			if err != nil {
				return err
			}
			content = formatted
		}
		out := w.Stdout
		if out == nil {
			out = os.Stdout
		}
		_, err := out.Write(content)
		return errors.Wrap(err, "failed to write module to stdout")
	}

	dir := filepath.Dir(path)
	// The temp name keeps the module's extension for format commands that
	// select by file type
	tmp, err := os.CreateTemp(dir, ".bindgen-*-"+filepath.Base(path))
	if err != nil {
		return errors.Wrapf(err, "failed to create temp file in %s", dir)
	}
	tmpPath := tmp.Name()
	published := false
	defer func() {
		if !published {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to write %s", tmpPath)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to sync %s", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", tmpPath)
	}

	if w.FormatCommand != "" {
		if err := w.format(ctx, tmpPath); err != nil {
			return err
		}
	}

	if err := os.Chmod(tmpPath, OutputPermissions); err != nil {
		return errors.Wrapf(err, "failed to set permissions on %s", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Wrapf(err, "failed to move module into place at %s", path)
	}
	published = true

	logger.Debugw("Wrote module", logger.FieldPath, path, logger.FieldSize, len(content))
	return nil
}

// FormatCommandArgs splits the format command with shell quoting rules and
// substitutes path for the placeholder.
func FormatCommandArgs(command, path string) ([]string, error) {
	args, err := shellquote.Split(command)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid format command %q", command)
	}
	if len(args) == 0 {
		return nil, errors.Newf("invalid format command %q: no program", command)
	}

	substituted := false
	for i, arg := range args {
		if strings.Contains(arg, FilePlaceholder) {
			args[i] = strings.ReplaceAll(arg, FilePlaceholder, path)
			substituted = true
		}
	}
	if !substituted {
		args = append(args, path)
	}
	return args, nil
}

func (w *Writer) format(ctx context.Context, path string) error {
	args, err := FormatCommandArgs(w.FormatCommand, path)
	if err != nil {
		return err
	}

	logger.Debugw("Formatting module", "command", args)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errors.WithDetailf(
			errors.Wrapf(err, "format command %q failed", w.FormatCommand),
			"%s", strings.TrimSpace(string(output)))
	}
	return nil
}

// formatBytes runs the format command on a scratch copy of content.
func (w *Writer) formatBytes(ctx context.Context, content []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "bindgen-format-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "module"+w.Ext)
	if err := os.WriteFile(path, content, OutputPermissions); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", path)
	}
	if err := w.format(ctx, path); err != nil {
		return nil, err
	}
	formatted, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read formatted module %s", path)
	}
	return formatted, nil
}

// Render returns the module exactly as Write would publish it, after the
// format command. Used by freshness checks.
func (w *Writer) Render(ctx context.Context, content []byte) ([]byte, error) {
	if w.FormatCommand == "" {
		return content, nil
	}
	return w.formatBytes(ctx, content)
}
