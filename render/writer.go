package render

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/modelviz/modelviz/model"
)

var logger = zap.NewNop()

// SetLogger installs the logger used for write notices.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// Path returns the deterministic output path for a plot:
// baseDir/project/category_tag.png. Category and tag are used verbatim;
// callers supply filesystem-safe strings.
func Path(cfg *model.Config, category, tag string) string {
	return filepath.Join(cfg.BaseDir, cfg.Project, category+"_"+tag+".png")
}

// Write persists a figure to the conventional path, overwriting silently.
// The backend tag is validated before any file I/O: a declarative figure
// fails with ErrUnsupportedBackend, anything outside the recognized set
// with ErrUnrecognizedBackend. I/O failures propagate wrapped; there are no
// retries and no partial-write cleanup.
func Write(cfg *model.Config, fig Figure, category, tag string) error {
	if fig == nil {
		return fmt.Errorf("write plot %s_%s: nil figure", category, tag)
	}

	switch b := fig.Backend(); b {
	case General, Stat, Interactive:
	case Declarative:
		return fmt.Errorf("%w: %s", ErrUnsupportedBackend, b)
	default:
		return fmt.Errorf("%w: %s", ErrUnrecognizedBackend, b)
	}

	path := Path(cfg, category, tag)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write plot %s: %w", path, err)
	}

	logger.Info("writing plot",
		zap.String("path", path),
		zap.String("backend", fig.Backend().String()))

	if err := fig.Save(path); err != nil {
		return fmt.Errorf("write plot %s: %w", path, err)
	}
	return nil
}
