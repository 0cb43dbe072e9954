package liquidsim

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FilesystemResolver resolves snippet `name` to the file
// `<Root>/<name><Extension>`, the layout of a theme's snippets directory.
type FilesystemResolver struct {
	root      string
	extension string
	logger    *zap.Logger
}

// FilesystemResolverConfig configures a FilesystemResolver.
type FilesystemResolverConfig struct {
	// Root is the snippets directory. It must exist.
	Root string

	// Extension is appended to snippet names.
	// Default: ".liquid"
	Extension string

	// Logger receives watcher events.
	// Default: nil (no logging)
	Logger *zap.Logger
}

// NewFilesystemResolver creates a resolver over an existing directory.
func NewFilesystemResolver(config FilesystemResolverConfig) (*FilesystemResolver, error) {
	if config.Root == StringValueEmpty {
		return nil, NewResolverError(ErrMsgSnippetsDirMissing, StringValueEmpty, nil)
	}
	info, err := os.Stat(config.Root)
	if err != nil {
		return nil, NewResolverError(ErrMsgSnippetsDirMissing, config.Root, err)
	}
	if !info.IsDir() {
		return nil, NewResolverError(ErrMsgSnippetsDirMissing, config.Root, nil)
	}

	if config.Extension == StringValueEmpty {
		config.Extension = DefaultSnippetExtension
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FilesystemResolver{
		root:      config.Root,
		extension: config.Extension,
		logger:    logger,
	}, nil
}

// Root returns the snippets directory.
func (r *FilesystemResolver) Root() string {
	return r.root
}

// ResolveSnippet reads the snippet file. A missing file is reported as not
// found; names that would escape the directory are rejected.
func (r *FilesystemResolver) ResolveSnippet(ctx context.Context, name string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return StringValueEmpty, false, err
	}
	if err := validateSnippetName(name); err != nil {
		return StringValueEmpty, false, err
	}

	data, err := os.ReadFile(r.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return StringValueEmpty, false, nil
		}
		return StringValueEmpty, false, NewResolverError(ErrMsgResolverFailed, name, err)
	}
	return string(data), true, nil
}

// SnippetName maps a file path back to the snippet name it serves.
func (r *FilesystemResolver) SnippetName(path string) (string, bool) {
	base := filepath.Base(path)
	if filepath.Dir(filepath.Clean(path)) != filepath.Clean(r.root) {
		return StringValueEmpty, false
	}
	if !strings.HasSuffix(base, r.extension) {
		return StringValueEmpty, false
	}
	name := strings.TrimSuffix(base, r.extension)
	if name == StringValueEmpty {
		return StringValueEmpty, false
	}
	return name, true
}

// Watch reports changed snippets to onChange until ctx is cancelled.
// Writes, creates, removes and renames all count as changes. The typical
// onChange is CachingResolver.Invalidate.
func (r *FilesystemResolver) Watch(ctx context.Context, onChange func(name string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return NewResolverError(ErrMsgWatcherFailed, StringValueEmpty, err)
	}
	if err := watcher.Add(r.root); err != nil {
		_ = watcher.Close()
		return NewResolverError(ErrMsgWatcherFailed, r.root, err)
	}

	r.logger.Debug(LogMsgWatcherStarted, zap.String(LogFieldPath, r.root))
	go r.eventLoop(ctx, watcher, onChange)
	return nil
}

func (r *FilesystemResolver) eventLoop(ctx context.Context, watcher *fsnotify.Watcher, onChange func(name string)) {
	defer func() {
		_ = watcher.Close()
		r.logger.Debug(LogMsgWatcherStopped, zap.String(LogFieldPath, r.root))
	}()

	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&relevant == 0 {
				continue
			}
			name, ok := r.SnippetName(event.Name)
			if !ok {
				continue
			}
			r.logger.Debug(LogMsgWatcherEvent,
				zap.String(LogFieldSnippet, name),
				zap.String(LogFieldOp, event.Op.String()))
			onChange(name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			r.logger.Warn(LogMsgWatcherError, zap.Error(err))
		}
	}
}

func (r *FilesystemResolver) path(name string) string {
	return filepath.Join(r.root, name+r.extension)
}

// validateSnippetName rejects names that are empty, traverse directories or
// contain characters that are invalid in file names.
func validateSnippetName(name string) error {
	if name == StringValueEmpty {
		return NewResolverError(ErrMsgInvalidSnippetName, name, nil)
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, "/\\:*?\"<>|") {
		return NewResolverError(ErrMsgInvalidSnippetName, name, nil)
	}
	return nil
}
