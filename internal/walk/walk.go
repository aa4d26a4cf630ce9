// Package walk lists the files to scan below an input path.
package walk

import (
	"context"
	"os"

	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Walker enumerates files in a stable order.
type Walker struct {
	// Log receives directories that could not be read. They are
	// skipped.
	Log logrus.FieldLogger
}

// Files calls fn with root if it is a file, otherwise with every file
// below it. Entries are visited in lexical order and symbolic links to
// directories are not followed. An error from fn stops the walk.
func (w *Walker) Files(root string, fn func(path string) error) error {
	fi, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fn(root)
	}
	// fnErr holds the error returned by fn; it halts the walk instead of
	// being treated as an unreadable node.
	var fnErr error
	err = godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			isDir, err := de.IsDirOrSymlinkToDir()
			if err == nil && isDir {
				return nil
			}
			// Dangling links are passed on for the scanner to report.
			fnErr = fn(path)
			return fnErr
		},
		ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
			if fnErr != nil {
				return godirwalk.Halt
			}
			if w.Log != nil {
				w.Log.WithError(err).WithField("path", path).Warn("skipping unreadable directory")
			}
			return godirwalk.SkipNode
		},
		Unsorted: false,
	})
	if fnErr != nil {
		return fnErr
	}
	return err
}

// Feed sends the files below root to out and closes it. It stops early
// when ctx is done.
func (w *Walker) Feed(ctx context.Context, root string, out chan<- string) error {
	defer close(out)
	err := w.Files(root, func(path string) error {
		select {
		case out <- path:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	return errors.Wrapf(err, "walk %s", root)
}
