/*
NAME
  watch.go

DESCRIPTION
  watch.go implements Source over a directory that receives one raw
  RGB-888 frame file at a time, for pipelines where an external process
  drops files for this encoder to consume as they become ready.

LICENSE
  This software is provided under the MIT license.
*/

package framesource

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fsnotify/fsnotify"

	"github.com/ausocean/utils/logging"
)

// WatchDir is a Source that watches a directory for new frame files,
// each exactly width*height*3 bytes of raw RGB-888 data, and yields them
// in creation order. Files already present when NewWatchDir is called are
// drained first, sorted by name.
type WatchDir struct {
	watcher       *fsnotify.Watcher
	dir           string
	width, height int
	log           logging.Logger

	pending []string // queued file paths, oldest first
}

// NewWatchDir begins watching dir for new width x height RGB-888 frame
// files. Files are consumed and removed in the order they are observed.
func NewWatchDir(dir string, width, height int, log logging.Logger) (*WatchDir, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating directory watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var existing []string
	for _, e := range entries {
		if !e.IsDir() {
			existing = append(existing, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(existing)

	return &WatchDir{
		watcher: w,
		dir:     dir,
		width:   width,
		height:  height,
		log:     log,
		pending: existing,
	}, nil
}

// Dims implements Source.
func (s *WatchDir) Dims() (int, int) { return s.width, s.height }

// Next implements Source. It blocks until a frame file is available, reads
// and deletes it, and returns its contents. Next never returns io.EOF: the
// directory is watched indefinitely, and the caller is responsible for
// stopping iteration (e.g. via a context or a sentinel file of its own
// choosing).
func (s *WatchDir) Next() ([]byte, error) {
	for {
		if len(s.pending) > 0 {
			path := s.pending[0]
			s.pending = s.pending[1:]
			data, err := s.readFrameFile(path)
			if err != nil {
				s.log.Error("skipping unreadable frame file", "path", path, "error", err)
				continue
			}
			return data, nil
		}

		select {
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return nil, fmt.Errorf("watcher closed")
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			info, err := os.Stat(ev.Name)
			if err != nil || info.IsDir() {
				continue
			}
			s.pending = append(s.pending, ev.Name)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return nil, fmt.Errorf("watcher closed")
			}
			s.log.Error("directory watch error", "error", err)
		}
	}
}

func (s *WatchDir) readFrameFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	want := s.width * s.height * 3
	if len(data) != want {
		return nil, fmt.Errorf("%s: got %d bytes, want %d", path, len(data), want)
	}
	if err := os.Remove(path); err != nil {
		s.log.Warning("could not remove consumed frame file", "path", path, "error", err)
	}
	s.log.Debug("read watched frame", "path", path)
	return data, nil
}

// Close implements Source.
func (s *WatchDir) Close() error {
	return s.watcher.Close()
}
