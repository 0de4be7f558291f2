// Package media measures the total playable duration of a corpus' sound
// files.
package media

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"
)

// mediaExtensions lists the sound formats counted towards the total.
var mediaExtensions = map[string]bool{
	".wav": true,
}

// DirDuration walks dir recursively and sums the duration in seconds of
// every readable sound file. Unreadable entries, corrupt files included,
// contribute zero and are logged, never aborting the scan; only a missing
// or unreadable root directory is an error.
func DirDuration(dir string, log *logrus.Logger) (float64, error) {
	total := 0.0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				// The root itself is missing or unreadable.
				return err
			}
			log.WithField("path", path).WithError(err).Warn("unreadable entry skipped")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !mediaExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		seconds, err := FileDuration(path)
		if err != nil {
			log.WithField("file", path).WithError(err).Warn("unreadable sound file skipped")
			return nil
		}
		total += seconds
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// FileDuration returns the playable duration of one wav file in seconds.
func FileDuration(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	dur, err := wav.NewDecoder(f).Duration()
	if err != nil {
		return 0, err
	}
	return dur.Seconds(), nil
}
