package storage

import (
	"bufio"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// readRecords streams every record line of path into decode. A missing file
// is an empty store. The header line is skipped; blank or undecodable lines
// are logged and skipped so one bad row cannot poison the whole load.
func readRecords(path, header string, decode func(line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 && line == header {
			continue
		}
		if line == "" {
			log.WithFields(log.Fields{"file": path, "line": lineNo}).Warn("skipping blank line")
			continue
		}
		if err := decode(line); err != nil {
			log.WithFields(log.Fields{"file": path, "line": lineNo}).
				WithError(err).Warn("skipping undecodable record")
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	return nil
}

// replaceFile rewrites path atomically from the reader's perspective: the
// new contents go to a uniquely named temporary file that is renamed over
// the original only after a successful flush.
func replaceFile(path, header string, lines []string) error {
	tmp := fmt.Sprintf("%s.tmp-%s", path, uuid.NewString())
	f, err := os.Create(tmp)
	if err != nil {
		return errors.Wrapf(err, "create %s", tmp)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, header)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrapf(err, "write %s", tmp)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "close %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "replace %s", path)
	}
	return nil
}

// appendRecord adds a single encoded line to path, writing the header first
// when the file does not exist yet.
func appendRecord(path, header, line string) error {
	_, statErr := os.Stat(path)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}

	if os.IsNotExist(statErr) {
		if _, err := fmt.Fprintln(f, header); err != nil {
			f.Close()
			return errors.Wrapf(err, "write header to %s", path)
		}
	}
	if _, err := fmt.Fprintln(f, line); err != nil {
		f.Close()
		return errors.Wrapf(err, "append to %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "close %s", path)
	}
	return nil
}
