package project

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// RunLogFile is the append-only run history, one line per submission:
// "<RFC3339 timestamp> | <url>".
const RunLogFile = ".run.log"

// RunStatus is the derived state of the most recent run. Only the
// latest record can be pending; older ones are complete by definition.
type RunStatus string

const (
	RunStatusPending  RunStatus = "pending"
	RunStatusComplete RunStatus = "complete"
)

// RunRecord is one appended line of the run log. Records are never
// mutated after the fact.
type RunRecord struct {
	Timestamp time.Time
	URL       string
}

// AppendRun appends a record to the run log in dir.
func AppendRun(dir string, rec RunRecord) error {
	path := filepath.Join(dir, RunLogFile)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s | %s\n", rec.Timestamp.UTC().Format(time.RFC3339), rec.URL)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	return nil
}

// ListRuns reads the run log, oldest first. A missing log means no
// runs yet, not an error. Unparseable lines are skipped.
func ListRuns(dir string) ([]RunRecord, error) {
	path := filepath.Join(dir, RunLogFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []RunRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		ts, url, ok := strings.Cut(scanner.Text(), " | ")
		if !ok {
			continue
		}
		when, err := time.Parse(time.RFC3339, strings.TrimSpace(ts))
		if err != nil {
			continue
		}
		records = append(records, RunRecord{Timestamp: when, URL: strings.TrimSpace(url)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}

// LatestRun returns the most recent record and its derived status: the
// run is complete once any file in outputDir was modified at or after
// the run's timestamp. ok is false when the log is empty.
func LatestRun(dir, outputDir string) (rec RunRecord, status RunStatus, ok bool, err error) {
	records, err := ListRuns(dir)
	if err != nil || len(records) == 0 {
		return RunRecord{}, "", false, err
	}

	rec = records[len(records)-1]
	status = RunStatusPending
	if outputModifiedSince(outputDir, rec.Timestamp) {
		status = RunStatusComplete
	}
	return rec, status, true, nil
}

func outputModifiedSince(outputDir string, since time.Time) bool {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(since) {
			return true
		}
	}
	return false
}
