// Package validate checks generated batch artifacts for the mandatory
// skeleton markers. It catches truncated or hand-damaged output before the
// file reaches the scheduler.
package validate

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// requiredMarkers are the patterns every generated batch job must contain,
// paired with the message reported when one is missing.
var requiredMarkers = []struct {
	pattern string
	message string
}{
	{"@echo off", "missing @echo off directive"},
	{"set PHASE=00", "missing initial phase 00 block"},
	{"set PHASE=99", "missing final phase 99 block"},
	{"skl_debutjob.pl", "missing skl_debutjob.pl call"},
	{"skl_finjob.pl", "missing skl_finjob.pl call"},
	{":ERREUR", "missing :ERREUR label"},
	{":FIN", "missing :FIN label"},
}

var (
	stepLabelPattern = regexp.MustCompile(`(?m)^:STEP(\d+)`)
	gotoStepPattern  = regexp.MustCompile(`goto STEP(\d+)`)
)

// Report is the outcome of validating one artifact.
type Report struct {
	Path     string
	Valid    bool
	Errors   []string
	Warnings []string
	Lines    int
	Phases   int
}

// Content validates artifact content already in memory.
func Content(path string, content []byte) *Report {
	text := string(content)
	report := &Report{
		Path:  path,
		Valid: true,
		Lines: strings.Count(text, "\n") + 1,
	}

	for _, marker := range requiredMarkers {
		if !strings.Contains(text, marker.pattern) {
			report.Errors = append(report.Errors, marker.message)
			report.Valid = false
		}
	}

	labels := make(map[string]struct{})
	for _, match := range stepLabelPattern.FindAllStringSubmatch(text, -1) {
		labels[match[1]] = struct{}{}
	}
	report.Phases = len(labels)

	for _, match := range gotoStepPattern.FindAllStringSubmatch(text, -1) {
		if _, ok := labels[match[1]]; !ok {
			report.Warnings = append(
				report.Warnings,
				fmt.Sprintf("goto STEP%s targets a label that does not exist", match[1]),
			)
		}
	}

	return report
}

// File validates an artifact on disk.
func File(path string) (*Report, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", path, err)
	}
	return Content(path, content), nil
}
