package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sourcegraph/go-diff/diff"
	m "gooze.dev/pkg/faultline/internal/model"
	"gooze.dev/pkg/faultline/pkg"
	"gopkg.in/yaml.v3"
)

// Output layout inside the output directory.
const (
	ReportJSON     = "report.json"
	ReportYAML     = "report.yaml"
	MutationsFile  = "mutations.txt"
	TrialsFile     = "trials.gob"
	SolutionsDir   = "solutions"
	SolutionPatch  = "patch.diff"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	reportFileMode = 0o600
)

// ErrUnknownFormat is returned for report formats other than json and yaml.
var ErrUnknownFormat = errors.New("unknown report format")

// ReportStore persists the artifacts of a localization run.
type ReportStore interface {
	SaveReport(ctx context.Context, dir m.Path, report m.Report, format string) (m.Path, error)
	LoadReport(ctx context.Context, path m.Path) (m.Report, error)
	SaveMutationCount(ctx context.Context, dir m.Path, count int) error
	SaveSolution(ctx context.Context, dir m.Path, solution m.Solution) (m.Path, error)
	ClearSolutions(ctx context.Context, dir m.Path) error
	SolutionStats(ctx context.Context, dir m.Path) ([]m.SolutionStat, error)
	OpenJournal(ctx context.Context, dir m.Path) (pkg.FileSpill[m.Trial], error)
	LoadTrials(ctx context.Context, dir m.Path) ([]m.Trial, error)
}

// LocalReportStore writes reports to the local filesystem.
type LocalReportStore struct {
	fs SourceFSAdapter
}

// NewLocalReportStore creates a report store writing through fs.
func NewLocalReportStore(fs SourceFSAdapter) *LocalReportStore {
	return &LocalReportStore{fs: fs}
}

// SaveReport writes the fault report as report.json or report.yaml.
func (s *LocalReportStore) SaveReport(ctx context.Context, dir m.Path, report m.Report, format string) (m.Path, error) {
	var (
		data []byte
		name string
		err  error
	)

	switch strings.ToLower(format) {
	case "", FormatJSON:
		name = ReportJSON
		data, err = json.MarshalIndent(report, "", "  ")
	case FormatYAML:
		name = ReportYAML
		data, err = yaml.Marshal(report)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	if err != nil {
		slog.Error("Failed to encode report", "format", format, "error", err)
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	if err := s.fs.MkdirAll(ctx, dir); err != nil {
		slog.Error("Failed to create output dir", "dir", dir, "error", err)
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	path := s.fs.JoinPath(ctx, string(dir), name)
	if err := s.fs.WriteFile(ctx, path, data, reportFileMode); err != nil {
		slog.Error("Failed to write report", "path", path, "error", err)
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, nil
}

// LoadReport reads a report written by SaveReport. path may name the report
// file or the output directory holding it.
func (s *LocalReportStore) LoadReport(ctx context.Context, path m.Path) (m.Report, error) {
	if info, err := s.fs.FileInfo(ctx, path); err == nil && info.IsDir() {
		resolved, err := s.locateReport(ctx, path)
		if err != nil {
			return m.Report{}, err
		}

		path = resolved
	}

	data, err := s.fs.ReadFile(ctx, path)
	if err != nil {
		slog.Error("Failed to read report", "path", path, "error", err)
		return m.Report{}, fmt.Errorf("failed to read report: %w", err)
	}

	var report m.Report

	switch strings.ToLower(filepath.Ext(string(path))) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &report)
	default:
		err = json.Unmarshal(data, &report)
	}

	if err != nil {
		slog.Error("Failed to decode report", "path", path, "error", err)
		return m.Report{}, fmt.Errorf("failed to decode report: %w", err)
	}

	return report, nil
}

func (s *LocalReportStore) locateReport(ctx context.Context, dir m.Path) (m.Path, error) {
	for _, name := range []string{ReportJSON, ReportYAML} {
		candidate := s.fs.JoinPath(ctx, string(dir), name)
		if _, err := s.fs.FileInfo(ctx, candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no report in %s", dir)
}

// SaveMutationCount writes the number of applied mutation batches.
func (s *LocalReportStore) SaveMutationCount(ctx context.Context, dir m.Path, count int) error {
	path := s.fs.JoinPath(ctx, string(dir), MutationsFile)

	if err := s.fs.WriteFile(ctx, path, []byte(strconv.Itoa(count)+"\n"), reportFileMode); err != nil {
		slog.Error("Failed to write mutation count", "path", path, "error", err)
		return fmt.Errorf("failed to write mutation count: %w", err)
	}

	return nil
}

// SaveSolution copies the mutated files of a solution to
// solutions/<index>/ and writes their unified diff next to them.
func (s *LocalReportStore) SaveSolution(ctx context.Context, dir m.Path, solution m.Solution) (m.Path, error) {
	target := s.fs.JoinPath(ctx, string(dir), SolutionsDir, strconv.Itoa(solution.Index))

	var patch strings.Builder

	for _, file := range solution.Files {
		path := s.fs.JoinPath(ctx, string(target), string(file.Path))

		if err := s.fs.MkdirAll(ctx, m.Path(filepath.Dir(string(path)))); err != nil {
			slog.Error("Failed to create solution dir", "path", path, "error", err)
			return "", fmt.Errorf("failed to create solution dir: %w", err)
		}

		if err := s.fs.WriteFile(ctx, path, file.Mutated, reportFileMode); err != nil {
			slog.Error("Failed to write solution file", "path", path, "error", err)
			return "", fmt.Errorf("failed to write solution file: %w", err)
		}

		text, err := UnifiedDiff(file.Path, file.Original, file.Mutated)
		if err != nil {
			return "", err
		}

		patch.WriteString(text)
	}

	if len(solution.Instructions) > 0 {
		header := "# batch " + strconv.Itoa(solution.Batch) + "\n# " + strings.Join(solution.Instructions, "\n# ") + "\n"
		if err := s.fs.WriteFile(ctx, s.fs.JoinPath(ctx, string(target), "instructions.txt"), []byte(header), reportFileMode); err != nil {
			slog.Error("Failed to write solution instructions", "dir", target, "error", err)
			return "", fmt.Errorf("failed to write solution instructions: %w", err)
		}
	}

	patchPath := s.fs.JoinPath(ctx, string(target), SolutionPatch)
	if err := s.fs.WriteFile(ctx, patchPath, []byte(patch.String()), reportFileMode); err != nil {
		slog.Error("Failed to write solution patch", "path", patchPath, "error", err)
		return "", fmt.Errorf("failed to write solution patch: %w", err)
	}

	return target, nil
}

// ClearSolutions removes the solutions of a previous run.
func (s *LocalReportStore) ClearSolutions(ctx context.Context, dir m.Path) error {
	path := s.fs.JoinPath(ctx, string(dir), SolutionsDir)

	if err := s.fs.RemoveAll(ctx, path); err != nil {
		slog.Error("Failed to clear solutions", "path", path, "error", err)
		return fmt.Errorf("failed to clear solutions: %w", err)
	}

	return nil
}

// SolutionStats reads back every saved patch and counts its changed lines.
func (s *LocalReportStore) SolutionStats(ctx context.Context, dir m.Path) ([]m.SolutionStat, error) {
	root := s.fs.JoinPath(ctx, string(dir), SolutionsDir)

	entries, err := os.ReadDir(string(root))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		slog.Error("Failed to list solutions", "path", root, "error", err)
		return nil, fmt.Errorf("failed to list solutions: %w", err)
	}

	var stats []m.SolutionStat

	for _, entry := range entries {
		index, err := strconv.Atoi(entry.Name())
		if !entry.IsDir() || err != nil {
			continue
		}

		data, err := s.fs.ReadFile(ctx, s.fs.JoinPath(ctx, string(root), entry.Name(), SolutionPatch))
		if err != nil {
			slog.Error("Failed to read solution patch", "solution", index, "error", err)
			return nil, fmt.Errorf("failed to read solution patch: %w", err)
		}

		stat, err := PatchStat(data)
		if err != nil {
			return nil, fmt.Errorf("solution %d: %w", index, err)
		}

		stat.Index = index
		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].Index < stats[j].Index })

	return stats, nil
}

// OpenJournal creates the trial journal of a run.
func (s *LocalReportStore) OpenJournal(ctx context.Context, dir m.Path) (pkg.FileSpill[m.Trial], error) {
	return pkg.NewFileSpill[m.Trial](string(s.fs.JoinPath(ctx, string(dir), TrialsFile)))
}

// LoadTrials reads back the trial journal of a finished run.
func (s *LocalReportStore) LoadTrials(ctx context.Context, dir m.Path) ([]m.Trial, error) {
	journal, err := pkg.OpenFileSpill[m.Trial](string(s.fs.JoinPath(ctx, string(dir), TrialsFile)))
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	trials := make([]m.Trial, 0, journal.Len())

	err = journal.Range(func(_ uint64, trial m.Trial) error {
		trials = append(trials, trial)
		return nil
	})

	return trials, err
}

// UnifiedDiff renders the change of one file with three lines of context.
func UnifiedDiff(path m.Path, original, mutated []byte) (string, error) {
	name := filepath.ToSlash(string(path))

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(mutated)),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	})
	if err != nil {
		slog.Error("Failed to render diff", "file", path, "error", err)
		return "", fmt.Errorf("failed to render diff: %w", err)
	}

	if text == "" {
		return "", nil
	}

	return "diff --git a/" + name + " b/" + name + "\n" + text, nil
}

// PatchStat counts the files and lines a unified diff touches.
func PatchStat(patch []byte) (m.SolutionStat, error) {
	var stat m.SolutionStat

	if len(bytes.TrimSpace(patch)) == 0 {
		return stat, nil
	}

	files, err := diff.NewMultiFileDiffReader(bytes.NewReader(patch)).ReadAllFiles()
	if err != nil {
		slog.Error("Failed to parse patch", "error", err)
		return stat, fmt.Errorf("failed to parse patch: %w", err)
	}

	for _, file := range files {
		stat.Files++

		for _, hunk := range file.Hunks {
			for _, line := range bytes.Split(hunk.Body, []byte("\n")) {
				switch {
				case bytes.HasPrefix(line, []byte("+")):
					stat.Added++
				case bytes.HasPrefix(line, []byte("-")):
					stat.Removed++
				}
			}
		}
	}

	return stat, nil
}
