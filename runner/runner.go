// Package runner parses and lints batches of files in parallel. The
// filesystem is abstracted so tests run against an in-memory tree.
package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/glintjs/glint/config"
	"github.com/glintjs/glint/js/analyze"
	"github.com/glintjs/glint/js/parser"
)

var log = commonlog.GetLogger("glint.runner")

// FileReport is the outcome for one file: the parse result plus any
// lint findings.
type FileReport struct {
	Path     string
	Result   *parser.ParseResult
	Findings []analyze.Finding
}

// ErrorCount counts parse errors and error-severity findings.
func (r *FileReport) ErrorCount() int {
	count := 0
	for _, d := range r.Result.Diagnostics {
		if d.Severity == parser.SeverityError {
			count++
		}
	}
	for _, f := range r.Findings {
		if f.Diagnostic.Severity == parser.SeverityError {
			count++
		}
	}
	return count
}

type Runner struct {
	fs    afero.Fs
	cfg   *config.Config
	rules []analyze.Rule
}

func New(fs afero.Fs, cfg *config.Config) *Runner {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	var rules []analyze.Rule
	for _, rule := range analyze.DefaultRules() {
		if cfg.RuleEnabled(rule.Name()) {
			rules = append(rules, rule)
		}
	}
	return &Runner{fs: fs, cfg: cfg, rules: rules}
}

var sourceExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".mjs": true,
	".cjs": true,
}

// Run processes the given paths. Directories are walked for source
// files; files are taken as given. Reports come back in path order.
func (r *Runner) Run(ctx context.Context, paths []string) ([]FileReport, error) {
	files, err := r.collect(paths)
	if err != nil {
		return nil, err
	}
	log.Debugf("processing %d files", len(files))

	jobs := r.cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	var mu sync.Mutex
	var reports []FileReport

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for _, path := range files {
		path := path
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := r.processFile(path)
			if err != nil {
				return err
			}
			mu.Lock()
			reports = append(reports, report)
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Path < reports[j].Path
	})
	return reports, nil
}

func (r *Runner) processFile(path string) (FileReport, error) {
	src, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return FileReport{}, fmt.Errorf("read %s: %w", path, err)
	}
	result := parser.Parse(src, r.cfg.ParserOptions(path)...)
	return FileReport{Path: path, Result: result, Findings: r.analyzeTree(result)}, nil
}

// analyzeTree runs the configured rules. An empty set means every rule
// is disabled, not the default set.
func (r *Runner) analyzeTree(result *parser.ParseResult) []analyze.Finding {
	if len(r.rules) == 0 {
		return nil
	}
	return analyze.Run(result.Root, r.rules...)
}

func (r *Runner) collect(paths []string) ([]string, error) {
	var files []string
	seen := map[string]bool{}

	add := func(path string) {
		if !seen[path] && !r.excluded(path) {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := r.fs.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		err = afero.Walk(r.fs, path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if name := info.Name(); name == "node_modules" || strings.HasPrefix(name, ".") && p != path {
					return filepath.SkipDir
				}
				return nil
			}
			if sourceExtensions[filepath.Ext(p)] {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", path, err)
		}
	}
	return files, nil
}

func (r *Runner) excluded(path string) bool {
	for _, pattern := range r.cfg.Exclude {
		if ok, err := filepath.Match(pattern, path); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(pattern, filepath.Base(path)); err == nil && ok {
			return true
		}
	}
	return false
}

// Fix repeatedly applies the first available code action and reparses
// until no action remains. Only the configured rules contribute
// actions. One action per round keeps overlapping rewrites consistent;
// the round cap guards against a rule whose fix does not remove its
// own finding.
func (r *Runner) Fix(src []byte, opts ...parser.Option) ([]byte, bool) {
	const maxRounds = 32
	changed := false
	for round := 0; round < maxRounds; round++ {
		result := parser.Parse(src, opts...)
		findings := r.analyzeTree(result)
		applied := false
		for _, f := range findings {
			if f.Action == nil || f.Action.Rewritten == nil {
				continue
			}
			src = []byte(f.Action.Rewritten.Text())
			changed = true
			applied = true
			break
		}
		if !applied {
			break
		}
	}
	return src, changed
}
