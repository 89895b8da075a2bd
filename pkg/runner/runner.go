package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/swiftfmt/internal/logging"
	"github.com/yaklabco/swiftfmt/pkg/config"
	"github.com/yaklabco/swiftfmt/pkg/diff"
	"github.com/yaklabco/swiftfmt/pkg/format"
	"github.com/yaklabco/swiftfmt/pkg/fsutil"
)

// Runner formats many files concurrently. Each file is processed by its own
// formatter instance, so workers share nothing but the immutable config.
type Runner struct{}

// New creates a Runner.
func New() *Runner {
	return &Runner{}
}

// Run discovers files under opts.Paths and formats them concurrently,
// returning per-file outcomes in deterministic path order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debug("files discovered",
		logging.FieldFilesDiscovered, len(files))

	result := &Result{}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileResult)

	var wg sync.WaitGroup
	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range workCh {
				select {
				case <-ctx.Done():
					return
				default:
				}
				fr := ProcessFile(ctx, path, opts.Config)
				select {
				case <-ctx.Done():
					return
				case outCh <- fr:
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileResult, len(files))
	for fr := range outCh {
		outcomes[fr.Path] = fr
	}

	for _, path := range files {
		if fr, ok := outcomes[path]; ok {
			result.accumulate(fr)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

// ProcessFile formats a single file: read, format, then either report a
// diff (dry-run) or write back atomically, skipping files that changed on
// disk while formatting ran.
func ProcessFile(ctx context.Context, path string, cfg *config.Config) FileResult {
	fr := FileResult{Path: path}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		fr.Error = err
		return fr
	}

	options, err := cfg.FormatOptions()
	if err != nil {
		fr.Error = err
		return fr
	}

	formatted, err := format.Source(string(content), cfg.RuleNames(), options)
	if err != nil {
		fr.Error = fmt.Errorf("format %s: %w", path, err)
		return fr
	}

	if formatted == string(content) {
		return fr
	}
	fr.Changed = true

	if cfg.DryRun {
		fr.Diff = diff.Generate(path, content, []byte(formatted))
		return fr
	}

	modified, err := info.Modified(ctx)
	if err != nil {
		fr.Error = err
		return fr
	}
	if modified {
		fr.Skipped = true
		fr.SkipReason = "file changed during formatting"
		return fr
	}

	if err := fsutil.WriteAtomic(ctx, path, []byte(formatted), info.Mode); err != nil {
		fr.Error = fmt.Errorf("write %s: %w", path, err)
		return fr
	}
	fr.Written = true
	return fr
}
