package pretty_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftfmt/internal/ui/pretty"
	"github.com/yaklabco/swiftfmt/pkg/diff"
	"github.com/yaklabco/swiftfmt/pkg/runner"
)

func TestIsColorEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", &buf))
	// a plain buffer is not a TTY
	assert.False(t, pretty.IsColorEnabled("auto", &buf))
}

func TestReport(t *testing.T) {
	t.Parallel()

	result := &runner.Result{}
	result.Files = []runner.FileResult{
		{Path: "ok.swift"},
		{Path: "written.swift", Changed: true, Written: true},
		{Path: "skipped.swift", Skipped: true, SkipReason: "file changed during formatting"},
		{Path: "broken.swift", Error: errors.New("kaput")},
		{
			Path:    "pending.swift",
			Changed: true,
			Diff:    diff.Generate("pending.swift", []byte("a\n"), []byte("b\n")),
		},
	}
	result.Stats = runner.Stats{
		FilesDiscovered: 5,
		FilesProcessed:  3,
		FilesChanged:    2,
		FilesWritten:    1,
		FilesSkipped:    1,
		FilesErrored:    1,
	}

	var buf bytes.Buffer
	pretty.NewReporter("never", &buf).Report(result)
	out := buf.String()

	assert.Contains(t, out, "written.swift: formatted")
	assert.Contains(t, out, "skipped.swift: skipped: file changed during formatting")
	assert.Contains(t, out, "broken.swift: error: kaput")
	assert.Contains(t, out, "diff --git a/pending.swift b/pending.swift")
	assert.Contains(t, out, "-a")
	assert.Contains(t, out, "+b")
	assert.Contains(t, out, "5 files scanned, 2 formatted, 1 skipped, 1 errored")
	assert.NotContains(t, out, "ok.swift")
}

func TestReportNil(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NotPanics(t, func() {
		pretty.NewReporter("never", &buf).Report(nil)
	})
	assert.Empty(t, buf.String())
}
