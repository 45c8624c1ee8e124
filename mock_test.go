package docite

import (
	"context"
	"os"
	"sync"
	"testing"
)

// MockRunner records calls and optionally simulates pandoc by writing
// Output to the path following "-o".
type MockRunner struct {
	Stdout string
	Stderr string
	Err    error
	Output string // written to the -o path when Err is nil

	mu         sync.Mutex
	CalledWith []string
	Calls      int
}

func (m *MockRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	m.mu.Lock()
	m.CalledWith = append([]string{name}, args...)
	m.Calls++
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	if m.Err != nil {
		return m.Stdout, m.Stderr, m.Err
	}
	for i, a := range args {
		if a == "-o" && i+1 < len(args) {
			if err := os.WriteFile(args[i+1], []byte(m.Output), 0o644); err != nil {
				return "", err.Error(), err
			}
		}
	}
	return m.Stdout, m.Stderr, nil
}

// pandocOutput mimics pandoc's gfm standalone output for a cited document.
const pandocOutput = `---
bibliography: refs.bib
csl: ieee.csl
link-citations: true
---

[//]: # (ref-intro)
This is a sample with a citation [[1]](#ref-example).

<div id="refs" class="references csl-bib-body">

<div id="ref-example" class="csl-entry">

\[1\] J. Doe, “Example title,” 2023.

</div>

</div>
`

// writeFile creates path with content, failing the test on error.
func writeFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}
