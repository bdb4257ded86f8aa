package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var catalogue = map[string]string{
	"standards/vapour.md": `---
type: standard
identifier: vapour
name: Vapour
topic: exchange
specification: https://spec.vapour.org/
licence: ogl
maintainer: data-standards-authority
endorsement_state:
  status: identified
  start_date: 2021-06-01
  review_date: 2021-06-01
related:
  - steam
---
# Vapour
`,
	"standards/steam.md": `---
type: standard
identifier: steam
name: Steam
topic: exchange
specification: https://spec.steam.org/
maintainer: data-standards-authority
endorsement_state:
  status: endorsed
  start_date: 2021-01-15
  review_date: 2022-01-15
---
# Steam
`,
	"taxonomy/exchange.md": `---
type: topic
identifier: exchange
name: Data exchange
theme: data
ordinal: 1
---
Moving data between services.
`,
	"taxonomy/data.md": `---
type: theme
identifier: data
name: Data
ordinal: 1
---
Everything about data.
`,
	"licences.json": `[{"id": "ogl", "name": "Open Government Licence", "acronym": "OGL", "url": "https://ogl.example/"}]`,
}

// catalogueCards is the number of cards in catalogue.
const catalogueCards = 5

// writeCatalogue writes the sample catalogue under a temp dir and returns
// its root.
func writeCatalogue(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range catalogue {
		writeFile(t, filepath.Join(root, name), body)
	}
	return root
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

// syncBuffer is a bytes.Buffer safe for one writer and one poller.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type result struct {
	stdout string
	stderr string
	code   int
}

// execute runs the CLI with args and captures its output.
func execute(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

// decode unwraps the data of a JSON success response.
func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var resp struct {
		Status string `json:"status"`
		Data   T      `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	require.Equal(t, "ok", resp.Status)
	return resp.Data
}

func countLines(s, prefix string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}
