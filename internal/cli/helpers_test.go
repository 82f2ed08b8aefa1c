package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var testNow = time.Date(2024, time.March, 14, 12, 0, 0, 0, time.UTC)

var captureStdoutMu sync.Mutex

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	captureStdoutMu.Lock()
	defer captureStdoutMu.Unlock()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	os.Stdout = w

	outputCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		var buf bytes.Buffer
		_, copyErr := io.Copy(&buf, r)
		_ = r.Close()
		if copyErr != nil {
			errCh <- copyErr
			return
		}
		outputCh <- buf.String()
	}()

	fn()

	os.Stdout = orig
	_ = w.Close()
	select {
	case err := <-errCh:
		t.Fatalf("io.Copy: %v", err)
		return ""
	case out := <-outputCh:
		return out
	}
}

// setupCLI points the CLI at a temp config file holding contents (no file
// when contents is empty), pins the clock and restores globals afterwards.
func setupCLI(t *testing.T, contents string, asJSON bool) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	if contents != "" {
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}

	prevConfig := configPath
	prevRegion := regionFlag
	prevDebug := debugFlag
	prevJSON := jsonOutput
	prevNow := nowFunc
	t.Cleanup(func() {
		configPath = prevConfig
		regionFlag = prevRegion
		debugFlag = prevDebug
		jsonOutput = prevJSON
		nowFunc = prevNow
	})

	configPath = path
	regionFlag = ""
	debugFlag = false
	jsonOutput = asJSON
	nowFunc = func() time.Time { return testNow }
	return path
}

// resetFlags puts every local flag of cmd back to its default after the test.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	reset := func() {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
		resolveOpts.prefer.dir = nil
		explainOpts.prefer.dir = nil
		resolveDateOnly = false
		explainMarkdown = false
		termsMarkdown = false
		holidaysYear = 0
	}
	reset()
	t.Cleanup(reset)
}

func setFlag(t *testing.T, cmd *cobra.Command, name, value string) {
	t.Helper()
	if err := cmd.Flags().Set(name, value); err != nil {
		t.Fatalf("set --%s=%s: %v", name, value, err)
	}
}

// decodeResponse parses a JSON envelope and decodes its data into data when
// data is non-nil.
func decodeResponse(t *testing.T, out string, data interface{}) Response {
	t.Helper()
	var raw struct {
		Response
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		t.Fatalf("unmarshal response: %v\nout=%s", err, out)
	}
	if data != nil && len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			t.Fatalf("unmarshal data: %v\nout=%s", err, out)
		}
	}
	return raw.Response
}
