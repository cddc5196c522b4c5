package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/frederikprijck/ng-morph/internal/logger"
)

func TestLoggerOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	logger.SetOutput(f)
	t.Cleanup(func() {
		logger.SetOutput(os.Stderr)
		f.Close()
	})

	logger.Printf("indexed %d files\n", 3)
	logger.Println("done")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(content)
	if !strings.Contains(out, "[ngm] ") {
		t.Errorf("output should carry the tool prefix, got %q", out)
	}
	if !strings.Contains(out, "indexed 3 files") || !strings.Contains(out, "done") {
		t.Errorf("unexpected log output %q", out)
	}
}
