package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/loxvm/manifest"
)

func TestBuildChunk(t *testing.T) {
	c, err := buildChunk()
	if err != nil {
		t.Fatal(err)
	}

	listing, err := c.Disassemble("test chunk")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(listing, "== test chunk ==\n0000  123 OP_CONSTANT         0 '1.2'\n") {
		t.Errorf("unexpected listing:\n%s", listing)
	}
	if n, _ := c.InstructionCount(); n != 7 {
		t.Errorf("InstructionCount() = %d, want 7", n)
	}
}

func TestRunWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	content := "[vm]\noutput = \"result.txt\"\n"
	if err := os.WriteFile(filepath.Join(dir, manifest.FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := run(cfg, false); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "result.txt"))
	if err != nil {
		t.Fatal(err)
	}
	a, b, c := 1.2, 3.4, 5.6
	if !strings.HasPrefix(string(data), "-0.82142857") || !strings.HasSuffix(string(data), "\n") {
		t.Errorf("output = %q, want %v", data, -((a + b) / c))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Disassemble.Name != "test chunk" || cfg.VM.Trace {
		t.Errorf("loadConfig defaults = %+v", cfg)
	}
}
