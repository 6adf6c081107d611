// loxvm CLI - builds the reference arithmetic chunk and runs it
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"

	"github.com/chazu/loxvm/manifest"
	"github.com/chazu/loxvm/pkg/bytecode"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	trace := flag.Bool("trace", false, "Print the stack and each instruction while running")
	disasm := flag.Bool("d", false, "Disassemble the chunk before running it")
	verbose := flag.Int("v", 0, "Log verbosity (-4 silent .. 2 debug)")
	configDir := flag.String("config", ".", "Directory to search upwards for loxvm.toml")
	noRun := flag.Bool("no-run", false, "Only disassemble, do not execute")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: loxvm [options]\n\n")
		fmt.Fprintf(os.Stderr, "Builds the chunk for -((1.2 + 3.4) / 5.6) and executes it.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  loxvm                # Run, print the result\n")
		fmt.Fprintf(os.Stderr, "  loxvm -d -no-run     # Print the listing only\n")
		fmt.Fprintf(os.Stderr, "  loxvm -trace -v 2    # Trace execution with debug logging\n")
	}
	flag.Parse()

	cfg, err := loadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags override the file
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["trace"] {
		cfg.VM.Trace = *trace
	}
	if set["d"] {
		cfg.Disassemble.Enabled = *disasm
	}
	if set["v"] {
		cfg.Log.Verbosity = *verbose
	}

	configureLogging(cfg)

	if err := run(cfg, *noRun); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(70)
	}
}

// loadConfig returns the nearest loxvm.toml, or the defaults if none exists.
func loadConfig(dir string) (*manifest.Manifest, error) {
	m, err := manifest.FindAndLoad(dir)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return manifest.Default(), nil
	}
	return m, nil
}

func configureLogging(cfg *manifest.Manifest) {
	var path *string
	if p := cfg.LogPath(); p != "" {
		path = &p
	}
	commonlog.Configure(cfg.Log.Verbosity, path)
}

func run(cfg *manifest.Manifest, noRun bool) error {
	chunk, err := buildChunk()
	if err != nil {
		return err
	}

	if cfg.Disassemble.Enabled {
		if err := chunk.DisassembleTo(os.Stdout, cfg.Disassemble.Name); err != nil {
			return err
		}
	}
	if noRun {
		return nil
	}

	var out io.Writer = os.Stdout
	if p := cfg.OutputPath(); p != "" {
		f, err := os.Create(p)
		if err != nil {
			return fmt.Errorf("cannot open output: %w", err)
		}
		defer f.Close()
		out = f
	}

	vm := bytecode.NewVM(chunk)
	vm.Trace = cfg.VM.Trace
	vm.SetOutput(out)
	_, err = vm.Run()
	return err
}

// buildChunk assembles -((1.2 + 3.4) / 5.6), every instruction on line 123.
func buildChunk() (*bytecode.Chunk, error) {
	const line = 123
	c := bytecode.NewChunk()

	if _, err := c.WriteConstant(1.2, line); err != nil {
		return nil, err
	}
	if _, err := c.WriteConstant(3.4, line); err != nil {
		return nil, err
	}
	c.Emit(bytecode.OpAdd, line)
	if _, err := c.WriteConstant(5.6, line); err != nil {
		return nil, err
	}
	c.Emit(bytecode.OpDivide, line)
	c.Emit(bytecode.OpNegate, line)
	c.Emit(bytecode.OpReturn, line)
	return c, nil
}
