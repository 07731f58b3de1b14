//go:build mage

// Package main contains Mage build targets for pathfinder developer tooling.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
)

// projectDirs lists the local directories the CLI reads from or writes to.
var projectDirs = []string{
	".secrets",
	".pathfinder",
}

// Init creates the local working directories.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "pathfinder"
	cmdPkg  = "./cmd/pathfinder"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := run("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return run("go", "test", "./...")
}

// Serve builds the binary and starts the search page on localhost:8080.
func Serve() error {
	mg.Deps(Build)
	return run(filepath.Join(binDir, binName), "serve")
}

// Check runs vet and the tests.
func Check() error {
	if err := run("go", "vet", "./..."); err != nil {
		return err
	}
	mg.Deps(Test)
	return nil
}

func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if mg.Verbose() {
		fmt.Println("exec:", name, args)
	}
	return cmd.Run()
}

// Stats prints non-blank line counts for Go sources, tests, and the web
// assets under internal/.
func Stats() error {
	counts := map[string]int{}
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != "." && (d.Name() == "_examples" || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		kind := statKind(path)
		if kind == "" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				counts[kind]++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Lines (Go, production): %d\n", counts["go"])
	fmt.Printf("Lines (Go, tests):      %d\n", counts["test"])
	fmt.Printf("Lines (web assets):     %d\n", counts["web"])
	return nil
}

func statKind(path string) string {
	switch {
	case strings.HasSuffix(path, "_test.go"):
		return "test"
	case strings.HasSuffix(path, ".go"):
		return "go"
	case strings.HasPrefix(filepath.ToSlash(path), "internal/"):
		switch filepath.Ext(path) {
		case ".html", ".css", ".js":
			return "web"
		}
	}
	return ""
}
