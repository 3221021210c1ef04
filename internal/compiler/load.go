package compiler

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/roach88/entail/internal/program"
)

// LoadPath compiles the CUE program definitions at path into a registry.
// path may be a single .cue file or a directory; directories are loaded as
// one CUE instance so definitions can be split across files.
func LoadPath(path string) (*program.Program, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("accessing definitions at %s: %w", path, err)
	}

	ctx := cuecontext.New()
	var v cue.Value
	if info.IsDir() {
		// Package "_" matches files without a package clause, which is how
		// definition files are written.
		instances := load.Instances([]string{"."}, &load.Config{Dir: path, Package: "_"})
		if len(instances) == 0 {
			return nil, fmt.Errorf("no CUE instances loaded from %s", path)
		}
		inst := instances[0]
		if inst.Err != nil {
			return nil, formatCUEError(inst.Err)
		}
		v = ctx.BuildInstance(inst)
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading definitions file: %w", err)
		}
		v = ctx.CompileBytes(data, cue.Filename(path))
	}
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return CompileProgram(v)
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
