package patterns

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

//go:embed registry.cue
var defaultRegistryCUE string

// Default compiles the embedded registry. The embedded source is part of
// the binary, so a compile failure here is a build defect; Default panics
// rather than forcing every caller to handle an impossible error.
func Default() *Registry {
	ctx := cuecontext.New()
	v := ctx.CompileString(defaultRegistryCUE, cue.Filename("registry.cue"))
	reg, err := Compile(v)
	if err != nil {
		panic(fmt.Sprintf("embedded pattern registry is invalid: %v", err))
	}
	return reg
}

// LoadDir loads a pattern registry from a directory of CUE files.
//
// All .cue files in the directory are unified into a single document and
// compiled. The loaded registry replaces the embedded default wholesale;
// there is no merging.
func LoadDir(dir string) (*Registry, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("patterns directory not found: %s", dir)
	}
	if err != nil {
		return nil, fmt.Errorf("accessing patterns directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning patterns directory: %w", err)
	}
	if len(cueFiles) == 0 {
		return nil, fmt.Errorf("no CUE files found in %s", dir)
	}

	// Registry documents carry no package clause, so the files are named
	// explicitly instead of loading the directory as a CUE package.
	args := make([]string, 0, len(cueFiles))
	for _, f := range cueFiles {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", f, err)
		}
		args = append(args, rel)
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances(args, cfg)
	if len(instances) == 0 {
		return nil, fmt.Errorf("no CUE instances loaded from %s", dir)
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, fmt.Errorf("loading CUE files: %w", inst.Err)
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("building CUE value: %w", formatCUEError(err))
	}

	return Compile(value)
}

// findCUEFiles walks the directory and returns all .cue file paths.
func findCUEFiles(dir string) ([]string, error) {
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
