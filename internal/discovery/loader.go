package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"xtp/internal/introspect"
)

// Loader reads YAML suite definitions into the in-memory introspection
// model. One file declares one assembly.
type Loader struct{}

// NewLoader creates a new Loader
func NewLoader() *Loader {
	return &Loader{}
}

// suiteFile is the YAML shape of one assembly definition.
type suiteFile struct {
	Assembly    string          `yaml:"assembly"`
	Traits      []traitDef      `yaml:"traits,omitempty"`
	Collections []collectionDef `yaml:"collections"`
}

type collectionDef struct {
	Name    string     `yaml:"name"`
	Classes []classDef `yaml:"classes"`
}

type classDef struct {
	Name    string      `yaml:"name"`
	Traits  []traitDef  `yaml:"traits,omitempty"`
	Methods []methodDef `yaml:"methods"`
}

type methodDef struct {
	Name    string     `yaml:"name"`
	Fact    *factDef   `yaml:"fact,omitempty"`
	Theory  *theoryDef `yaml:"theory,omitempty"`
	Traits  []traitDef `yaml:"traits,omitempty"`
	Command []string   `yaml:"command,omitempty"`
	Source  *sourceDef `yaml:"source,omitempty"`
}

type factDef struct {
	Name    string `yaml:"name,omitempty"`
	Skip    string `yaml:"skip,omitempty"`
	Timeout int    `yaml:"timeout,omitempty"`
}

type theoryDef struct {
	factDef `yaml:",inline"`
	Rows    [][]any `yaml:"rows"`
}

type traitDef struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

type sourceDef struct {
	File string `yaml:"file"`
	Line int    `yaml:"line"`
}

// Load reads suite definitions from a file or from every .yaml/.yml file
// under a directory.
func (l *Loader) Load(path string) ([]*introspect.ModelAssembly, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("suite path does not exist: %s", path)
	}

	if !info.IsDir() {
		assembly, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}
		return []*introspect.ModelAssembly{assembly}, nil
	}

	var assemblies []*introspect.ModelAssembly
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden directories (starting with .)
			name := d.Name()
			if strings.HasPrefix(name, ".") && name != "." {
				return filepath.SkipDir
			}
			return nil
		}
		if !isYAMLFile(p) {
			return nil
		}
		assembly, err := l.LoadFile(p)
		if err != nil {
			return fmt.Errorf("load suite from %s: %w", p, err)
		}
		assemblies = append(assemblies, assembly)
		return nil
	})
	return assemblies, err
}

// LoadFile reads a single assembly definition.
func (l *Loader) LoadFile(path string) (*introspect.ModelAssembly, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite file: %w", err)
	}

	var suite suiteFile
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("parse suite file: %w", err)
	}
	if suite.Assembly == "" {
		return nil, fmt.Errorf("suite file %s declares no assembly name", path)
	}

	assembly := introspect.NewAssembly(suite.Assembly, traitAnnotations(suite.Traits)...)
	for _, collDef := range suite.Collections {
		collName := collDef.Name
		if collName == "" {
			collName = "Collection for " + suite.Assembly
		}
		collection := assembly.AddCollection(collName)
		for _, clsDef := range collDef.Classes {
			class := collection.AddClass(clsDef.Name, traitAnnotations(clsDef.Traits)...)
			for _, methDef := range clsDef.Methods {
				method := class.AddMethod(methDef.Name, methodAnnotations(methDef)...)
				if methDef.Source != nil {
					method.SetSource(methDef.Source.File, methDef.Source.Line)
				} else {
					method.SetSource(path, 0)
				}
			}
		}
	}
	return assembly, nil
}

// methodAnnotations builds the annotation list for one method definition.
// A method declaring neither fact nor theory gets an implicit default fact.
func methodAnnotations(def methodDef) []introspect.Annotation {
	var annotations []introspect.Annotation

	switch {
	case def.Theory != nil:
		args := make([]any, len(def.Theory.Rows))
		for i, row := range def.Theory.Rows {
			args[i] = row
		}
		annotations = append(annotations, introspect.Annotation{
			Kind:  "theory",
			Args:  args,
			Named: factNamed(def.Theory.factDef),
		})
	case def.Fact != nil:
		annotations = append(annotations, introspect.Annotation{
			Kind:  "fact",
			Named: factNamed(*def.Fact),
		})
	default:
		annotations = append(annotations, introspect.Annotation{Kind: "fact"})
	}

	annotations = append(annotations, traitAnnotations(def.Traits)...)

	if len(def.Command) > 0 {
		args := make([]any, len(def.Command))
		for i, word := range def.Command {
			args[i] = word
		}
		annotations = append(annotations, introspect.Annotation{Kind: "command", Args: args})
	}
	return annotations
}

func factNamed(def factDef) map[string]any {
	named := make(map[string]any)
	if def.Name != "" {
		named["name"] = def.Name
	}
	if def.Skip != "" {
		named["skip"] = def.Skip
	}
	if def.Timeout != 0 {
		named["timeout"] = def.Timeout
	}
	return named
}

func traitAnnotations(defs []traitDef) []introspect.Annotation {
	var annotations []introspect.Annotation
	for _, def := range defs {
		annotations = append(annotations, introspect.Annotation{
			Kind:       "trait",
			Discoverer: "trait",
			Args:       []any{def.Name, def.Value},
		})
	}
	return annotations
}

func isYAMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
