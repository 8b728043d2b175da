package style

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html/atom"
	yaml "gopkg.in/yaml.v3"

	"github.com/gompdf/htmlflow/internal/parser/css"
)

// fileConfig is the YAML shape of a style configuration. Text styles are
// written as inline CSS declarations.
//
//	list_indent: 30
//	tags:
//	  h1: "font-size: 20pt; font-weight: bold"
//	classes:
//	  warning: "color: red; font-weight: bold"
//	containers:
//	  blockquote: {padding: {left: 20}, align: left}
//	class_containers:
//	  centered: {align: center}
//	class_align:
//	  lead: justify
type fileConfig struct {
	ListIndent      *float64              `yaml:"list_indent"`
	Tags            map[string]string     `yaml:"tags"`
	Classes         map[string]string     `yaml:"classes"`
	Containers      map[string]frameEntry `yaml:"containers"`
	ClassContainers map[string]frameEntry `yaml:"class_containers"`
	ClassAlign      map[string]string     `yaml:"class_align"`
}

type frameEntry struct {
	Padding Padding `yaml:"padding"`
	Align   string  `yaml:"align"`
}

// LoadConfigFile reads a YAML style configuration from path on top of base.
func LoadConfigFile(path string, base Config, log *zap.Logger) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return base, fmt.Errorf("failed to open style file: %w", err)
	}
	defer f.Close()

	cfg, err := LoadConfig(f, base, log)
	if err != nil {
		return base, fmt.Errorf("failed to load style file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfig reads a YAML style configuration on top of base. Entries from
// the file replace entries of base with the same key. All invalid entries
// are reported together; on error base is returned unchanged.
func LoadConfig(r io.Reader, base Config, log *zap.Logger) (Config, error) {
	var fc fileConfig

	// only fields we know about are accepted
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return base, nil
		}
		return base, fmt.Errorf("failed to decode style configuration: %w", err)
	}

	cfg := base.Clone()
	var err error

	if fc.ListIndent != nil {
		if *fc.ListIndent < 0 {
			err = multierr.Append(err, fmt.Errorf("list_indent: negative value %g", *fc.ListIndent))
		} else {
			cfg.ListIndent = *fc.ListIndent
		}
	}

	for _, name := range sortedKeys(fc.Tags) {
		tag, er := lookupTag(name)
		if er != nil {
			err = multierr.Append(err, fmt.Errorf("tags: %w", er))
			continue
		}
		decls := css.ParseDeclarations(fc.Tags[name])
		if decls.Len() == 0 {
			err = multierr.Append(err, fmt.Errorf("tags.%s: no declarations", name))
			continue
		}
		cfg = cfg.WithTagStyle(tag, func(d Descriptor) Descriptor {
			return ApplyDeclarations(d, decls, log)
		})
	}

	for _, class := range sortedKeys(fc.Classes) {
		decls := css.ParseDeclarations(fc.Classes[class])
		if decls.Len() == 0 {
			err = multierr.Append(err, fmt.Errorf("classes.%s: no declarations", class))
			continue
		}
		cfg = cfg.WithClassStyle(class, ApplyDeclarations(cfg.Base, decls, log))
	}

	for _, name := range sortedKeys(fc.Containers) {
		tag, er := lookupTag(name)
		if er != nil {
			err = multierr.Append(err, fmt.Errorf("containers: %w", er))
			continue
		}
		rule, er := fc.Containers[name].rule()
		if er != nil {
			err = multierr.Append(err, fmt.Errorf("containers.%s: %w", name, er))
			continue
		}
		cfg = cfg.WithTagContainer(tag, rule)
	}

	for _, class := range sortedKeys(fc.ClassContainers) {
		rule, er := fc.ClassContainers[class].rule()
		if er != nil {
			err = multierr.Append(err, fmt.Errorf("class_containers.%s: %w", class, er))
			continue
		}
		cfg = cfg.WithClassContainer(class, rule)
	}

	for _, class := range sortedKeys(fc.ClassAlign) {
		a, ok := ParseAlign(fc.ClassAlign[class])
		if !ok {
			err = multierr.Append(err, fmt.Errorf("class_align.%s: unknown alignment %q", class, fc.ClassAlign[class]))
			continue
		}
		cfg = cfg.WithClassAlign(class, a)
	}

	if err != nil {
		return base, err
	}
	return cfg, nil
}

func (e frameEntry) rule() (ContainerRule, error) {
	align := AlignNone
	if e.Align != "" {
		a, ok := ParseAlign(e.Align)
		if !ok {
			return nil, fmt.Errorf("unknown alignment %q", e.Align)
		}
		align = a
	}
	p := e.Padding
	if p.Top < 0 || p.Right < 0 || p.Bottom < 0 || p.Left < 0 {
		return nil, errors.New("negative padding")
	}
	return func(f Frame) Frame {
		return AlignTo(align)(Pad(p)(f))
	}, nil
}

func lookupTag(name string) (atom.Atom, error) {
	tag := atom.Lookup([]byte(strings.ToLower(strings.TrimSpace(name))))
	if tag == 0 {
		return 0, fmt.Errorf("unknown tag %q", name)
	}
	return tag, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
