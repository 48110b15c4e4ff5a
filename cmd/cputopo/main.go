// File: cmd/cputopo/main.go
// Author: momentics <momentics@gmail.com>
//
// cputopo probes the machine's processor topology and prints it, either
// as a human-readable summary or as a YAML document for tooling.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/momentics/cputopo/api"
	"github.com/momentics/cputopo/sysfs"
	"github.com/momentics/cputopo/topology"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cputopo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		asYAML    bool
		level     int
		sysfsRoot string
	)
	flags := pflag.NewFlagSet("cputopo", pflag.ContinueOnError)
	flags.BoolVar(&asYAML, "yaml", false, "emit the topology as a YAML document")
	flags.IntVar(&level, "level", 0, "restrict cache output to one level (1-4, 0 for all)")
	flags.StringVar(&sysfsRoot, "sysfs-root", "", "probe an alternate sysfs cpu tree (debugging)")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	levels, err := cacheLevels(level)
	if err != nil {
		return err
	}

	var opts []topology.Option
	if sysfsRoot != "" {
		opts = append(opts,
			topology.WithEnumerator(sysfs.NewEnumeratorRoot(sysfsRoot)),
			topology.WithDescriber(sysfs.NewDescriberRoot(sysfsRoot)),
		)
	}
	if err := topology.Init(opts...); err != nil {
		return err
	}
	snap, ok := topology.Get()
	if !ok {
		return api.ErrNotInitialized
	}

	if asYAML {
		return printYAML(os.Stdout, snap, levels)
	}
	printSummary(os.Stdout, snap, levels)
	return nil
}

// cacheLevels maps the --level flag onto cache levels. Level 1 covers
// both the instruction and data caches; 0 selects every level.
func cacheLevels(n int) ([]api.CacheLevel, error) {
	switch n {
	case 0:
		return []api.CacheLevel{api.CacheL1I, api.CacheL1D, api.CacheL2, api.CacheL3, api.CacheL4}, nil
	case 1:
		return []api.CacheLevel{api.CacheL1I, api.CacheL1D}, nil
	case 2:
		return []api.CacheLevel{api.CacheL2}, nil
	case 3:
		return []api.CacheLevel{api.CacheL3}, nil
	case 4:
		return []api.CacheLevel{api.CacheL4}, nil
	default:
		return nil, fmt.Errorf("invalid --level %d: cache levels run 1 to 4", n)
	}
}

func printSummary(w io.Writer, snap *topology.Snapshot, levels []api.CacheLevel) {
	fmt.Fprintf(w, "%d logical processors, %d cores, %d packages\n",
		snap.ProcessorCount(), snap.CoreCount(), snap.PackageCount())
	for i := 0; i < snap.PackageCount(); i++ {
		pkg, _ := snap.Package(i)
		name := pkg.Name
		if name == "" {
			name = "(unnamed package)"
		}
		fmt.Fprintf(w, "package %d: %s, %d cores, %d logical processors\n",
			i, name, pkg.CoreCount, pkg.ProcessorCount)
	}
	for _, level := range levels {
		n := snap.CacheCount(level)
		if n == 0 {
			continue
		}
		c, _ := snap.Cache(level, 0)
		fmt.Fprintf(w, "%s: %d x %d KiB (%d processors each)\n",
			level, n, c.Size/1024, c.ProcessorCount)
	}
}

type yamlCache struct {
	Level      string `yaml:"level"`
	SizeBytes  uint32 `yaml:"size_bytes"`
	LineSize   uint32 `yaml:"line_size"`
	Ways       uint32 `yaml:"ways,omitempty"`
	Sets       uint32 `yaml:"sets,omitempty"`
	Processors string `yaml:"processors"`
}

type yamlPackage struct {
	Name       string `yaml:"name"`
	GPUName    string `yaml:"gpu_name,omitempty"`
	Cores      int    `yaml:"cores"`
	Processors int    `yaml:"processors"`
}

type yamlDoc struct {
	Processors int           `yaml:"processors"`
	Cores      int           `yaml:"cores"`
	Packages   []yamlPackage `yaml:"packages"`
	Caches     []yamlCache   `yaml:"caches,omitempty"`
}

func printYAML(w io.Writer, snap *topology.Snapshot, levels []api.CacheLevel) error {
	doc := yamlDoc{
		Processors: snap.ProcessorCount(),
		Cores:      snap.CoreCount(),
	}
	for i := 0; i < snap.PackageCount(); i++ {
		pkg, _ := snap.Package(i)
		doc.Packages = append(doc.Packages, yamlPackage{
			Name:       pkg.Name,
			GPUName:    pkg.GPUName,
			Cores:      pkg.CoreCount,
			Processors: pkg.ProcessorCount,
		})
	}
	for _, level := range levels {
		for i := 0; i < snap.CacheCount(level); i++ {
			c, _ := snap.Cache(level, i)
			doc.Caches = append(doc.Caches, yamlCache{
				Level:     level.String(),
				SizeBytes: c.Size,
				LineSize:  c.LineSize,
				Ways:      c.Associativity,
				Sets:      c.Sets,
				Processors: fmt.Sprintf("%d-%d", c.ProcessorStart,
					c.ProcessorStart+c.ProcessorCount-1),
			})
		}
	}
	out, err := yaml.Marshal(&doc)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
