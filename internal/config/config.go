package config

import (
	"fmt"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// Dataset holds the configured paths of one converter. Empty fields fall
// back to the converter's defaults.
type Dataset struct {
	Input    string
	Output   string
	Encoding string
}

type Config struct {
	DataDir  string
	Datasets map[string]Dataset
}

// Default is the configuration used when no file is given.
func Default() Config {
	return Config{DataDir: ".", Datasets: map[string]Dataset{}}
}

// Load reads an INI file:
//
//	data_dir = .
//
//	[movies]
//	input    = public/data/movies.csv
//	output   = public/data/movies_data.json
//	encoding = utf-8
func Load(path string) (Config, error) {
	c := Default()
	cfg, err := ini.Load(path)
	if err != nil {
		return c, fmt.Errorf("load config %s: %w", path, err)
	}

	root := cfg.Section(ini.DefaultSection)
	if dir := root.Key("data_dir").String(); dir != "" {
		c.DataDir = dir
	}

	for _, sec := range cfg.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		c.Datasets[sec.Name()] = Dataset{
			Input:    sec.Key("input").String(),
			Output:   sec.Key("output").String(),
			Encoding: sec.Key("encoding").String(),
		}
	}
	return c, nil
}

// Overrides are values given on the command line; empty means unset.
type Overrides struct {
	DataDir  string
	Input    string
	Output   string
	Encoding string
}

// Resolve merges flag overrides, the config file and the defaults for one
// dataset, in that order of precedence. Paths from the file or the defaults
// are relative to the data directory; flag paths are used as given.
func (c Config) Resolve(name, defInput, defOutput string, o Overrides) Dataset {
	dir := pick(o.DataDir, c.DataDir)
	ds := c.Datasets[name]

	out := Dataset{
		Input:    resolvePath(dir, pick(ds.Input, defInput)),
		Output:   resolvePath(dir, pick(ds.Output, defOutput)),
		Encoding: pick(o.Encoding, ds.Encoding),
	}
	if o.Input != "" {
		out.Input = filepath.Clean(o.Input)
	}
	if o.Output != "" {
		out.Output = filepath.Clean(o.Output)
	}
	return out
}

func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func resolvePath(dir, p string) string {
	if filepath.IsAbs(p) || dir == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, p)
}
