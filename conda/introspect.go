package conda

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"conda-locate/domain"
)

// RootProbe reports the conda root known to the current process without running conda.
// It returns ErrUnavailable when it has nothing to say.
type RootProbe interface {
	ProbeRoot() (string, error)
}

// ConfigProbe reports the anaconda client config known to the current process
// without running conda. It returns ErrUnavailable when it has nothing to say.
type ConfigProbe interface {
	ProbeClientConfig() (domain.ClientConfig, error)
}

// RootProbeFunc adapts a function to the RootProbe interface.
type RootProbeFunc func() (string, error)

func (f RootProbeFunc) ProbeRoot() (string, error) { return f() }

// ConfigProbeFunc adapts a function to the ConfigProbe interface.
type ConfigProbeFunc func() (domain.ClientConfig, error)

func (f ConfigProbeFunc) ProbeClientConfig() (domain.ClientConfig, error) { return f() }

// Unavailable probes never report anything.
var (
	UnavailableRootProbe = RootProbeFunc(func() (string, error) {
		return "", ErrUnavailable
	})
	UnavailableConfigProbe = ConfigProbeFunc(func() (domain.ClientConfig, error) {
		return domain.ClientConfig{}, ErrUnavailable
	})
)

// ActivationRootProbe reads the root from the variables conda's shell activation exports:
// _CONDA_ROOT, or else the directory holding the bin, Scripts or condabin dir of CONDA_EXE.
// The activated conda only counts when Prefix is its root, lies under it, or is
// the activated $CONDA_PREFIX.
type ActivationRootProbe struct {
	Prefix    string
	LookupEnv func(string) (string, bool)
}

func NewActivationRootProbe(prefix string) *ActivationRootProbe {
	return &ActivationRootProbe{Prefix: prefix, LookupEnv: os.LookupEnv}
}

func (p *ActivationRootProbe) ProbeRoot() (string, error) {
	root, err := p.activatedRoot()
	if err != nil {
		return "", err
	}

	if p.Prefix == "" {
		return "", fmt.Errorf("conda activation: no install prefix to match: %w", ErrUnavailable)
	}
	if isWithin(root, p.Prefix) {
		return root, nil
	}
	if active, ok := p.LookupEnv("CONDA_PREFIX"); ok && active != "" &&
		filepath.Clean(active) == filepath.Clean(p.Prefix) {
		return root, nil
	}

	return "", fmt.Errorf("conda activation: root %s does not own prefix %s: %w", root, p.Prefix, ErrUnavailable)
}

func (p *ActivationRootProbe) activatedRoot() (string, error) {
	if root, ok := p.LookupEnv("_CONDA_ROOT"); ok && root != "" {
		return filepath.Clean(root), nil
	}

	exe, ok := p.LookupEnv("CONDA_EXE")
	if !ok || exe == "" {
		return "", fmt.Errorf("conda activation: %w", ErrUnavailable)
	}

	exeDir := filepath.Dir(filepath.Clean(exe))
	switch filepath.Base(exeDir) {
	case unixBinDir, windowsBinDir, "condabin":
		return filepath.Dir(exeDir), nil
	}

	return "", fmt.Errorf("conda activation: unrecognized CONDA_EXE layout %s: %w", exe, ErrUnavailable)
}

// isWithin reports whether path is dir or lies under it.
func isWithin(dir string, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

const anacondaDefaultSiteEnv = "CONDA_ANACONDA_DEFAULT_SITE"

// CondarcProbe reads the client config from conda's own configuration sources.
// Paths are layered in order; a directory stands for the *.yml and *.yaml files
// in it, in name order. A later source replaces the default site when it sets
// the key at all (null clears it) and adds to or overrides the sites.
// CONDA_ANACONDA_DEFAULT_SITE overrides every file.
// The probe is unavailable unless some source sets an anaconda key, so that
// conda itself is asked whenever the files have nothing to say.
type CondarcProbe struct {
	Files     []string
	LookupEnv func(string) (string, bool)
}

func NewCondarcProbe(files []string) *CondarcProbe {
	return &CondarcProbe{Files: files, LookupEnv: os.LookupEnv}
}

func (p *CondarcProbe) ProbeClientConfig() (domain.ClientConfig, error) {
	res := domain.NewClientConfig("", nil)
	found := false

	filenames, err := expandCondarcPaths(p.Files)
	if err != nil {
		return domain.ClientConfig{}, err
	}

	for _, filename := range filenames {
		data, err := os.ReadFile(filename)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return domain.ClientConfig{}, fmt.Errorf("could not read %s: %w", filename, err)
		}

		var rc map[string]interface{}
		if err = yaml.Unmarshal(data, &rc); err != nil {
			return domain.ClientConfig{}, fmt.Errorf("could not parse %s: %w", filename, err)
		}

		rawDefaultSite, hasDefaultSite := rc["anaconda_default_site"]
		rawSites, hasSites := rc["anaconda_sites"]
		if !hasDefaultSite && !hasSites {
			continue
		}

		cfg, err := adaptAnacondaSettings(rawDefaultSite, rawSites)
		if err != nil {
			return domain.ClientConfig{}, fmt.Errorf("invalid %s: %w", filename, err)
		}
		if hasDefaultSite {
			res.DefaultSite = cfg.DefaultSite
		}
		for name, site := range cfg.Sites {
			res.Sites[name] = site
		}
		found = true
	}

	if p.LookupEnv != nil {
		if site, ok := p.LookupEnv(anacondaDefaultSiteEnv); ok && site != "" {
			res.DefaultSite = site
			found = true
		}
	}

	if !found {
		return domain.ClientConfig{}, fmt.Errorf("no condarc sets anaconda settings: %w", ErrUnavailable)
	}

	return res, nil
}

// expandCondarcPaths replaces each directory in paths with its YAML files.
func expandCondarcPaths(paths []string) ([]string, error) {
	var res []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			res = append(res, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("could not read condarc dir %s: %w", path, err)
		}
		var names []string
		for _, entry := range entries {
			ext := strings.ToLower(filepath.Ext(entry.Name()))
			if !entry.IsDir() && (ext == ".yml" || ext == ".yaml") {
				names = append(names, entry.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			res = append(res, filepath.Join(path, name))
		}
	}
	return res, nil
}

// condarcLocations returns the .condarc, condarc and condarc.d paths of dir.
func condarcLocations(dir string) []string {
	return []string{
		filepath.Join(dir, ".condarc"),
		filepath.Join(dir, "condarc"),
		filepath.Join(dir, "condarc.d"),
	}
}

// DefaultCondarcFiles lists conda's configuration search path for env, lowest precedence first.
// lookupEnv and homeDir are usually os.LookupEnv and os.UserHomeDir.
func DefaultCondarcFiles(env domain.Environment, lookupEnv func(string) (string, bool), homeDir string) []string {
	var files []string

	if env.Windows {
		if programData, ok := lookupEnv("ProgramData"); ok && programData != "" {
			files = append(files, condarcLocations(filepath.Join(programData, "conda"))...)
		}
	} else {
		files = append(files, condarcLocations("/etc/conda")...)
		files = append(files, condarcLocations("/var/lib/conda")...)
	}

	if root, ok := lookupEnv("_CONDA_ROOT"); ok && root != "" {
		files = append(files, condarcLocations(root)...)
	} else if root, err := rootFromEnvsDir(env.Prefix); err == nil {
		files = append(files, condarcLocations(root)...)
	}

	if xdg, ok := lookupEnv("XDG_CONFIG_HOME"); ok && xdg != "" {
		files = append(files, condarcLocations(filepath.Join(xdg, "conda"))...)
	}
	if homeDir != "" {
		files = append(files, condarcLocations(filepath.Join(homeDir, ".config", "conda"))...)
		files = append(files, condarcLocations(filepath.Join(homeDir, ".conda"))...)
		files = append(files, filepath.Join(homeDir, ".condarc"))
	}

	if env.Prefix != "" {
		files = append(files, condarcLocations(env.Prefix)...)
	}

	if rc, ok := lookupEnv("CONDARC"); ok && rc != "" {
		files = append(files, rc)
	}

	return files
}
