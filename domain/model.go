package domain

// Environment describes the process-wide facts the resolvers work from.
// It is computed once at startup and handed to the resolvers explicitly.
type Environment struct {
	// Prefix is the install prefix of the running conda environment.
	Prefix string `json:"prefix"`
	// Windows selects the Windows executable layout (Scripts\conda.exe).
	Windows bool `json:"windows"`
	// CondaExe, if set, overrides the executable derived from Prefix.
	CondaExe string `json:"conda_exe,omitempty"`
}

// ClientConfig is the anaconda client configuration as conda knows it.
type ClientConfig struct {
	// DefaultSite names the default upload site. Empty means no default.
	DefaultSite string          `json:"default_site,omitempty"`
	Sites       map[string]Site `json:"sites"`
}

type Site struct {
	URL string `json:"url"`
}

// NewClientConfig adapts conda's anaconda_default_site and anaconda_sites values.
// Sites maps a site name to its url. The result's Sites is never nil.
func NewClientConfig(defaultSite string, sites map[string]string) ClientConfig {
	res := ClientConfig{
		DefaultSite: defaultSite,
		Sites:       make(map[string]Site, len(sites)),
	}
	for name, url := range sites {
		res.Sites[name] = Site{URL: url}
	}
	return res
}
