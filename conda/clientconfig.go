package conda

import (
	"fmt"

	"conda-locate/domain"
)

var condaConfigArgs = []string{"config", "--show", "--json"}

// ResolveClientConfig returns the anaconda client configuration, from the
// config probe if it is available and from `conda config --show --json` otherwise.
// ok is false when neither works.
func (r *Resolver) ResolveClientConfig() (cfg domain.ClientConfig, ok bool) {
	return firstSuccess(r.logger,
		strategy[domain.ClientConfig]{name: "config probe", run: r.configProbe.ProbeClientConfig},
		strategy[domain.ClientConfig]{name: "conda config", run: r.clientConfigFromCondaConfig},
	)
}

func (r *Resolver) clientConfigFromCondaConfig() (domain.ClientConfig, error) {
	condaConfig, err := r.execute(condaConfigArgs...)
	if err != nil {
		return domain.ClientConfig{}, err
	}

	cfg, err := adaptAnacondaSettings(condaConfig["anaconda_default_site"], condaConfig["anaconda_sites"])
	if err != nil {
		return domain.ClientConfig{}, &ExecutionError{Args: condaConfigArgs, Err: err}
	}

	return cfg, nil
}

// adaptAnacondaSettings converts decoded anaconda_default_site and anaconda_sites values.
// Missing (nil) values mean no default site and no sites.
func adaptAnacondaSettings(rawDefaultSite, rawSites interface{}) (domain.ClientConfig, error) {
	var defaultSite string
	switch v := rawDefaultSite.(type) {
	case nil:
	case string:
		defaultSite = v
	default:
		return domain.ClientConfig{}, fmt.Errorf("anaconda_default_site is %T, not a string", rawDefaultSite)
	}

	sites := make(map[string]string)
	switch v := rawSites.(type) {
	case nil:
	case map[string]interface{}:
		for name, rawURL := range v {
			url, ok := rawURL.(string)
			if !ok {
				return domain.ClientConfig{}, fmt.Errorf("anaconda_sites[%s] is %T, not a string", name, rawURL)
			}
			sites[name] = url
		}
	default:
		return domain.ClientConfig{}, fmt.Errorf("anaconda_sites is %T, not a mapping", rawSites)
	}

	return domain.NewClientConfig(defaultSite, sites), nil
}
