// Package conda finds the local conda installation root and the anaconda client
// configuration, trying in-process knowledge first, then filesystem layout, and
// running the conda executable only as a last resort.
package conda

import (
	"os"

	"conda-locate/domain"
	"conda-locate/helpers"
)

// Logger receives a line for every fallback transition and failure.
type Logger interface {
	Debugf(format string, v ...interface{})
}

// Resolver resolves conda facts for one environment. It keeps no state
// between calls and is safe for concurrent use.
type Resolver struct {
	env domain.Environment

	runner      Runner
	rootProbe   RootProbe
	configProbe ConfigProbe
	logger      Logger
}

// Option customizes a Resolver built by NewResolver.
type Option func(*Resolver)

// WithRunner replaces the os/exec based runner used to invoke conda.
func WithRunner(runner Runner) Option {
	return func(r *Resolver) { r.runner = runner }
}

// WithRootProbe replaces the activation variable root probe.
func WithRootProbe(probe RootProbe) Option {
	return func(r *Resolver) { r.rootProbe = probe }
}

// WithConfigProbe replaces the .condarc config probe.
func WithConfigProbe(probe ConfigProbe) Option {
	return func(r *Resolver) { r.configProbe = probe }
}

// WithLogger sends resolution messages to logger instead of the application logger.
func WithLogger(logger Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// NewResolver returns a Resolver for env. By default conda is run with os/exec,
// the root is probed from conda's activation variables, the client config from
// the .condarc search path, and messages go to the application logger.
func NewResolver(env domain.Environment, opts ...Option) *Resolver {
	homeDir, _ := os.UserHomeDir()

	r := &Resolver{
		env:         env,
		runner:      execRunner{},
		rootProbe:   NewActivationRootProbe(env.Prefix),
		configProbe: NewCondarcProbe(DefaultCondarcFiles(env, os.LookupEnv, homeDir)),
		logger:      helpers.GetAppLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.rootProbe == nil {
		r.rootProbe = UnavailableRootProbe
	}
	if r.configProbe == nil {
		r.configProbe = UnavailableConfigProbe
	}
	if r.logger == nil {
		r.logger = helpers.GetAppLogger()
	}
	if r.runner == nil {
		r.runner = execRunner{}
	}

	return r
}

// Environment returns the environment r resolves for.
func (r *Resolver) Environment() domain.Environment {
	return r.env
}

// Executable returns the conda executable r would run.
func (r *Resolver) Executable() (string, error) {
	return LocateExecutable(r.env)
}
