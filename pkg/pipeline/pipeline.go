// Package pipeline builds Kotlin bindings for a Rust library: it compiles the library,
// generates the bindings, packages them into a jar and runs the test scripts against it.
package pipeline

import (
	"context"
	"runtime"

	"github.com/rotisserie/eris"

	"github.com/ngld/ktbind/pkg/fetch"
	"github.com/ngld/ktbind/pkg/platform"
	"github.com/ngld/ktbind/pkg/runner"
)

// State is the step a pipeline is currently in
type State string

const (
	StateIdle              State = ""
	StateResolvePlatform   State = "resolve-platform"
	StateBuildLibrary      State = "build-library"
	StateGenerateBindings  State = "generate-bindings"
	StateCopyArtifact      State = "copy-artifact"
	StateFetchDependencies State = "fetch-dependencies"
	StateBuildPackage      State = "build-package"
	StateRunTests          State = "run-tests"
	StateDone              State = "done"
)

// States lists the states of a run in the order they are entered
var States = []State{
	StateResolvePlatform,
	StateBuildLibrary,
	StateGenerateBindings,
	StateCopyArtifact,
	StateFetchDependencies,
	StateBuildPackage,
	StateRunTests,
	StateDone,
}

var stateTitles = map[State]string{
	StateResolvePlatform:   "Resolving platform",
	StateBuildLibrary:      "Building library",
	StateGenerateBindings:  "Generating bindings",
	StateCopyArtifact:      "Copying library",
	StateFetchDependencies: "Fetching dependencies",
	StateBuildPackage:      "Building jar",
	StateRunTests:          "Running tests",
	StateDone:              "Done",
}

// Title returns a human readable description of the state
func (s State) Title() string {
	title, ok := stateTitles[s]
	if !ok {
		return string(s)
	}
	return title
}

// StepFunc is a single step of the pipeline
type StepFunc func(ctx context.Context, env *Env) error

var steps = map[State]StepFunc{
	StateBuildLibrary:      BuildLibrary,
	StateGenerateBindings:  GenerateBindings,
	StateCopyArtifact:      CopyLibrary,
	StateFetchDependencies: FetchDependencies,
	StateBuildPackage:      BuildJar,
	StateRunTests:          RunTests,
}

// Options configure a Pipeline. Only Root and Runner are required.
type Options struct {
	Root string
	// GOOS selects the target platform; defaults to runtime.GOOS
	GOOS string
	// Manifest defaults to the embedded manifest
	Manifest *Manifest
	// Classpath overrides the vendored jars on the compile classpath
	Classpath string
	Runner    runner.Runner
	// Downloader defaults to curl invoked through Runner
	Downloader fetch.Downloader
	DryRun     bool
	// OnStep is called whenever a new state is entered
	OnStep func(State)
}

// Pipeline runs the steps in a fixed order and stops at the first error
type Pipeline struct {
	opts  Options
	state State
	env   *Env
}

// New returns a pipeline in the idle state
func New(opts Options) *Pipeline {
	return &Pipeline{opts: opts, state: StateIdle}
}

// State returns the state the pipeline is in. After a failed run it is the failed step.
func (p *Pipeline) State() State {
	return p.state
}

// Env returns the environment shared by the steps; nil until the platform is resolved
func (p *Pipeline) Env() *Env {
	return p.env
}

func (p *Pipeline) enter(next State) error {
	expected := States[0]
	for idx, s := range States[:len(States)-1] {
		if s == p.state {
			expected = States[idx+1]
			break
		}
	}

	if next != expected {
		return eris.Errorf("invalid transition %q -> %q", p.state, next)
	}

	p.state = next
	if p.opts.OnStep != nil {
		p.opts.OnStep(next)
	}
	return nil
}

// Resolve enters the resolve-platform state and computes the layout for the run. It fails
// with platform.ErrUnsupportedOS before anything else happens on unknown platforms.
func (p *Pipeline) Resolve() (*Env, error) {
	if err := p.enter(StateResolvePlatform); err != nil {
		return nil, err
	}

	goos := p.opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	plat, err := platform.Resolve(goos)
	if err != nil {
		return nil, err
	}

	m := p.opts.Manifest
	if m == nil {
		m, err = DefaultManifest()
		if err != nil {
			return nil, err
		}
	}

	if p.opts.Runner == nil {
		return nil, eris.New("No runner configured")
	}

	downloader := p.opts.Downloader
	if downloader == nil {
		downloader = &fetch.CurlDownloader{Runner: p.opts.Runner, Curl: m.Tools.Curl}
	}

	p.env = &Env{
		Layout:     NewLayout(p.opts.Root, plat, m, p.opts.Classpath),
		Runner:     p.opts.Runner,
		Downloader: downloader,
		DryRun:     p.opts.DryRun,
	}
	return p.env, nil
}

// Run executes all steps: resolve-platform, build-library, generate-bindings,
// copy-artifact, fetch-dependencies, build-package and run-tests.
func (p *Pipeline) Run(ctx context.Context) error {
	env, err := p.Resolve()
	if err != nil {
		return eris.Wrapf(err, "%s failed", StateResolvePlatform)
	}

	log := runner.Log(ctx)
	log.Debug().
		Str("os", env.Layout.Platform.OS).
		Str("root", env.Layout.Root).
		Str("classpath", env.Layout.Classpath).
		Msgf("Using library %s", env.Layout.BuiltLib)

	for _, state := range States[1 : len(States)-1] {
		if err := ctx.Err(); err != nil {
			return eris.Wrapf(err, "Interrupted before %s", state)
		}

		if err := p.enter(state); err != nil {
			return err
		}

		err = steps[state](runner.WithTask(ctx, string(state)), env)
		if err != nil {
			return eris.Wrapf(err, "%s failed", state)
		}
	}

	return p.enter(StateDone)
}
