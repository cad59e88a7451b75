package pipeline

import (
	"context"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/ngld/ktbind/pkg"
	"github.com/ngld/ktbind/pkg/fetch"
	"github.com/ngld/ktbind/pkg/runner"
)

// Env is what every step needs: the resolved paths and the means to run tools.
type Env struct {
	Layout     *Layout
	Runner     runner.Runner
	Downloader fetch.Downloader
	// DryRun skips all file system changes; commands are echoed by the runner
	DryRun bool
}

// run executes cmd and converts a non-zero exit into a *StepError wrapping sentinel.
// It returns false if the command was only printed.
func run(ctx context.Context, r runner.Runner, step State, cmd runner.Command, sentinel error) (bool, error) {
	status, err := r.Run(ctx, cmd)
	if err != nil {
		return false, err
	}
	if status == nil {
		return false, nil
	}

	if !status.Success() {
		return true, &StepError{
			Step:     string(step),
			Command:  cmd.String(),
			ExitCode: status.ExitCode,
			Err:      sentinel,
		}
	}
	return true, nil
}

func removeIfExists(ctx context.Context, env *Env, path string) error {
	exists, err := pkg.FileExists(path)
	if err != nil || !exists {
		return err
	}

	runner.Log(ctx).Info().Str("path", path).Msgf("Removing %s", path)
	if env.DryRun {
		return nil
	}
	return pkg.RemovePath(path)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func requireFile(path string) error {
	exists, err := pkg.FileExists(path)
	if err != nil {
		return err
	}
	if !exists {
		return eris.Wrapf(ErrMissingOutput, "%s was not created", path)
	}
	return nil
}

// BuildLibrary compiles the native library with `cargo build -p <package> --release`.
// A non-zero exit yields ErrLibraryBuild.
func BuildLibrary(ctx context.Context, env *Env) error {
	m := env.Layout.Manifest
	runner.Log(ctx).Info().Msg("Building library...")

	_, err := run(ctx, env.Runner, StateBuildLibrary, runner.Command{
		Name: m.Tools.Cargo,
		Args: []string{"build", "-p", m.Package, "--release"},
		Dir:  env.Layout.Root,
	}, ErrLibraryBuild)
	return err
}

// GenerateBindings clears the previously generated sources and runs uniffi-bindgen against
// the built library.
func GenerateBindings(ctx context.Context, env *Env) error {
	l := env.Layout
	m := l.Manifest
	runner.Log(ctx).Info().Msgf("Generating %s binding...", title(m.Language))

	for _, dir := range []string{l.GeneratedDir, l.LegacyDir} {
		if err := removeIfExists(ctx, env, dir); err != nil {
			return err
		}
	}

	executed, err := run(ctx, env.Runner, StateGenerateBindings, runner.Command{
		Name: m.Tools.Cargo,
		Args: []string{
			"run", "-p", m.Package, "--features", m.Bindgen.Features, "--bin", m.Bindgen.Bin,
			"generate",
			"--library", l.BuiltLib,
			"--language", m.Language,
			"--out-dir", l.OutDir,
		},
		Dir: l.Root,
	}, ErrStepFailed)
	if err != nil || !executed {
		return err
	}

	return requireFile(l.BindingSource)
}

// CopyLibrary places the built library next to the generated bindings.
func CopyLibrary(ctx context.Context, env *Env) error {
	l := env.Layout
	runner.Log(ctx).Info().Msg("Copying cdylib to output directory...")
	runner.Echo(ctx, "cp", l.BuiltLib, l.CopiedLib)
	if env.DryRun {
		return nil
	}

	if err := os.MkdirAll(l.OutDir, 0o770); err != nil {
		return eris.Wrapf(err, "Failed to create %s", l.OutDir)
	}
	return pkg.CopyFile(l.BuiltLib, l.CopiedLib)
}

// FetchDependencies makes sure every vendored jar exists. Jars that are already on disk
// are never downloaded again.
func FetchDependencies(ctx context.Context, env *Env) error {
	l := env.Layout
	if !env.DryRun {
		if err := os.MkdirAll(l.VendorDir, 0o770); err != nil {
			return eris.Wrapf(err, "Failed to create %s", l.VendorDir)
		}
	}

	for _, dep := range l.Manifest.Dependencies {
		dest := l.VendorPath(dep)
		exists, err := pkg.FileExists(dest)
		if err != nil {
			return err
		}

		if exists {
			runner.Log(ctx).Info().Str("path", dest).Msgf("%s already exists at %s", dep.Name, dest)
			continue
		}

		err = env.Downloader.Download(ctx, dep.URL, dest)
		if err != nil {
			return eris.Wrapf(err, "Failed to fetch %s", dep.Name)
		}
	}

	return nil
}

// BuildJar compiles the generated source into the jar. A stale jar is removed first so the
// result never contains classes from a previous build.
func BuildJar(ctx context.Context, env *Env) error {
	l := env.Layout
	runner.Log(ctx).Info().Msgf("Building %s JAR...", title(l.Manifest.Language))

	if err := removeIfExists(ctx, env, l.Jar); err != nil {
		return err
	}

	executed, err := run(ctx, env.Runner, StateBuildPackage, runner.Command{
		Name: l.Platform.Kotlinc,
		Args: []string{"-Werror", "-d", l.Jar, l.BindingSource, "-classpath", l.Classpath},
		Dir:  l.Root,
	}, ErrStepFailed)
	if err != nil || !executed {
		return err
	}

	if err = requireFile(l.Jar); err != nil {
		return err
	}
	return VerifyJar(l.Jar)
}

// RunTests runs every test script of the manifest. All scripts run even if an earlier one
// fails; the failures are reported together afterwards.
func RunTests(ctx context.Context, env *Env) error {
	l := env.Layout
	runner.Log(ctx).Info().Msg("Executing tests...")

	failed := []string{}
	for _, name := range l.Manifest.Tests {
		script := l.TestScript(name)
		runner.Log(ctx).Info().Str("test", name).Msgf("Running %s_test.kts ...", name)

		_, err := run(ctx, env.Runner, StateRunTests, runner.Command{
			Name: l.Platform.Kotlinc,
			Args: []string{"-Werror", "-J-ea", "-classpath", l.TestClasspath(), "-script", script},
			Dir:  l.Root,
		}, ErrTestsFailed)
		if err != nil {
			var stepErr *StepError
			if !eris.As(err, &stepErr) {
				return err
			}

			runner.Log(ctx).Error().Str("test", name).Int("exit_code", stepErr.ExitCode).Msgf("%s failed", name)
			failed = append(failed, name)
		}
	}

	if len(failed) > 0 {
		return eris.Wrapf(ErrTestsFailed, "%d of %d failed: %s", len(failed), len(l.Manifest.Tests), strings.Join(failed, ", "))
	}
	return nil
}
