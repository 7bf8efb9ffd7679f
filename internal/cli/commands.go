package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/funvibe/typedispatch/internal/config"
	"github.com/funvibe/typedispatch/pkg/object"
	"github.com/funvibe/typedispatch/pkg/typesystem"
)

// Env is bound into every command's Run method.
type Env struct {
	Out    io.Writer
	Config *Config
	Logger *slog.Logger
}

// CLI is the command line grammar.
type CLI struct {
	EnvFile string `help:"File with environment defaults." default:"${env_file}" name:"env-file"`

	Version  VersionCmd  `cmd:"" help:"Print version information."`
	Check    CheckCmd    `cmd:"" help:"Check every document of a YAML file against a descriptor."`
	Classify ClassifyCmd `cmd:"" help:"Dispatch every document of a YAML file through the classify generic."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run(env *Env) error {
	fmt.Fprintf(env.Out, "%s %s\n", config.ToolName, Version())
	return nil
}

// ErrMismatch is returned by check when some document fails the descriptor.
var ErrMismatch = errors.New("documents do not satisfy the descriptor")

type CheckCmd struct {
	Type string `help:"Descriptor name, e.g. Number, Integer or []String." short:"t" required:""`
	File string `arg:"" help:"YAML file to read." type:"existingfile"`
}

func (c *CheckCmd) Run(env *Env) error {
	d, err := ParseDescriptor(c.Type)
	if err != nil {
		return err
	}
	docs, err := readDocuments(c.File)
	if err != nil {
		return err
	}

	failed := 0
	for i, doc := range docs {
		ok := typesystem.Check(doc, d)
		status := "ok"
		if !ok {
			status = "FAIL"
			failed++
		}
		env.Logger.Debug("checked document", slog.Int("doc", i+1), slog.String("type", d.String()), slog.Bool("ok", ok))
		fmt.Fprintf(env.Out, "doc %d: %s %s %s\n", i+1, status, d, doc.Inspect())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d %w %s", failed, len(docs), ErrMismatch, d)
	}
	return nil
}

type ClassifyCmd struct {
	File string `arg:"" help:"YAML file to read." type:"existingfile"`
}

func (c *ClassifyCmd) Run(env *Env) error {
	docs, err := readDocuments(c.File)
	if err != nil {
		return err
	}

	opts := []typesystem.Option{typesystem.WithLogger(env.Logger)}
	if env.Config.Strict {
		opts = append(opts, typesystem.WithAmbiguityErrors())
	}
	classify := NewClassifier(opts...)

	for i, doc := range docs {
		line, err := describeDispatch(classify, doc)
		if err != nil {
			return fmt.Errorf("doc %d: %w", i+1, err)
		}
		fmt.Fprintf(env.Out, "doc %d: %s\n", i+1, line)
	}
	return nil
}

// describeDispatch runs g on v and reports the result with the tuple of
// the method that produced it. String results print unquoted.
func describeDispatch(g *typesystem.Generic, v object.Object) (string, error) {
	m, err := g.Resolve(v)
	if err != nil {
		return "", err
	}
	res, err := m.Impl(v)
	if err != nil {
		return "", err
	}
	label := res.Inspect()
	if s, ok := res.(*object.String); ok {
		label = s.Value
	}
	return label + " via " + typesystem.NewSignature(m.Types, nil).String(), nil
}

func readDocuments(path string) ([]object.Object, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	docs, err := object.DecodeYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return docs, nil
}

// Main parses args, runs the selected command and returns the exit code.
func Main(args []string, stdout, stderr io.Writer) int {
	var cli CLI
	exitCode := -1
	parser, err := kong.New(&cli,
		kong.Name(config.ToolName),
		kong.Description("Runtime type descriptors and multiple dispatch over YAML values."),
		kong.UsageOnError(),
		kong.Vars{"env_file": config.EnvFile},
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
	)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", config.ToolName, err)
		return 2
	}

	ctx, err := parser.Parse(args)
	if exitCode >= 0 {
		return exitCode
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s: error: %v\n", config.ToolName, err)
		return 2
	}

	cfg, err := LoadConfig(cli.EnvFile)
	if err != nil {
		fmt.Fprintf(stderr, "%s: config: %v\n", config.ToolName, err)
		return 2
	}
	env := &Env{Out: stdout, Config: cfg, Logger: NewLogger(stderr, cfg.Level())}

	if err := ctx.Run(env); err != nil {
		env.Logger.Error("command failed", slog.String("command", ctx.Command()), slog.Any("err", err))
		return 1
	}
	return 0
}
