package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kr/pretty"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/eba216/MathLang/compiler"
	"github.com/eba216/MathLang/compiler/back"
	"github.com/eba216/MathLang/compiler/executor"
	"github.com/eba216/MathLang/compiler/format"
	"github.com/eba216/MathLang/config"
	"github.com/eba216/MathLang/repl"
)

var cfg = config.Default()

func main() {
	replCmd := &cli.Command{
		Name:        "repl",
		Description: "interactive shell",
		Action:      replAct,
		Flags: []*cli.Flag{
			cli.NewFlag("prompt", "", "shell prompt"),
			cli.NewFlag("history", "", "history file"),
			cli.NewFlag("debug", false, "print analyzed program of each line"),
		},
	}

	runCmd := &cli.Command{
		Name:        "run",
		Description: "interpret a .math file or program text",
		Action:      runAct,
		Args:        cli.Args{},
	}

	compileCmd := &cli.Command{
		Name:        "compile",
		Description: "translate a .math file or program text to Go or Rust",
		Action:      compileAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("output,o", "", "output file"),
			cli.NewFlag("target", "", "go or rust"),
		},
	}

	parseCmd := &cli.Command{
		Name:        "parse",
		Description: "print parse tree",
		Action:      parseAct,
		Args:        cli.Args{},
	}

	fmtCmd := &cli.Command{
		Name:        "fmt",
		Description: "print source in canonical form",
		Action:      fmtAct,
		Args:        cli.Args{},
	}

	dumpConfigCmd := &cli.Command{
		Name:        "dumpconfig",
		Description: "show configuration values",
		Action:      dumpConfigAct,
	}

	app := &cli.Command{
		Name:        "mathlang",
		Description: "mathlang is an interpreter and compiler of a small arithmetic language",
		Before:      before,
		Action:      rootAct,
		Flags: []*cli.Flag{
			cli.NewFlag("config", "", "TOML configuration file"),
			cli.NewFlag("verbosity,v", "", "logger verbosity topics"),
			cli.HelpFlag,
		},
		Commands: []*cli.Command{
			replCmd,
			runCmd,
			compileCmd,
			parseCmd,
			fmtCmd,
			dumpConfigCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func before(c *cli.Command) error {
	tlog.SetVerbosity(c.String("verbosity"))

	if f := c.String("config"); f != "" {
		err := config.Load(f, &cfg)
		if err != nil {
			return errors.Wrap(err, "load config")
		}
	}

	return nil
}

func newContext() context.Context {
	ctx := context.Background()
	return tlog.ContextWithSpan(ctx, tlog.Root())
}

func replAct(c *cli.Command) (err error) {
	if q := c.String("prompt"); q != "" {
		cfg.REPL.Prompt = q
	}

	if q := c.String("history"); q != "" {
		cfg.REPL.History = q
	}

	if c.Bool("debug") {
		cfg.REPL.Debug = true
	}

	return shell()
}

func rootAct(c *cli.Command) error {
	return shell()
}

func shell() (err error) {
	ctx := newContext()

	var s *repl.Session

	term := repl.NewTerminal(cfg.REPL.History, func() []string { return s.Names() })
	defer func() {
		e := term.Close()
		if err == nil && e != nil {
			err = errors.Wrap(e, "close terminal")
		}
	}()

	s = repl.New(term, executor.NewTaggedWriter(os.Stdout), os.Stderr)
	s.Debug = cfg.REPL.Debug

	return s.Run(ctx, term, cfg.REPL.Prompt)
}

func runAct(c *cli.Command) (err error) {
	ctx := newContext()

	name, text, err := source(c.Args)
	if err != nil {
		return err
	}

	in := executor.NewLineInput(os.Stdin, os.Stderr)
	out := executor.NewTaggedWriter(os.Stdout)

	return compiler.Interpret(ctx, name, text, in, out)
}

func compileAct(c *cli.Command) (err error) {
	ctx := newContext()

	tname := c.String("target")
	if tname == "" {
		tname = cfg.Compile.Target
	}

	target, err := back.ParseTarget(tname)
	if err != nil {
		return err
	}

	name, text, err := source(c.Args)
	if err != nil {
		return err
	}

	out := c.String("output")

	if name == "" {
		code, err := compiler.Compile(ctx, name, text, target)
		if err != nil {
			return err
		}

		if out == "" {
			_, err = os.Stdout.Write(code)
			return err
		}

		return os.WriteFile(out, code, 0o644)
	}

	if out == "" && cfg.Compile.OutDir != "" {
		out = filepath.Join(cfg.Compile.OutDir, filepath.Base(compiler.OutputName(name, target)))
	}

	res, err := compiler.CompileFile(ctx, name, out, target)
	if err != nil {
		return errors.Wrap(err, "compile %v", name)
	}

	fmt.Fprintf(os.Stderr, "Compiled %s to %s.\n", name, res)

	return nil
}

func parseAct(c *cli.Command) (err error) {
	ctx := newContext()

	name, text, err := source(c.Args)
	if err != nil {
		return err
	}

	x, err := compiler.Parse(ctx, name, text)
	if err != nil {
		return errors.Wrap(err, "parse %v", name)
	}

	_, err = pretty.Println(x)

	return err
}

func fmtAct(c *cli.Command) (err error) {
	ctx := newContext()

	name, text, err := source(c.Args)
	if err != nil {
		return err
	}

	x, err := compiler.Parse(ctx, name, text)
	if err != nil {
		return errors.Wrap(err, "parse %v", name)
	}

	b, err := format.Format(ctx, nil, x)
	if err != nil {
		return errors.Wrap(err, "format")
	}

	_, err = os.Stdout.Write(b)

	return err
}

func dumpConfigAct(c *cli.Command) error {
	out, err := config.Marshal(&cfg)
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(out)

	return err
}

// source reads a .math file or joins args into a program text.
// name is empty for program text.
func source(args cli.Args) (name string, text []byte, err error) {
	if len(args) == 0 {
		return "", nil, errors.New("additional argument needed: <file%s or program text>", compiler.SourceExt)
	}

	if len(args) == 1 && strings.HasSuffix(args[0], compiler.SourceExt) {
		text, err = os.ReadFile(args[0])
		if err != nil {
			return "", nil, errors.Wrap(err, "read file")
		}

		return args[0], text, nil
	}

	return "", []byte(strings.Join(args, " ")), nil
}
