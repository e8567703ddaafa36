// Command hygiene finds unused assets and unused code symbols in a
// Dart/Flutter package or pub workspace.
package main

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/hygiene/internal/assets"
	"github.com/standardbeagle/hygiene/internal/codeanalysis"
	"github.com/standardbeagle/hygiene/internal/config"
	"github.com/standardbeagle/hygiene/internal/debug"
	hygieneerrors "github.com/standardbeagle/hygiene/internal/errors"
	"github.com/standardbeagle/hygiene/internal/fix"
	"github.com/standardbeagle/hygiene/internal/gate"
	"github.com/standardbeagle/hygiene/internal/model"
	"github.com/standardbeagle/hygiene/internal/parser"
	"github.com/standardbeagle/hygiene/internal/report"
	"github.com/standardbeagle/hygiene/internal/version"
)

var commonFlags = []cli.Flag{
	&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Value: "."},
	&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "console"},
	&cli.StringFlag{Name: "output", Aliases: []string{"o"}},
	&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
	&cli.BoolFlag{Name: "no-color"},
	&cli.BoolFlag{Name: "include-tests", Aliases: []string{"t"}},
	&cli.StringSliceFlag{Name: "exclude", Aliases: []string{"e"}},
	&cli.BoolFlag{Name: "scan-workspace", Aliases: []string{"w"}, Value: true},
}

func main() {
	app := &cli.App{
		Name:    "hygiene",
		Usage:   "find unused Flutter assets and unused Dart code symbols",
		Version: version.Version,
		Commands: []*cli.Command{
			assetsCommand(),
			unusedCodeCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeForError(err))
	}
}

func exitCodeForError(err error) int {
	var usage *hygieneerrors.UsageError
	if stderrors.As(err, &usage) {
		return 64
	}
	return 1
}

func assetsCommand() *cli.Command {
	flags := append(append([]cli.Flag{}, commonFlags...),
		&cli.BoolFlag{Name: "include-generated", Aliases: []string{"g"}},
		&cli.BoolFlag{Name: "delete", Aliases: []string{"d"}},
		&cli.BoolFlag{Name: "show-used"},
		&cli.BoolFlag{Name: "show-potential", Value: true},
	)
	return &cli.Command{
		Name:  "assets",
		Usage: "scan for unused assets",
		Flags: flags,
		Action: func(c *cli.Context) error {
			code, err := runAssets(c)
			if err != nil {
				return err
			}
			if code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}
}

func unusedCodeCommand() *cli.Command {
	flags := append(append([]cli.Flag{}, commonFlags...),
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: ".hygiene.kdl"},
		&cli.BoolFlag{Name: "exclude-public-api"},
		&cli.BoolFlag{Name: "exclude-overrides", Value: true},
		&cli.BoolFlag{Name: "cross-package", Value: true},
		&cli.StringFlag{Name: "severity", Value: "warning"},
		&cli.BoolFlag{Name: "fix-dry-run"},
		&cli.BoolFlag{Name: "fix"},
	)
	return &cli.Command{
		Name:  "unused-code",
		Usage: "scan for unused code symbols",
		Flags: flags,
		Action: func(c *cli.Context) error {
			code, err := runUnusedCode(c)
			if err != nil {
				return err
			}
			if code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}
}

// runAssets drives the assets subcommand and returns the process exit code
// (0 clean, 1 findings/error, 64 usage error), with err non-nil for usage,
// environment, report-write and deletion failures the caller should print
// and translate via exitCodeForError.
func runAssets(c *cli.Context) (int, error) {
	if c.String("format") == "html" {
		return 64, hygieneerrors.NewUsageError("--format html is only valid for the unused-code command")
	}
	if c.Bool("verbose") {
		debug.SetOutput(os.Stderr)
	}

	opts := assets.Options{
		IncludeTests:     c.Bool("include-tests"),
		IncludeGenerated: c.Bool("include-generated"),
		Exclude:          c.StringSlice("exclude"),
		ScanWorkspace:    c.Bool("scan-workspace"),
		ShowUsed:         c.Bool("show-used"),
		ShowPotential:    c.Bool("show-potential"),
	}

	start := time.Now()
	rep, err := assets.Analyze(context.Background(), c.String("path"), opts)
	if err != nil {
		return 1, hygieneerrors.NewEnvironmentError(c.String("path"), err)
	}
	duration := time.Since(start)

	reporter, ok := report.ForAssetFormat(c.String("format"))
	if !ok {
		return 64, hygieneerrors.NewUsageError("unknown --format %q", c.String("format"))
	}

	out, closeOut, err := openOutput(c.String("output"))
	if err != nil {
		return 1, hygieneerrors.NewEnvironmentError(c.String("output"), err)
	}
	defer closeOut()

	viewOpts := report.AssetViewOptions{ShowUsed: opts.ShowUsed, ShowPotential: opts.ShowPotential}
	if err := reporter.WriteAssets(out, rep.Results, viewOpts); err != nil {
		return 1, err
	}

	for _, w := range rep.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", w.File, w.Message)
	}

	unused := rep.Unused()
	fmt.Fprintf(os.Stderr, "%d assets scanned, %d unused in %d ms\n", len(rep.Results), len(unused), duration.Milliseconds())

	if c.Bool("delete") && len(unused) > 0 {
		if err := deleteUnusedAssets(c.String("path"), unused); err != nil {
			return 1, err
		}
	}

	if len(unused) > 0 {
		return 1, nil
	}
	return 0, nil
}

func deleteUnusedAssets(root string, unused []model.AssetResult) error {
	var paths []string
	for _, r := range unused {
		paths = append(paths, r.Asset.Path)
	}
	g := gate.New(confirmOnStdin)
	_, err := g.Run(paths, func(relPath string) error {
		return gate.DeleteFile(joinPath(root, relPath))
	})
	return err
}

func confirmOnStdin(paths []string) (bool, error) {
	fmt.Fprintf(os.Stderr, "about to delete %d unused assets:\n", len(paths))
	for _, p := range paths {
		fmt.Fprintf(os.Stderr, "  %s\n", p)
	}
	fmt.Fprint(os.Stderr, "proceed? [y/N] ")
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(strings.ToLower(line))
	return line == "y" || line == "yes", nil
}

// runUnusedCode drives the unused-code subcommand.
func runUnusedCode(c *cli.Context) (int, error) {
	if c.Bool("verbose") {
		debug.SetOutput(os.Stderr)
	}

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return 1, err
	}

	threshold, ok := model.ParseSeverity(c.String("severity"))
	if !ok {
		return 64, hygieneerrors.NewUsageError("unknown --severity %q", c.String("severity"))
	}

	opts := codeanalysis.Options{
		Exclude:       c.StringSlice("exclude"),
		ScanWorkspace: c.Bool("scan-workspace"),
	}

	start := time.Now()
	rep, err := codeanalysis.Analyze(context.Background(), c.String("path"), cfg, opts)
	if err != nil {
		return 1, hygieneerrors.NewEnvironmentError(c.String("path"), err)
	}
	duration := time.Since(start)

	if c.Bool("fix") || c.Bool("fix-dry-run") {
		if err := runFix(c, rep); err != nil {
			return 1, err
		}
	}

	reporter, ok := report.ForFormat(c.String("format"))
	if !ok {
		return 64, hygieneerrors.NewUsageError("unknown --format %q", c.String("format"))
	}

	stats := report.NewStatistics(rep.FilesScanned, rep.Issues, duration.Milliseconds())
	codeReport := report.CodeReport{Version: version.Version, Issues: rep.Issues, Statistics: stats}

	out, closeOut, err := openOutput(c.String("output"))
	if err != nil {
		return 1, hygieneerrors.NewEnvironmentError(c.String("output"), err)
	}
	defer closeOut()

	if err := reporter.Write(out, codeReport); err != nil {
		return 1, err
	}

	for _, w := range rep.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", w.File, w.Message)
	}
	fmt.Fprintln(os.Stderr, report.Summary(stats, rep.Issues))

	return exitCodeForIssues(rep.Issues, threshold), nil
}

func exitCodeForIssues(issues []model.CodeIssue, threshold model.Severity) int {
	var aboveThreshold, anyError bool
	for _, i := range issues {
		if i.Severity == model.SeverityError {
			anyError = true
		}
		if i.Severity >= threshold {
			aboveThreshold = true
		}
	}
	if anyError {
		return 2
	}
	if aboveThreshold {
		return 1
	}
	return 0
}

// runFix re-derives AST-backed deletion ranges for every autoFixable issue
// by re-parsing its file and locating the declaration node whose start
// position matches the issue's location exactly. Re-parsing here (rather
// than threading *tree_sitter.Node through Report) keeps the analyzer's
// public Report free of tree-sitter lifetime concerns.
func runFix(c *cli.Context, rep *codeanalysis.Report) error {
	plans := resolveFixPlans(c.String("path"), rep.Issues)
	_, err := fix.Run(c.String("path"), plans, c.Bool("fix-dry-run"))
	return err
}

func resolveFixPlans(root string, issues []model.CodeIssue) []fix.Plan {
	byFile := make(map[string][]model.CodeIssue)
	for _, issue := range issues {
		if issue.AutoFixable {
			byFile[issue.Location.File] = append(byFile[issue.Location.File], issue)
		}
	}

	ranges := make(map[string][]fix.Range)
	p := parser.New()
	for file, fileIssues := range byFile {
		rs := rangesForFile(p, root, file, fileIssues)
		if len(rs) > 0 {
			ranges[file] = rs
		}
	}
	return fix.BuildPlans(ranges)
}

func rangesForFile(p *parser.Parser, root, relFile string, issues []model.CodeIssue) []fix.Range {
	content, err := os.ReadFile(joinPath(root, relFile))
	if err != nil {
		return nil
	}
	parsed, err := p.Parse(content)
	if err != nil {
		return nil
	}
	defer parsed.Close()

	var ranges []fix.Range
	for _, issue := range issues {
		node := codeanalysis.DeclarationNodeAt(parsed, issue.Location.Line, issue.Location.Column)
		if node == nil {
			continue
		}
		r := fix.ComputeRange(node, content)
		r.ElementID = issue.ElementID
		ranges = append(ranges, r)
	}
	return ranges
}

func openOutput(path string) (out *os.File, closeFn func(), err error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func joinPath(root, rel string) string {
	if root == "" || root == "." {
		return rel
	}
	return root + string(os.PathSeparator) + rel
}

// loadConfigWithOverrides loads the KDL config then layers CLI flag
// overrides on top.
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, hygieneerrors.NewEnvironmentError(c.String("config"), err)
	}
	if c.Bool("exclude-public-api") {
		cfg.PublicAPI.ConsiderExportsAsUsed = true
	}
	if c.IsSet("exclude-overrides") {
		v := c.Bool("exclude-overrides")
		cfg.Rules.UnusedClasses.ExcludeOverrides = v
		cfg.Rules.UnusedFunctions.ExcludeOverrides = v
		cfg.Rules.UnusedMembers.ExcludeOverrides = v
	}
	if c.IsSet("cross-package") {
		cfg.Monorepo.CrossPackageAnalysis = c.Bool("cross-package")
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Exclude = append(cfg.Exclude, excludes...)
	}
	return cfg, nil
}
