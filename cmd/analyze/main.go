// Command analyze inspects board configuration files. The analyze subcommand
// prints a summary of each board and flags setups that cannot play well; the
// validate subcommand checks that every file loads and exits non-zero when
// one does not.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "inspect board configuration files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Aliases: []string{"d"},
				Value:   "configs",
				Usage:   "directory containing board configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "summarize boards and warn about weak setups",
				ArgsUsage: "[config ...]",
				Action:    runAnalyze,
			},
			{
				Name:      "validate",
				Usage:     "check that configurations load",
				ArgsUsage: "[config ...]",
				Action:    runValidate,
			},
		},
		DefaultCommand: "analyze",
	}
}

// configFiles resolves the command arguments to config paths. With no
// arguments every *.json file in the config directory is used.
func configFiles(cmd *cli.Command) ([]string, error) {
	dir := cmd.String("config-dir")
	if cmd.Args().Len() == 0 {
		files, err := filepath.Glob(filepath.Join(dir, "*.json"))
		if err != nil {
			return nil, fmt.Errorf("failed to list config files: %w", err)
		}
		slices.Sort(files)
		return files, nil
	}

	files := make([]string, 0, cmd.Args().Len())
	for _, name := range cmd.Args().Slice() {
		if !strings.HasSuffix(name, ".json") {
			name += ".json"
		}
		if filepath.Dir(name) == "." {
			name = filepath.Join(dir, name)
		}
		files = append(files, name)
	}
	return files, nil
}

func runAnalyze(ctx context.Context, cmd *cli.Command) error {
	files, err := configFiles(cmd)
	if err != nil {
		return err
	}
	out := cmd.Root().Writer

	for _, file := range files {
		fmt.Fprintf(out, "\n=== Analyzing %s ===\n", filepath.Base(file))
		report, err := analyzeConfig(file)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		report.Print(out)
	}
	return nil
}

func runValidate(ctx context.Context, cmd *cli.Command) error {
	files, err := configFiles(cmd)
	if err != nil {
		return err
	}
	out := cmd.Root().Writer

	invalid := 0
	for _, file := range files {
		result := validateConfig(file)
		result.Print(out)
		if !result.Valid {
			invalid++
		}
	}

	fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", 40))
	if invalid > 0 {
		fmt.Fprintln(out, "❌ Some configurations have errors")
		return cli.Exit(fmt.Sprintf("%d of %d configurations are invalid", invalid, len(files)), 1)
	}
	fmt.Fprintln(out, "✅ All configurations are valid!")
	return nil
}
