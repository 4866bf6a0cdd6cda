package main

// analyze.go — the analyze subcommand: build the tree, write the artifacts.

import (
	"errors"
	"fmt"
	"os"

	"faultline/internal/figure"
	"faultline/internal/outdir"
	"faultline/internal/report"
	"faultline/internal/settings"
	"faultline/internal/tree"
)

func runAnalyze(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: faultline analyze <ft.txt>")
	}
	path := args[0]

	ft, config, err := buildFromFile(path)
	if err != nil {
		return err
	}

	dir := outdir.For(path)
	subdirs := []string{"cut-sets", "contributions"}
	if !config.SkipFigures() {
		subdirs = append(subdirs, "figures")
	}
	if err := dir.Recreate(subdirs...); err != nil {
		return err
	}

	if err := report.WriteAll(dir, ft, config.SignificantFigures()); err != nil {
		return err
	}
	if !config.SkipFigures() {
		if err := figure.WriteAll(dir, ft); err != nil {
			return err
		}
	}

	fmt.Printf("analysed `%s`: %d events, %d gates → %s\n",
		path, len(ft.Events), len(ft.Gates), dir.Path)
	return nil
}

// buildFromFile reads a fault tree text file and builds it, applying
// settings from the working directory. Document violations come back with
// their source line baked into the message.
func buildFromFile(path string) (*tree.FaultTree, *settings.Settings, error) {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return nil, nil, fmt.Errorf("`%s` is a directory, not a file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("file `%s` does not exist", path)
		}
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	config, err := settings.Load(".")
	if err != nil {
		return nil, nil, err
	}

	ft, err := tree.Build(string(data), tree.Options{TermLimit: config.TermLimit()})
	if err != nil {
		var treeErr *tree.Error
		if errors.As(err, &treeErr) {
			if treeErr.Line > 0 {
				return nil, nil, fmt.Errorf("error at line %d in `%s`: %s",
					treeErr.Line, path, treeErr.Message)
			}
			return nil, nil, fmt.Errorf("error in `%s`: %s", path, treeErr.Message)
		}
		return nil, nil, err
	}
	return ft, config, nil
}
