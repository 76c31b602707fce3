// Command pruner removes every file under a target directory except those
// listed in a keep CSV, moving them into a timestamped trash directory and
// writing a report of what was moved.
//
// Usage: pruner <target_dir> <keep_csv> <report_csv> [path_column]
//
// path_column is the 1-based column of keep_csv holding absolute paths
// (default 1). The keep CSV's first row is treated as a header.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"refresher/internal/prune"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 3 || len(args) > 4 {
		fmt.Fprintln(os.Stderr, "Usage: pruner <target_dir> <keep_csv> <report_csv> [path_column]")
		return 1
	}

	pathCol := 1
	if len(args) == 4 {
		n, err := strconv.Atoi(args[3])
		if err != nil || n < 1 {
			fmt.Fprintln(os.Stderr, "pruner: path_column must be a positive integer (1-based)")
			return 1
		}
		pathCol = n
	}

	targetRoot, err := prune.Canonicalize(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "pruner: %v\n", err)
		return 1
	}
	if fi, err := os.Stat(targetRoot); err != nil || !fi.IsDir() {
		fmt.Fprintf(os.Stderr, "pruner: target directory %s does not exist or is not a directory\n", args[0])
		return 1
	}

	keepCSV := args[1]
	if _, err := os.Stat(keepCSV); err != nil {
		fmt.Fprintf(os.Stderr, "pruner: keep CSV %s does not exist\n", keepCSV)
		return 1
	}

	keep, err := prune.LoadKeepSet(keepCSV, targetRoot, pathCol-1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pruner: %v\n", err)
		return 1
	}

	fmt.Printf("Detected %d unique file path(s) to keep (from %s).\n", len(keep), filepath.Base(keepCSV))
	if !confirm("Proceed with pruning? [y/N]: ") {
		fmt.Println("Operation cancelled by user.")
		return 0
	}

	reportCSV := args[2]
	diagCSV := strings.TrimSuffix(reportCSV, filepath.Ext(reportCSV)) + "_diagnostics.csv"
	trashDir := prune.TrashDirFor(targetRoot, time.Now())

	stats, err := prune.Run(targetRoot, keep, trashDir, reportCSV, diagCSV)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pruner: %v\n", err)
		return 1
	}

	fmt.Printf("Moved %d/%d files to %s\n", stats.Moved, stats.Total, trashDir)
	fmt.Printf("Detailed report written to %s\n", reportCSV)
	return 0
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
