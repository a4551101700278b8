package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("sithub v%s\n", version)
	case "help":
		printHelp()
	case "init":
		if err := initRepo(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "clone":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Error: repository URL required")
			os.Exit(1)
		}
		if err := cloneRepo(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

// initRepo initializes a git repository in the current directory and marks
// it as managed by sithub.
func initRepo() error {
	cmd := exec.Command("git", "init")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git init failed: %w", err)
	}

	marker := filepath.Join(".git", "sithub")
	if err := os.WriteFile(marker, []byte("managed-by: sithub\n"), 0644); err != nil {
		return err
	}

	fmt.Println("Repository initialized")
	return nil
}

func cloneRepo(url string) error {
	fmt.Printf("Cloning %s\n", url)
	cmd := exec.Command("git", "clone", url)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git clone failed: %w", err)
	}
	return nil
}

func printHelp() {
	fmt.Println("SitHub CLI - Self-hosted Corporate Code Repository")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  sithub <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  version     Show version information")
	fmt.Println("  help        Show this help message")
	fmt.Println("  init        Initialize a new repository")
	fmt.Println("  clone <url> Clone a repository")
}
