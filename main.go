package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"subgrid/cmd"
	"subgrid/internal/grid"
	"subgrid/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// version is set at build time via -ldflags
var version = "dev"

const defaultDumpWidth = 120

func main() {
	// Parse CLI flags
	config, err := cmd.ParseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if config.Version {
		fmt.Println("subgrid", version)
		return
	}

	if config.LogPath != "" {
		f, err := tea.LogToFile(config.LogPath, "subgrid")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	engine := grid.New(grid.Options{Logger: log.Default()})
	load := config.Loader()

	if config.Dump || !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := dump(engine, load, config.Detail); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Create and run Bubble Tea app
	p := tea.NewProgram(ui.New(engine, load, config.Describe(), config.Table.Title), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// dump prints the table once when stdout is not a terminal or -dump is set.
func dump(engine *grid.Engine, load ui.LoadFunc, detail bool) error {
	ds, err := load()
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	if err := engine.Load(ds); err != nil {
		return err
	}

	width := defaultDumpWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	fmt.Print(ui.RenderStatic(engine, width, detail))
	return nil
}
