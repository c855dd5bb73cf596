// ABOUTME: Entry point for ofsedit
// ABOUTME: Handles command-line parsing and routes into import/load, export, and the terminal observer

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"ofsedit/internal/appconfig"
	"ofsedit/internal/backup"
	"ofsedit/internal/eventbus"
	"ofsedit/internal/observer"
	"ofsedit/internal/project"
)

func main() {
	os.Exit(run())
}

func run() int {
	projectPath := flag.String("project", "", "open an existing .ofsproject file")
	importPath := flag.String("import", "", "import a media file or standalone .funscript")
	exportDir := flag.String("export-dir", "", "export all loaded scripts as funscripts into this directory")
	debugFlag := flag.Bool("debug", false, "enable debug logging to ofsedit-debug.log")
	flag.Parse()

	if *debugFlag {
		if err := SetupDebugLog("ofsedit-debug.log"); err != nil {
			log.Printf("failed to set up debug log: %v", err)
			return 1
		}
	}

	if *projectPath == "" && *importPath == "" {
		fmt.Println("Usage: ofsedit [-project path.ofsproject | -import media_or_funscript] [-export-dir dir] [-debug]")
		flag.PrintDefaults()
		return 1
	}

	bus := eventbus.New()

	var proj *project.Project
	var err error
	switch {
	case *projectPath != "":
		proj, err = project.Load(*projectPath, bus)
	case *importPath != "":
		proj, err = project.Import(*importPath, bus)
	}
	if err != nil {
		log.Printf("load error: %v", err)
		return 1
	}

	if *exportDir != "" {
		if err := exportAll(proj, *exportDir); err != nil {
			log.Printf("export error: %v", err)
			return 1
		}
		return 0
	}

	cfgPath := appconfig.GetConfigPath()
	if _, err := appconfig.LoadAppConfig(cfgPath); err != nil {
		debugf("app config load warning: %v", err)
	}

	watchPath := *projectPath
	if watchPath == "" {
		watchPath = *importPath
	}
	backupDir := filepath.Join(filepath.Dir(watchPath), ".ofsedit-backup", filepath.Base(proj.MediaPath))
	autoBackup, err := backup.New(backupDir, watchPath)
	if err != nil {
		debugf("autobackup init warning: %v", err)
	} else {
		go autoBackup.Run(proj)
		defer autoBackup.Close()
	}

	m := observer.New(proj, bus)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Printf("observer error: %v", err)
		return 1
	}

	return 0
}

func exportAll(proj *project.Project, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ofsedit: create export dir %s: %w", dir, err)
	}
	for _, s := range proj.Scripts() {
		path := dir + "/" + s.Title + ".funscript"
		if s.Title == "" {
			path = fmt.Sprintf("%s/script-%d.funscript", dir, s.ID)
		}
		if err := project.SaveFunscript(path, s, proj.Meta); err != nil {
			return err
		}
	}
	return nil
}
