// ABOUTME: Media/funscript import and sibling-axis discovery
// ABOUTME: Grounded on Funscript.cpp's related-script lookup and the naming convention in the spec

package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ofsedit/internal/eventbus"
	"ofsedit/internal/funscript"
)

var videoExtensions = []string{".mp4", ".mkv", ".webm", ".wmv", ".avi", ".m4v"}
var audioExtensions = []string{".mp3", ".flac", ".wmv", ".ogg"}

// siblingAxes lists the axis suffixes sibling-discovered alongside a root
// funscript, in the order the source probes the filesystem.
var siblingAxes = []string{"roll", "pitch", "twist", "raw", "surge", "sway"}

// lastAxes are moved to the end of the discovered list so the 3D
// simulator sees stable indices for roll/pitch/twist.
var lastAxes = map[string]bool{"roll": true, "pitch": true, "twist": true}

func isMediaExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range videoExtensions {
		if e == ext {
			return true
		}
	}
	for _, e := range audioExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Import opens path, branching on extension: a .funscript loads the root
// script and sibling-discovers its axis funscripts; a media file creates
// an empty project awaiting scripts to be added.
func Import(path string, bus *eventbus.Bus) (*Project, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".funscript" {
		return importFunscript(path, bus)
	}
	if isMediaExtension(ext) {
		return New(filepath.Base(path), bus), nil
	}
	return nil, fmt.Errorf("project: unrecognized import extension %q", ext)
}

func importFunscript(path string, bus *eventbus.Bus) (*Project, error) {
	root, err := LoadFunscript(path, 0, bus)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), ".funscript")

	p := New("", bus)
	p.scripts = p.scripts[:0]
	p.scripts = append(p.scripts, root)

	discovered := discoverSiblingAxes(dir, base, bus)
	p.scripts = append(p.scripts, discovered...)

	if media := findMediaSibling(dir, base); media != "" {
		rel, err := filepath.Rel(dir, media)
		if err == nil {
			p.MediaPath = rel
		} else {
			p.MediaPath = media
		}
	}

	return p, nil
}

func findMediaSibling(dir, base string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		name := e.Name()
		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		if stem == base && isMediaExtension(ext) {
			return filepath.Join(dir, name)
		}
	}
	return ""
}

// discoverSiblingAxes finds "<base>.<axis>.funscript" files, preserving
// probe order, then moves roll/pitch/twist to the end of the returned
// list per the naming convention.
func discoverSiblingAxes(dir, base string, bus *eventbus.Bus) []*funscript.Script {
	var first, last []*funscript.Script
	idx := 1
	for _, axis := range siblingAxes {
		candidate := filepath.Join(dir, base+"."+axis+".funscript")
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		s, err := LoadFunscript(candidate, idx, bus)
		if err != nil {
			continue
		}
		idx++
		if lastAxes[axis] {
			last = append(last, s)
		} else {
			first = append(first, s)
		}
	}
	return append(first, last...)
}
