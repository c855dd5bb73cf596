// ABOUTME: Versioned length-prefixed binary container for the .ofsproject format
// ABOUTME: Grounded on OFS_BinarySerialization.h's growable-tail-marker framing idea

package project

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"ofsedit/internal/eventbus"
	"ofsedit/internal/funscript"
)

const containerVersion uint32 = 1

// ErrProjectVersionMismatch reports a container whose leading version
// field is not the one value this build accepts. Per the design notes,
// any future bump must be an explicit migration step; higher versions are
// never silently accepted.
var ErrProjectVersionMismatch = fmt.Errorf("project: version mismatch")

func writeString(w *bytes.Buffer, s string) {
	binary.Write(w, binary.LittleEndian, uint32(len(s)))
	w.WriteString(s)
}

func readString(r *bytes.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeBookmarks(w *bytes.Buffer, marks []Bookmark) {
	binary.Write(w, binary.LittleEndian, uint32(len(marks)))
	for _, m := range marks {
		writeString(w, m.Name)
		binary.Write(w, binary.LittleEndian, m.At)
		binary.Write(w, binary.LittleEndian, uint8(m.Type))
	}
}

func readBookmarks(r *bytes.Reader) ([]Bookmark, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	marks := make([]Bookmark, 0, n)
	for i := uint32(0); i < n; i++ {
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		var at float32
		if err := binary.Read(r, binary.LittleEndian, &at); err != nil {
			return nil, err
		}
		var typ uint8
		if err := binary.Read(r, binary.LittleEndian, &typ); err != nil {
			return nil, err
		}
		marks = append(marks, Bookmark{Name: name, At: at, Type: BookmarkType(typ)})
	}
	return marks, nil
}

func writeActions(w *bytes.Buffer, actions []funscript.Action) {
	binary.Write(w, binary.LittleEndian, uint32(len(actions)))
	for _, a := range actions {
		binary.Write(w, binary.LittleEndian, a.At)
		binary.Write(w, binary.LittleEndian, a.Pos)
		binary.Write(w, binary.LittleEndian, a.Flags)
		binary.Write(w, binary.LittleEndian, a.Tag)
	}
}

func readActions(r *bytes.Reader) ([]funscript.Action, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	out := make([]funscript.Action, 0, n)
	for i := uint32(0); i < n; i++ {
		var a funscript.Action
		if err := binary.Read(r, binary.LittleEndian, &a.At); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &a.Pos); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &a.Flags); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &a.Tag); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Serialize encodes p into the versioned binary container format. The
// trailing growable tail marker is a zero-length u32 today; future
// versions append fields after it without breaking readers pinned to
// version 1, which stop as soon as the fields they know about are read.
func Serialize(p *Project) []byte {
	var w bytes.Buffer
	binary.Write(&w, binary.LittleEndian, containerVersion)
	writeString(&w, p.MediaPath)

	// project_settings: bookmarks, tempo, simulator, window
	writeBookmarks(&w, p.Bookmarks)
	binary.Write(&w, binary.LittleEndian, p.Tempo.BPM)
	binary.Write(&w, binary.LittleEndian, p.Tempo.BeatOffset)
	binary.Write(&w, binary.LittleEndian, uint32(p.Tempo.MeasureIndex))
	writeString(&w, string(p.Simulator.Raw))
	writeString(&w, string(p.Window.Raw))

	scripts := p.Scripts()
	binary.Write(&w, binary.LittleEndian, uint32(len(scripts)))
	for _, s := range scripts {
		writeActions(&w, s.Actions().Actions())
		writeString(&w, s.Path)
		writeString(&w, s.Title)
	}

	// growable tail marker: a length-prefixed blob, empty for now
	writeString(&w, "")

	return w.Bytes()
}

// Deserialize decodes a binary container produced by Serialize into a new
// Project. bus may be nil for load-only inspection.
func Deserialize(data []byte, bus *eventbus.Bus) (*Project, error) {
	r := bytes.NewReader(data)

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("project: read version: %w", err)
	}
	if version != containerVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrProjectVersionMismatch, version, containerVersion)
	}

	mediaPath, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("project: read media_path: %w", err)
	}

	p := &Project{MediaPath: mediaPath, bus: bus}

	p.Bookmarks, err = readBookmarks(r)
	if err != nil {
		return nil, fmt.Errorf("project: read bookmarks: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &p.Tempo.BPM); err != nil {
		return nil, fmt.Errorf("project: read tempo.bpm: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &p.Tempo.BeatOffset); err != nil {
		return nil, fmt.Errorf("project: read tempo.beat_offset: %w", err)
	}
	var measureIdx uint32
	if err := binary.Read(r, binary.LittleEndian, &measureIdx); err != nil {
		return nil, fmt.Errorf("project: read tempo.measure_index: %w", err)
	}
	p.Tempo.MeasureIndex = int(measureIdx)

	simRaw, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("project: read simulator_state: %w", err)
	}
	p.Simulator = SimulatorState{Raw: []byte(simRaw)}

	winRaw, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("project: read window_state: %w", err)
	}
	p.Window = WindowState{Raw: []byte(winRaw)}

	var scriptCount uint32
	if err := binary.Read(r, binary.LittleEndian, &scriptCount); err != nil {
		return nil, fmt.Errorf("project: read script count: %w", err)
	}
	p.scripts = make([]*funscript.Script, 0, scriptCount)
	for i := uint32(0); i < scriptCount; i++ {
		actions, err := readActions(r)
		if err != nil {
			return nil, fmt.Errorf("project: read script[%d] actions: %w", i, err)
		}
		path, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("project: read script[%d] path: %w", i, err)
		}
		title, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("project: read script[%d] title: %w", i, err)
		}

		s := funscript.NewScript(int(i), bus)
		s.Path = path
		s.Title = title
		s.Actions().InsertUncheckedBulk(actions)
		s.Actions().Sort()
		p.scripts = append(p.scripts, s)
	}

	// growable tail marker: fields already read are preserved even if the
	// tail holds data this version does not understand.
	if _, err := readString(r); err != nil {
		return nil, fmt.Errorf("project: read tail marker: %w", err)
	}

	return p, nil
}
