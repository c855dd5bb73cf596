// ABOUTME: Metadata probe reading container tags ahead of PCM decode
// ABOUTME: Reads title/artist/album/format tags only; media duration is not probed here

package waveform

import (
	"fmt"
	"io"
	"os"

	"github.com/dhowden/tag"
)

// Metadata is the subset of container tag data the editor surfaces in the
// media panel; actual PCM decode and duration-from-stream measurement is
// out of scope (see Non-goals) and is expected to be supplied by an
// external decoder before Probe's caller constructs a Samples buffer.
type Metadata struct {
	Title  string
	Artist string
	Album  string
	Format tag.Format
}

// Probe reads container-level tags from path without decoding audio,
// grounded on the external-tool boundary the spec draws around PCM
// decode: this editor never touches raw samples itself.
func Probe(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("waveform: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if err == io.EOF || err == tag.ErrNoTagsFound {
			return Metadata{}, nil
		}
		return Metadata{}, fmt.Errorf("waveform: read tags from %s: %w", path, err)
	}
	return Metadata{Title: m.Title(), Artist: m.Artist(), Album: m.Album(), Format: m.Format()}, nil
}
