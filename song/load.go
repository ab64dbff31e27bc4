package song

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// fileNote is one note of a JSON song file. Either Tone or Hz may be set;
// neither means a rest.
type fileNote struct {
	Tone     string `json:"tone,omitempty"`
	Hz       uint32 `json:"hz,omitempty"`
	Duration uint32 `json:"duration"`
}

type fileSong struct {
	Name  string     `json:"name"`
	Tempo uint32     `json:"tempo"`
	Notes []fileNote `json:"notes"`
}

// Load reads a song from disk. ".mid"/".midi" files go through LoadSMF,
// everything else is parsed as JSON. tempo overrides the file's tempo when non-zero.
func Load(path string, tempo uint32) (*Song, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mid", ".midi":
		return LoadSMF(path, tempo)
	}
	return LoadJSON(path, tempo)
}

// Open resolves a song reference: a built-in name or a file path
func Open(ref string, tempo uint32) (*Song, error) {
	if _, ok := builtins[ref]; ok {
		return Builtin(ref, tempo)
	}
	return Load(ref, tempo)
}

// LoadJSON reads a JSON song file
func LoadJSON(path string, tempo uint32) (*Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read song")
	}

	var fs fileSong
	if err := json.Unmarshal(data, &fs); err != nil {
		return nil, errors.Wrapf(err, "parse song %s", path)
	}

	notes := make([]Note, 0, len(fs.Notes))
	for i, fn := range fs.Notes {
		pitch := Frequency(fn.Hz)
		if fn.Tone != "" {
			f, ok := Tone(fn.Tone)
			if !ok {
				return nil, errors.Errorf("%s: note %d: unknown tone %q", path, i, fn.Tone)
			}
			pitch = f
		}
		notes = append(notes, Note{Pitch: pitch, Duration: fn.Duration})
	}

	if tempo == 0 {
		tempo = fs.Tempo
	}
	if tempo == 0 {
		tempo = DefaultTempo
	}
	name := fs.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	s, err := New(name, tempo, notes)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return s, nil
}

type keyEvent struct {
	at  uint64
	key uint8
	on  bool
}

type span struct {
	start, end uint64
	key        uint8
}

// LoadSMF extracts a monophonic line from a Standard MIDI File. Notes from
// all tracks are merged; a new note cuts off the one still sounding. Times
// are quantised to sixteenth notes, so one song unit is a sixteenth and gaps
// become rests.
func LoadSMF(path string, tempo uint32) (*Song, error) {
	file, err := smf.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read midi file")
	}

	mt, ok := file.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, errors.Errorf("%s: only metric time format is supported", path)
	}
	unit := uint64(mt.Ticks4th()) / 4
	if unit == 0 {
		unit = 1
	}

	var events []keyEvent
	for _, tr := range file.Tracks {
		var abs uint64
		for _, ev := range tr {
			abs += uint64(ev.Delta)
			msg := gomidi.Message(ev.Message)

			var ch, key, vel uint8
			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				events = append(events, keyEvent{at: abs, key: key, on: true})
			case msg.GetNoteEnd(&ch, &key):
				events = append(events, keyEvent{at: abs, key: key})
			}
		}
	}

	// at equal times, note ends sort before note starts
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].at != events[j].at {
			return events[i].at < events[j].at
		}
		return !events[i].on && events[j].on
	})

	var spans []span
	var cur *span
	for _, e := range events {
		if e.on {
			if cur != nil {
				cur.end = e.at
				spans = append(spans, *cur)
			}
			cur = &span{start: e.at, key: e.key}
			continue
		}
		if cur != nil && cur.key == e.key {
			cur.end = e.at
			spans = append(spans, *cur)
			cur = nil
		}
	}
	if cur != nil {
		cur.end = cur.start + unit
		spans = append(spans, *cur)
	}

	quant := func(t uint64) uint64 { return (t + unit/2) / unit }

	var notes []Note
	var pos uint64
	for _, sp := range spans {
		qs, qe := quant(sp.start), quant(sp.end)
		if qs < pos {
			qs = pos
		}
		if qe <= qs {
			continue
		}
		if qs > pos {
			notes = append(notes, Note{Pitch: Rest, Duration: uint32(qs - pos)})
		}
		notes = append(notes, Note{Pitch: KeyFrequency(sp.key), Duration: uint32(qe - qs)})
		pos = qe
	}

	if tempo == 0 {
		tempo = DefaultTempo
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s, err := New(name, tempo, notes)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return s, nil
}
