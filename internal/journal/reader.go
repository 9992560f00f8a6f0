package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/udisondev/zonecore/internal/zone"
)

// ReadAll decodes every event in a journal file. The file must have been closed
// by its writer; a file still being written may end in a partial frame.
func ReadAll(path string) ([]zone.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("opening zstd stream: %w", err)
	}
	defer dec.Close()

	var events []zone.Event
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var ev zone.Event
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil {
			return events, fmt.Errorf("decoding journal line %d: %w", len(events)+1, err)
		}
		events = append(events, ev)
	}
	if err := sc.Err(); err != nil {
		return events, fmt.Errorf("reading journal: %w", err)
	}
	return events, nil
}
