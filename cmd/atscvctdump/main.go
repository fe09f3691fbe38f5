// Command atscvctdump replays a captured stream of VCT sections from a file
// and prints every Vct the decoder publishes. The section framing it reads
// is a minimal stand-in for the out-of-scope TS/PSI assembler (spec §1):
// each record is
//
//	table_id         uint8
//	extension        uint16 BE
//	version          uint8
//	flags            uint8  (bit0 current_next, bit1 syntax_indicator)
//	section_number   uint8
//	last_section_num uint8
//	payload_length   uint16 BE
//	payload          [payload_length]byte
//
// (9-byte header followed by payload_length bytes)
//
// repeated until EOF.
//
// Only one decoder is attached, for table_id 0xC8 (terrestrial) and
// extension 0; records with any other table_id or extension are read and
// dropped.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/asticode/go-astikit"
	"github.com/pkg/profile"

	atscvct "github.com/asticode/go-atscvct"
)

func main() {
	var (
		inputPath  = flag.String("i", "", "path to a section-dump file (required)")
		cpuProfile = flag.Bool("cpuprofile", false, "profile CPU usage for the duration of the run")
	)
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: atscvctdump -i <section-dump-file> [-cpuprofile]")
		os.Exit(2)
	}

	if err := run(*inputPath); err != nil {
		log.Fatal(err)
	}
}

func run(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("atscvctdump: opening %s failed: %w", path, err)
	}
	defer f.Close()

	demux := newReplayDemux()

	count := 0
	if _, err := atscvct.Attach(demux, atscvct.TableIDTerrestrial, 0, func(v *atscvct.Vct) {
		count++
		dumpVct(v)
	}, atscvct.OptLogger(astikit.AdaptStdLogger(log.Default()))); err != nil {
		return err
	}

	for {
		s, err := readSection(f)
		if err == io.EOF {
			break
		} else if err != nil {
			return fmt.Errorf("atscvctdump: reading section failed: %w", err)
		}
		demux.deliver(s)
	}

	fmt.Printf("decoded %d table(s)\n", count)
	return nil
}

func dumpVct(v *atscvct.Vct) {
	fmt.Printf("VCT ts_id=0x%04x cable=%t version=%d current=%t channels=%d\n",
		v.TSID, v.CableVCT, v.Version, v.CurrentNext, len(v.Channels))
	for _, ch := range v.Channels {
		fmt.Printf("  %d.%d %-8s source_id=0x%04x descriptors=%d\n",
			ch.MajorNumber, ch.MinorNumber, ch.ShortNameString(), ch.SourceID, ch.Descriptors.Len())
	}
}

func readSection(r io.Reader) (*atscvct.Section, error) {
	var hdr [9]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}

	payloadLen := binary.BigEndian.Uint16(hdr[7:9])
	payload := make([]byte, payloadLen)
	if payloadLen > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, err
		}
	}

	return &atscvct.Section{
		TableID:           atscvct.TableID(hdr[0]),
		Extension:         binary.BigEndian.Uint16(hdr[1:3]),
		Version:           hdr[3],
		CurrentNext:       hdr[4]&0x1 > 0,
		SyntaxIndicator:   hdr[4]&0x2 > 0,
		SectionNumber:     hdr[5],
		LastSectionNumber: hdr[6],
		Payload:           payload,
	}, nil
}

// replayDemux is the minimal Demux a static replay needs: one decoder per
// (table_id, extension), no discontinuity source since a dumped file has
// none to signal.
type replayDemux struct {
	subdecs map[replayKey]*atscvct.SubDecoder
}

type replayKey struct {
	tableID   atscvct.TableID
	extension uint16
}

func newReplayDemux() *replayDemux {
	return &replayDemux{subdecs: make(map[replayKey]*atscvct.SubDecoder)}
}

func (d *replayDemux) SubDecoder(tableID atscvct.TableID, extension uint16) (*atscvct.SubDecoder, bool) {
	sd, ok := d.subdecs[replayKey{tableID, extension}]
	return sd, ok
}

func (d *replayDemux) AttachSubDecoder(sd *atscvct.SubDecoder) {
	d.subdecs[replayKey{sd.TableID, sd.Extension}] = sd
}

func (d *replayDemux) DetachSubDecoder(sd *atscvct.SubDecoder) {
	delete(d.subdecs, replayKey{sd.TableID, sd.Extension})
}

func (d *replayDemux) Discontinuity() bool { return false }
func (d *replayDemux) ClearDiscontinuity() {}

func (d *replayDemux) deliver(s *atscvct.Section) {
	if sd, ok := d.SubDecoder(s.TableID, s.Extension); ok {
		sd.Gather(s)
	}
}
