package atscvct

import (
	"fmt"

	"github.com/asticode/go-astikit"
)

// Decoder reassembles the sections of one VCT subtable, keyed by the
// (table_id, extension) it was attached under, and parses completed tables
// into a Vct. A single Decoder instance must never be driven concurrently
// (spec §5); every entry point runs to completion synchronously.
type Decoder struct {
	tableID   TableID
	extension uint16

	lastSectionNumber uint8
	sections          [256]*Section

	building     *Vct
	current      *Vct
	currentValid bool

	cb       Callback
	demux    Demux
	subdec   *SubDecoder
	attached bool

	l astikit.CompleteLogger
}

func newDecoder(tableID TableID, extension uint16, cb Callback, demux Demux) *Decoder {
	return &Decoder{
		tableID:   tableID,
		extension: extension,
		cb:        cb,
		demux:     demux,
		l:         astikit.AdaptStdLogger(nil),
	}
}

// OptLogger sets the logger used to report the conditions in spec §7.
func OptLogger(l astikit.StdLogger) Option {
	return func(d *Decoder) {
		d.l = astikit.AdaptStdLogger(l)
	}
}

// reset drops the in-progress build and every occupied section slot. It is
// the body of both a discontinuity-triggered reinit and Detach.
func (d *Decoder) reset() {
	d.building = nil
	for i := range d.sections {
		d.sections[i] = nil
	}
}

// onSection is the subtable decoder's Gather callback: the state-transition
// engine described in spec §4.3. It decides, for each incoming section,
// whether it starts a new build, continues the current build, republishes
// an already-built table whose current/next status just flipped, or is a
// late duplicate to be silently dropped.
func (d *Decoder) onSection(s *Section) {
	if !s.SyntaxIndicator {
		d.l.Error(fmt.Errorf("atscvct: invalid section (section_syntax_indicator == 0)"))
		return
	}

	d.l.Debugf("atscvct: table version %d, table_id 0x%02x, extension %d, section %d up to %d, current %t",
		s.Version, uint8(s.TableID), s.Extension, s.SectionNumber, s.LastSectionNumber, s.CurrentNext)

	reinit := false
	if d.demux.Discontinuity() {
		reinit = true
		d.demux.ClearDiscontinuity()
	} else if d.building != nil {
		switch {
		case d.building.TSID != s.Extension:
			d.l.Error(fmt.Errorf("atscvct: 'transport_stream_id' differs whereas no TS discontinuity has occurred"))
			reinit = true
		case d.building.Version != s.Version:
			d.l.Error(fmt.Errorf("atscvct: 'version_number' differs whereas no TS discontinuity has occurred"))
			reinit = true
		case d.lastSectionNumber != s.LastSectionNumber:
			d.l.Error(fmt.Errorf("atscvct: 'last_section_number' differs whereas no TS discontinuity has occurred"))
			reinit = true
		}
	} else {
		// No build in progress. A section of the already-published version
		// is either a late duplicate of that table, or a previously-inactive
		// version that just became active and needs to be republished (spec
		// §4.3 step 4); any other section starts a new build below.
		if d.currentValid && d.current.Version == s.Version {
			if !d.current.CurrentNext && s.CurrentNext {
				d.current.CurrentNext = true
				published := d.current.clone()
				d.cb(published)
			}
			// else: duplicate of an already-published table, silently
			// discarded (spec §4.3 step 4, §7).
			return
		}
	}

	if reinit {
		d.currentValid = false
		d.reset()
	}

	if d.building == nil {
		if len(s.Payload) < 1 {
			d.l.Error(fmt.Errorf("atscvct: failed decoding VCT section: empty payload"))
			return
		}
		d.building = NewVct(s.Payload[0], s.Extension, s.TableID == TableIDCable, s.Version, s.CurrentNext)
		d.lastSectionNumber = s.LastSectionNumber
	}

	if d.sections[s.SectionNumber] != nil {
		d.l.Debugf("atscvct: overwrite section number %d", s.SectionNumber)
	}
	d.sections[s.SectionNumber] = s

	if !d.isComplete() {
		return
	}

	// Chain the sections 0..last_section_number in index order and run the
	// parser on the chained head.
	for i := 0; i < int(d.lastSectionNumber); i++ {
		d.sections[i].Next = d.sections[i+1]
	}
	parseVct(d.building, d.sections[0])

	// Snapshot the now-populated building table as current only after
	// parsing has run (see DESIGN.md, "current snapshot timing"), release
	// the section chain, and hand ownership of the built Vct to the
	// callback.
	d.current = d.building.clone()
	d.currentValid = true

	for i := 0; i <= int(d.lastSectionNumber); i++ {
		d.sections[i] = nil
	}

	built := d.building
	d.building = nil
	d.cb(built)
}

// isComplete reports whether every slot 0..=lastSectionNumber is occupied.
func (d *Decoder) isComplete() bool {
	for i := 0; i <= int(d.lastSectionNumber); i++ {
		if d.sections[i] == nil {
			return false
		}
	}
	return true
}
