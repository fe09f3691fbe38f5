package atscvct

import "fmt"

// SubDecoder is what a Demux registers on behalf of a subtable decoder. It
// stands in for the C library's (detach_fn, gather_fn, decoder) triple
// (spec §6): Go closures replace the function-pointer + opaque-decoder-
// pointer pattern, so there's no decoder argument to thread through.
type SubDecoder struct {
	TableID   TableID
	Extension uint16

	// Gather is invoked by the demultiplexer for every section routed to
	// this (TableID, Extension).
	Gather func(s *Section)
	// Detach is invoked once when the subtable decoder is unregistered.
	Detach func()
}

// Demux is the demultiplexer collaborator this decoder attaches to. It
// owns routing sections to the right subtable decoder by (table_id,
// extension) and the process-wide TS-discontinuity signal; both are out of
// scope for this module (spec §1, §6).
type Demux interface {
	// SubDecoder returns the subtable decoder already registered for
	// (tableID, extension), if any.
	SubDecoder(tableID TableID, extension uint16) (*SubDecoder, bool)
	// AttachSubDecoder registers sd with the demultiplexer.
	AttachSubDecoder(sd *SubDecoder)
	// DetachSubDecoder unregisters sd from the demultiplexer.
	DetachSubDecoder(sd *SubDecoder)
	// Discontinuity reports whether a TS discontinuity has been signaled
	// since the last call to ClearDiscontinuity.
	Discontinuity() bool
	// ClearDiscontinuity clears the discontinuity signal.
	ClearDiscontinuity()
}

// Callback receives ownership of a completed Vct. It is invoked
// synchronously from within Decoder's Gather/onSection call; the callee is
// responsible for everything about the Vct from that point on (spec §5).
type Callback func(v *Vct)

// Option configures a Decoder at Attach time.
type Option func(*Decoder)

// Attach registers a new VCT subtable decoder with demux for (tableID,
// extension), rejecting the call if one is already registered there (spec
// §4.5, §7). cb is invoked with ownership of each completed Vct.
func Attach(demux Demux, tableID TableID, extension uint16, cb Callback, opts ...Option) (*Decoder, error) {
	if _, ok := demux.SubDecoder(tableID, extension); ok {
		return nil, fmt.Errorf("atscvct: already a decoder for (table_id == 0x%02x, extension == 0x%04x)", uint8(tableID), extension)
	}

	d := newDecoder(tableID, extension, cb, demux)
	for _, o := range opts {
		o(d)
	}

	d.subdec = &SubDecoder{
		TableID:   tableID,
		Extension: extension,
		Gather:    d.onSection,
		Detach:    d.reset,
	}
	demux.AttachSubDecoder(d.subdec)
	d.attached = true

	return d, nil
}

// Detach releases everything this decoder is holding (the in-progress
// build and every occupied section slot) and unregisters it from its
// Demux. Calling Detach twice is a no-op on the second call, logged at
// error severity (spec §4.5, §7).
func (d *Decoder) Detach() {
	if !d.attached {
		d.l.Error(fmt.Errorf("atscvct: no such VCT decoder (table_id == 0x%02x, extension == 0x%04x)", uint8(d.tableID), d.extension))
		return
	}

	d.demux.DetachSubDecoder(d.subdec)
	d.reset()
	d.attached = false
}
