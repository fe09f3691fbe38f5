package atscvct

import "unicode/utf16"

// Channel is one entry of a Virtual Channel Table, decoded from the 32-byte
// fixed channel record described in ATSC A/65, plus its descriptor list.
type Channel struct {
	// ShortName holds the 7 UTF-16BE code units of the channel's short name
	// (bytes 0..14 of the channel record).
	ShortName [7]uint16

	MajorNumber uint16 // 10 bits
	MinorNumber uint16 // 10 bits

	Modulation       uint8
	CarrierFrequency uint32
	ChannelTSID      uint16
	ProgramNumber    uint16

	ETMLocation      uint8 // 2 bits
	AccessControlled bool
	Hidden           bool
	PathSelect       bool
	OutOfBand        bool
	HideGuide        bool

	ServiceType uint8 // 6 bits
	SourceID    uint16

	Descriptors DescriptorList
}

// ShortNameString decodes ShortName as a UTF-16 string, trimming trailing
// NUL padding.
func (c *Channel) ShortNameString() string {
	n := len(c.ShortName)
	for n > 0 && c.ShortName[n-1] == 0 {
		n--
	}
	return string(utf16.Decode(c.ShortName[:n]))
}

// Vct is the reassembled, parsed Virtual Channel Table: top-level scalar
// fields plus the ordered channel list, in on-wire order (spec §3).
type Vct struct {
	Protocol    uint8
	TSID        uint16
	CableVCT    bool
	Version     uint8 // 5 bits
	CurrentNext bool

	Channels    []Channel
	Descriptors DescriptorList
}

// NewVct initializes a Vct with empty channel and descriptor lists. Field
// values are taken from their semantic source as listed in spec §4.3 step 6
// (protocol from payload byte 0, ts_id from the section extension field,
// cable_vct from the table_id, version/current_next from the section
// header) — not from the original reference's swapped call-site order; see
// DESIGN.md.
func NewVct(protocol uint8, tsID uint16, cableVCT bool, version uint8, currentNext bool) *Vct {
	return &Vct{
		Protocol:    protocol,
		TSID:        tsID,
		CableVCT:    cableVCT,
		Version:     version,
		CurrentNext: currentNext,
	}
}

// Empty releases both lists and resets them to empty, leaving every scalar
// field untouched.
func (v *Vct) Empty() {
	v.Channels = nil
	v.Descriptors.DeleteAll()
}

// Delete empties v. In Go there is nothing further to free explicitly; kept
// as a named operation so callers mirroring the C lifecycle (NewVct / Empty
// / Delete) read the same way as the reference.
func (v *Vct) Delete() {
	v.Empty()
}

// AddChannel appends a new Channel built from fields and returns a pointer
// to it. The pointer is valid only until the next AddChannel call, since
// Channels may reallocate on append; no caller is handed a reference that
// needs to outlive that (spec §9).
func (v *Vct) AddChannel(shortName [7]uint16, majorNumber, minorNumber uint16,
	modulation uint8, carrierFreq uint32, channelTSID, programNumber uint16,
	etmLocation uint8, accessControlled, hidden, pathSelect, outOfBand, hideGuide bool,
	serviceType uint8, sourceID uint16) *Channel {
	v.Channels = append(v.Channels, Channel{
		ShortName:        shortName,
		MajorNumber:      majorNumber,
		MinorNumber:      minorNumber,
		Modulation:       modulation,
		CarrierFrequency: carrierFreq,
		ChannelTSID:      channelTSID,
		ProgramNumber:    programNumber,
		ETMLocation:      etmLocation,
		AccessControlled: accessControlled,
		Hidden:           hidden,
		PathSelect:       pathSelect,
		OutOfBand:        outOfBand,
		HideGuide:        hideGuide,
		ServiceType:      serviceType,
		SourceID:         sourceID,
	})
	return &v.Channels[len(v.Channels)-1]
}

// AddDescriptor appends a table-level descriptor built from tag/data.
func (v *Vct) AddDescriptor(tag DescriptorTag, data []byte) *Descriptor {
	d := NewDescriptor(tag, data)
	v.Descriptors.Append(d)
	return d
}

// AddDescriptor appends a channel-level descriptor built from tag/data.
func (c *Channel) AddDescriptor(tag DescriptorTag, data []byte) *Descriptor {
	d := NewDescriptor(tag, data)
	c.Descriptors.Append(d)
	return d
}

// clone returns a shallow copy of v as a freshly allocated Vct. Channels and
// Descriptors are immutable once a Vct has finished parsing (spec §3: "No
// interior mutability after creation"), so sharing their backing storage
// between v and the clone is safe; only the top-level struct needs to be a
// distinct allocation, which is what the activation-republish path in the
// gatherer relies on (spec §4.3, "Activation edge case").
func (v *Vct) clone() *Vct {
	o := *v
	return &o
}
