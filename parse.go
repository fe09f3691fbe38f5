package atscvct

import (
	"encoding/binary"

	"github.com/asticode/go-astikit"
)

// parseVct walks the chain of completed sections starting at head and
// populates vct, following the bit layout in spec §4.4 (ATSC A/65). It is
// infallible at this API surface: structural truncation yields fewer
// channels/descriptors than advertised rather than an error (spec §4.4,
// §7), and it never reads past a section's payload end (spec §8).
func parseVct(vct *Vct, head *Section) {
	for s := head; s != nil; s = s.Next {
		parseSectionPayload(vct, s.Payload)
	}
}

// parseSectionPayload decodes one section's payload: protocol_version,
// num_channels, the channel loop, and the table-level additional
// descriptors.
func parseSectionPayload(vct *Vct, payload []byte) {
	if len(payload) < 2 {
		return
	}

	numChannels := int(payload[1])
	i := astikit.NewBytesIterator(payload)
	i.Skip(2)

	channelsEmitted := 0
	for i.Offset()+6 < len(payload) && channelsEmitted < numChannels {
		if i.Offset()+32 > len(payload) {
			break
		}

		bs, err := i.NextBytesNoCopy(32)
		if err != nil || len(bs) < 32 {
			break
		}

		ch := decodeChannelRecord(bs)

		descLen := int(bs[30]&0x3)<<8 | int(bs[31])
		descStart := i.Offset()
		descEnd := descStart + descLen
		if descEnd > len(payload) {
			// The per-channel descriptor block would exceed payload_end:
			// stop processing this section's channel loop entirely.
			break
		}

		descBytes, err := i.NextBytesNoCopy(descLen)
		if err != nil {
			break
		}
		parseDescriptorLoop(&ch.Descriptors, descBytes)

		vct.Channels = append(vct.Channels, ch)
		channelsEmitted++
	}

	if i.Offset()+2 > len(payload) {
		return
	}
	lb, err := i.NextBytesNoCopy(2)
	if err != nil || len(lb) < 2 {
		return
	}
	length := int(lb[0]&0x3)<<8 | int(lb[1])

	end := i.Offset() + length
	if end > len(payload) {
		// Unlike the reference, never trust a trailer length past
		// payload_end: clamp it so the descriptor loop below can never
		// read out of bounds (spec §8 fuzz property). See DESIGN.md.
		end = len(payload)
	}

	tailBytes, err := i.NextBytesNoCopy(end - i.Offset())
	if err != nil {
		return
	}
	parseDescriptorLoop(&vct.Descriptors, tailBytes)
}

// decodeChannelRecord decodes the fixed 32-byte channel record described in
// spec §3/§4.4. bs must have length 32; its descriptor block is not part of
// this function.
func decodeChannelRecord(bs []byte) Channel {
	var shortName [7]uint16
	for j := 0; j < 7; j++ {
		shortName[j] = binary.BigEndian.Uint16(bs[j*2 : j*2+2])
	}

	majorNumber := uint16(bs[14]&0xf)<<6 | uint16(bs[15]&0xfc)>>2
	minorNumber := uint16(bs[15]&0x3)<<8 | uint16(bs[16])
	modulation := bs[17]
	carrierFreq := binary.BigEndian.Uint32(bs[18:22])
	channelTSID := binary.BigEndian.Uint16(bs[22:24])
	programNumber := binary.BigEndian.Uint16(bs[24:26])

	etmLocation := (bs[26] & 0xc0) >> 6
	accessControlled := bs[26]&0x20 > 0
	hidden := bs[26]&0x10 > 0
	pathSelect := bs[26]&0x08 > 0
	outOfBand := bs[26]&0x04 > 0
	hideGuide := bs[26]&0x02 > 0

	serviceType := bs[27] & 0x3f
	sourceID := binary.BigEndian.Uint16(bs[28:30])

	return Channel{
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
	}
}

// parseDescriptorLoop decodes a run of tag/length/value descriptors out of
// data, appending well-formed ones to list. A descriptor whose declared
// length would run past data's end is silently skipped, but the cursor
// still advances by 2+length unconditionally, matching spec §4.4.
func parseDescriptorLoop(list *DescriptorList, data []byte) {
	cursor := 0
	for cursor+2 <= len(data) {
		tag := data[cursor]
		length := int(data[cursor+1])

		if 2+length <= len(data)-cursor {
			list.Append(NewDescriptor(DescriptorTag(tag), data[cursor+2:cursor+2+length]))
		}

		cursor += 2 + length
	}
}
