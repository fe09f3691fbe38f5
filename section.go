package atscvct

// TableID identifies the PSI table carried by a section. The VCT decoder
// recognizes the two ATSC A/65 variants; any other value is accepted by
// Attach but behaves like the terrestrial variant since CableVCT is only
// set for TableIDCable (spec §6).
type TableID uint8

const (
	// TableIDTerrestrial is the ATSC Terrestrial Virtual Channel Table.
	TableIDTerrestrial TableID = 0xC8
	// TableIDCable is the ATSC Cable Virtual Channel Table.
	TableIDCable TableID = 0xC9
)

// Section is a read-only view of one already-assembled, CRC-validated PSI
// section, as produced by the MPEG-2 TS packet assembler and routed by the
// demultiplexer. Building PsiSection objects, validating CRC-32, and
// demultiplexing by (table_id, extension) are all out of scope for this
// module (spec §1); Section is the seam at which that collaborator hands
// completed sections to the gatherer.
type Section struct {
	TableID           TableID
	Extension         uint16
	Version           uint8
	CurrentNext       bool
	SectionNumber     uint8
	LastSectionNumber uint8
	SyntaxIndicator   bool
	Payload           []byte // raw bytes after the section header, before the CRC
	Next              *Section
}
