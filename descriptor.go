package atscvct

// DescriptorTag identifies the structure of a descriptor's payload. This
// decoder never interprets the payload itself, only the tag/length framing:
// further interpretation of individual tags is a separate concern (spec §1).
type DescriptorTag uint8

// Descriptor is a raw {tag, length, value} record as carried inside a VCT
// table or one of its channels. It is never mutated after construction and
// is owned by exactly one DescriptorList.
type Descriptor struct {
	Tag    DescriptorTag
	Length uint8
	Data   []byte

	next *Descriptor
}

// NewDescriptor copies Length bytes out of data and returns a new Descriptor.
// The caller's slice is never aliased.
func NewDescriptor(tag DescriptorTag, data []byte) *Descriptor {
	d := &Descriptor{
		Tag:    tag,
		Length: uint8(len(data)),
		Data:   make([]byte, len(data)),
	}
	copy(d.Data, data)
	return d
}

// CanDecodeAs reports whether d's tag matches tag.
func (d *Descriptor) CanDecodeAs(tag DescriptorTag) bool {
	return d.Tag == tag
}

// DuplicateDecodedDescriptor deep-copies a previously decoded descriptor
// payload by byte count. The caller owns the returned slice.
func DuplicateDecodedDescriptor(decoded []byte) []byte {
	if decoded == nil {
		return nil
	}
	o := make([]byte, len(decoded))
	copy(o, decoded)
	return o
}

// DescriptorList is a singly-linked, append-order list of descriptors. The
// list's identity is its head; appends land at the tail in O(1) through a
// tail pointer. Backing it
// with a slice instead would preserve the same traversal contract (spec §9)
// but the linked form keeps Descriptor's ownership story (exactly one list
// per node) explicit, the way packet_list.go keeps Packet ownership explicit
// in the teacher.
type DescriptorList struct {
	head *Descriptor
	tail *Descriptor
}

// Append adds d at the tail of the list.
func (l *DescriptorList) Append(d *Descriptor) {
	if l.head == nil {
		l.head = d
		l.tail = d
		return
	}
	l.tail.next = d
	l.tail = d
}

// Head returns the first descriptor in the list, or nil if empty.
func (l *DescriptorList) Head() *Descriptor {
	return l.head
}

// Len returns the number of descriptors in the list.
func (l *DescriptorList) Len() int {
	n := 0
	for d := l.head; d != nil; d = d.next {
		n++
	}
	return n
}

// Slice returns the descriptors in insertion order. Useful for range loops;
// the list itself stays the authoritative, append-order storage.
func (l *DescriptorList) Slice() []*Descriptor {
	o := make([]*Descriptor, 0, l.Len())
	for d := l.head; d != nil; d = d.next {
		o = append(o, d)
	}
	return o
}

// DeleteAll releases every node in the list, leaving it empty. In Go this is
// just dropping the references for the garbage collector; kept as a named
// operation so callers that mirror the C lifecycle (empty_vct, detach) read
// the same way.
func (l *DescriptorList) DeleteAll() {
	l.head = nil
	l.tail = nil
}
