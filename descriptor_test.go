package atscvct

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDescriptorCopiesData(t *testing.T) {
	data := []byte{0x1, 0x2, 0x3}
	d := NewDescriptor(DescriptorTag(0x42), data)

	assert.Equal(t, DescriptorTag(0x42), d.Tag)
	assert.Equal(t, uint8(3), d.Length)
	assert.Equal(t, data, d.Data)

	// Mutating the caller's slice must not affect the descriptor.
	data[0] = 0xff
	assert.Equal(t, byte(0x1), d.Data[0])
}

func TestCanDecodeAs(t *testing.T) {
	d := NewDescriptor(DescriptorTag(0x48), nil)
	assert.True(t, d.CanDecodeAs(0x48))
	assert.False(t, d.CanDecodeAs(0x49))
}

func TestDuplicateDecodedDescriptor(t *testing.T) {
	src := []byte{0xa, 0xb, 0xc}
	dup := DuplicateDecodedDescriptor(src)
	assert.Equal(t, src, dup)

	src[0] = 0x00
	assert.Equal(t, byte(0xa), dup[0])

	assert.Nil(t, DuplicateDecodedDescriptor(nil))
}

func TestDescriptorListAppendOrder(t *testing.T) {
	var l DescriptorList
	assert.Equal(t, 0, l.Len())
	assert.Nil(t, l.Head())

	l.Append(NewDescriptor(1, []byte{0x1}))
	l.Append(NewDescriptor(2, []byte{0x2}))
	l.Append(NewDescriptor(3, []byte{0x3}))

	assert.Equal(t, 3, l.Len())

	tags := make([]DescriptorTag, 0, 3)
	for _, d := range l.Slice() {
		tags = append(tags, d.Tag)
	}
	assert.Equal(t, []DescriptorTag{1, 2, 3}, tags)
	assert.Equal(t, DescriptorTag(1), l.Head().Tag)
}

func TestDescriptorListDeleteAll(t *testing.T) {
	var l DescriptorList
	l.Append(NewDescriptor(1, nil))
	l.Append(NewDescriptor(2, nil))

	l.DeleteAll()

	assert.Equal(t, 0, l.Len())
	assert.Nil(t, l.Head())
}
