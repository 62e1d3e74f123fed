package emx

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// Every fixed descriptor must decode to exactly the wire size the format
// mandates. The same table is verified at startup; this keeps the failure
// readable when a struct drifts.
func TestDescriptorSizes(t *testing.T) {
	for _, d := range descriptor_sizes {
		require.Equal(t, d.size, binary.Size(d.blob), "descriptor %s", d.name)
	}
}

func TestHeaderIsTwentyBytes(t *testing.T) {
	require.Equal(t, HEADER_SIZE, binary.Size(Header{}))
}
