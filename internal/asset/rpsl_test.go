package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRPSL = `as-set:         AS-EXAMPLE
descr:          Example network
                customer cone
members:        AS64500, AS64501
members:        AS-CUSTOMERS
admin-c:        EX123-ARIN
tech-c:         EX123-ARIN
remarks:        generated nightly
mnt-by:         MNT-EXAMPLE
source:         ARIN
`

func TestDecodeRPSL(t *testing.T) {
	set, err := DecodeRPSL([]byte(sampleRPSL))
	require.NoError(t, err)

	assert.Equal(t, "AS-EXAMPLE", set.Name)
	assert.Equal(t, "Example network customer cone", set.Description)
	assert.Equal(t, []string{"generated nightly"}, set.Remarks)
	assert.Equal(t, "MNT-EXAMPLE", set.Maintainer)
	assert.Equal(t, []string{"AS64500", "AS64501", "AS-CUSTOMERS"}, set.MemberNames())
	for _, m := range set.Members {
		assert.False(t, m.Flat)
	}
}

func TestDecodeRPSLRejectsOtherObjects(t *testing.T) {
	_, err := DecodeRPSL([]byte("route-set: RS-EXAMPLE\nmembers: 192.0.2.0/24\n"))
	assert.Error(t, err)

	_, err = DecodeRPSL([]byte("% comment only\n"))
	assert.Error(t, err)
}

func TestEncodeRPSL(t *testing.T) {
	set := &ASSet{
		Name:        "AS-EXAMPLE",
		Description: "Example network",
		Maintainer:  "MNT-EXAMPLE",
		Source:      "ARIN",
		Members: []MemberSpec{
			NewMemberSpec("AS64500"),
			{Name: "AS-CUSTOMERS", Flat: true, Depth: 1},
		},
	}

	out := string(EncodeRPSL(set))
	assert.Contains(t, out, "as-set:         AS-EXAMPLE")
	assert.Contains(t, out, "members:        AS64500, AS-CUSTOMERS")
	assert.Contains(t, out, "source:         ARIN")

	// annotations are a configuration-format concern and must not leak
	assert.NotContains(t, out, "flat")

	decoded, err := DecodeRPSL([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, set.MemberNames(), decoded.MemberNames())
}
