package dataset

import (
	"testing"

	"github.com/grailbio/hts/sam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDescription(t *testing.T) {
	rg := ParseDescription("4f1e", "READTYPE=SUBREAD;BINDINGKIT=100356300;SEQUENCINGKIT=100356200;"+
		"BASECALLERVERSION=2.3.0.3.154799;InsertionQV=iq;DeletionQV=dq;Ipd:CodecV1=ip;PulseWidth:Frames=pw;FRAMERATEHZ=75.0")
	assert.Equal(t, "4f1e", rg.ID)
	assert.Equal(t, "SUBREAD", rg.ReadType)
	assert.Equal(t, "100356300", rg.BindingKit)
	assert.Equal(t, "100356200", rg.SequencingKit)
	assert.Equal(t, "2.3.0.3.154799", rg.BasecallerVersion)
	assert.True(t, rg.HasBaseFeature(IPD))
	assert.True(t, rg.HasBaseFeature(PulseWidth))
	assert.Equal(t, "pw", rg.Features[PulseWidth])
	assert.True(t, rg.HasBaseFeature(InsertionQV))
	assert.Equal(t, "dq", rg.Features[DeletionQV])
	assert.False(t, rg.HasBaseFeature(SubstitutionQV))
	// Unknown bare keys are not base features.
	assert.False(t, rg.HasBaseFeature("FRAMERATEHZ"))

	chem, err := rg.SequencingChemistry()
	require.NoError(t, err)
	assert.Equal(t, "P6-C4", chem)
}

func TestParseDescriptionMalformed(t *testing.T) {
	rg := ParseDescription("x", "garbage;;=;Foo=ip;:CodecV1=zz")
	assert.Equal(t, "x", rg.ID)
	assert.Empty(t, rg.Features)
}

func TestParseDescriptionQVFeatures(t *testing.T) {
	rg := ParseDescription("x", "READTYPE=SUBREAD;DeletionQV=dq;InsertionQV=iq;SubstitutionQV=sq;Ipd:CodecV1=ip")
	assert.True(t, rg.HasBaseFeature(DeletionQV))
	assert.True(t, rg.HasBaseFeature(InsertionQV))
	assert.True(t, rg.HasBaseFeature(SubstitutionQV))
	assert.True(t, rg.HasBaseFeature(IPD))
	assert.False(t, rg.HasBaseFeature(PulseWidth))
	assert.Equal(t, "sq", rg.Features[SubstitutionQV])
}

func TestSequencingChemistry(t *testing.T) {
	for _, test := range []struct {
		bk, sk, bc string
		want       string
	}{
		{"100372700", "100612400", "2.1.0", "P6-C4"},
		{"100-619-300", "100-620-000", "3.0.17", "S/P1-C1/beta"},
		{"100-619-300", "100-867-300", "3.2.0.1", "S/P1-C1.1"},
		{"100-862-200", "101-093-700", "4.0", "S/P2-C2"},
	} {
		got, err := SequencingChemistry(test.bk, test.sk, test.bc)
		require.NoError(t, err)
		assert.Equal(t, test.want, got)
	}
	_, err := SequencingChemistry("100356300", "100356200", "1.4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported chemistry")

	assert.False(t, RequiresCovariates("P6-C4"))
	assert.False(t, RequiresCovariates("S/P1-C1/beta"))
	assert.True(t, RequiresCovariates("S/P2-C2"))
}

func TestNewReadGroup(t *testing.T) {
	h, err := sam.NewHeader([]byte("@HD\tVN:1.5\n"+
		"@RG\tID:abc\tPL:PACBIO\tDS:READTYPE=SUBREAD;BINDINGKIT=100-862-200;SEQUENCINGKIT=100-861-800;BASECALLERVERSION=4.0.0;Ipd:CodecV1=ip\n"), nil)
	require.NoError(t, err)
	require.Len(t, h.RGs(), 1)
	rg := NewReadGroup(h.RGs()[0])
	assert.Equal(t, "abc", rg.ID)
	assert.True(t, rg.HasBaseFeature(IPD))
	assert.False(t, rg.HasBaseFeature(PulseWidth))
}
