package storescu

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dicomerrors "github.com/caio-sobreiro/dicomsend/errors"
	"github.com/caio-sobreiro/dicomsend/metrics"
	"github.com/caio-sobreiro/dicomsend/types"
)

func losslessCodecs() *CodecRegistry {
	codecs := NewCodecRegistry()
	codecs.Register(types.JPEGLosslessSV1, types.ExplicitVRLittleEndian, func(data []byte) ([]byte, error) {
		return data, nil
	})
	return codecs
}

func TestPlan_Channels(t *testing.T) {
	l := newTestList(ListOptions{})
	a := memoryEntry(l, types.CTImageStorage, "1.2.3.1", types.ExplicitVRLittleEndian)
	b := memoryEntry(l, types.CTImageStorage, "1.2.3.2", types.ImplicitVRLittleEndian)
	c := memoryEntry(l, types.CTImageStorage, "1.2.3.3", types.JPEGLosslessSV1)
	d := memoryEntry(l, types.MRImageStorage, "1.2.3.4", types.ExplicitVRBigEndian)
	e := memoryEntry(l, types.CTImageStorage, "1.2.3.5", types.JPEGLosslessSV1)

	p := &Planner{Decompression: DecompressLosslessOnly, Codecs: losslessCodecs(), Logger: quietLogger}
	f := &fakeAssociation{}
	outcome, err := p.Plan(l, f)
	require.NoError(t, err)

	assert.Equal(t, PlanOutcome{Channels: 3, Planned: 5}, outcome)
	assert.False(t, outcome.NothingToPlan())

	assert.Equal(t, byte(1), a.ChannelID)
	assert.Equal(t, byte(1), b.ChannelID, "native encodings of one class share a context")
	assert.Equal(t, byte(3), c.ChannelID)
	assert.Equal(t, byte(5), d.ChannelID)
	assert.Equal(t, byte(3), e.ChannelID, "identical compressed syntax shares a context")

	require.Len(t, f.proposals, 3)
	assert.Equal(t, types.UncompressedTransferSyntaxes(), f.proposals[0].syntaxes)
	assert.Equal(t, []string{
		types.JPEGLosslessSV1,
		types.ExplicitVRLittleEndian,
		types.ExplicitVRBigEndian,
		types.ImplicitVRLittleEndian,
	}, f.proposals[1].syntaxes)
	assert.Equal(t, types.MRImageStorage, f.proposals[2].abstract)
}

func TestPlan_ContextBudget(t *testing.T) {
	l := newTestList(ListOptions{})
	for i := 0; i < 200; i++ {
		memoryEntry(l, fmt.Sprintf("1.2.3.99.%d", i), fmt.Sprintf("1.2.3.%d", i), types.ExplicitVRLittleEndian)
	}
	p := &Planner{Logger: quietLogger}
	outcome, err := p.Plan(l, &fakeAssociation{})
	require.NoError(t, err)
	assert.Equal(t, MaxPresentationContexts, outcome.Channels)
	assert.Equal(t, MaxPresentationContexts, outcome.Planned)

	planned, deferred := 0, 0
	for _, e := range l.Entries() {
		if e.ChannelID != 0 {
			planned++
		} else {
			deferred++
		}
	}
	assert.Equal(t, 128, planned)
	assert.Equal(t, 72, deferred, "walk stops at the budget to keep list order")
	assert.Equal(t, byte(255), l.Entry(127).ChannelID)
}

func TestPlan_ContextBudgetStopsBeforeReuse(t *testing.T) {
	l := newTestList(ListOptions{})
	for i := 0; i < MaxPresentationContexts; i++ {
		memoryEntry(l, fmt.Sprintf("1.2.3.99.%d", i), fmt.Sprintf("1.2.3.%d", i), types.ExplicitVRLittleEndian)
	}
	// its class already has a context, but the budget is spent
	late := memoryEntry(l, "1.2.3.99.0", "1.2.3.1000", types.ExplicitVRLittleEndian)
	late.ChannelID = 7

	outcome, err := (&Planner{Logger: quietLogger}).Plan(l, &fakeAssociation{})
	require.NoError(t, err)
	assert.Equal(t, PlanOutcome{Channels: MaxPresentationContexts, Planned: MaxPresentationContexts}, outcome)
	assert.Equal(t, byte(1), l.Entry(0).ChannelID)
	assert.Zero(t, late.ChannelID)
	assert.False(t, late.Sent)
}

func TestPlan_SkippedObjectsCounted(t *testing.T) {
	l := newTestList(ListOptions{})
	lossy := memoryEntry(l, types.CTImageStorage, "1.2.3.1", types.JPEGBaseline8Bit)
	memoryEntry(l, types.CTImageStorage, "1.2.3.2", types.ExplicitVRLittleEndian)

	pending := testutil.ToFloat64(metrics.ObjectsTotal.WithLabelValues(types.ClassifyStatus(types.StatusNoPresentationContext).String()))

	p := &Planner{Decompression: DecompressNever, Logger: quietLogger}
	outcome, err := p.Plan(l, &fakeAssociation{})
	require.NoError(t, err)
	assert.Equal(t, PlanOutcome{Channels: 1, Planned: 1}, outcome)
	assert.Equal(t, uint16(types.StatusNoPresentationContext), lossy.Status)
	assert.Equal(t, pending+1, testutil.ToFloat64(metrics.ObjectsTotal.WithLabelValues(types.ClassifyStatus(types.StatusNoPresentationContext).String())))
}

func TestPlan_SkipsSentAndStartsAtCursor(t *testing.T) {
	l := newTestList(ListOptions{})
	first := memoryEntry(l, types.CTImageStorage, "1.2.3.1", types.ExplicitVRLittleEndian)
	sent := memoryEntry(l, types.MRImageStorage, "1.2.3.2", types.ExplicitVRLittleEndian)
	pending := memoryEntry(l, types.CTImageStorage, "1.2.3.3", types.ExplicitVRLittleEndian)
	first.ChannelID = 9
	sent.Sent = true
	sent.ChannelID = 7
	l.cursor = 1

	f := &fakeAssociation{}
	outcome, err := (&Planner{Logger: quietLogger}).Plan(l, f)
	require.NoError(t, err)
	assert.Equal(t, PlanOutcome{Channels: 1, Planned: 1}, outcome)
	assert.Equal(t, byte(9), first.ChannelID, "entries before the cursor are untouched")
	assert.Equal(t, byte(7), sent.ChannelID)
	assert.Equal(t, byte(1), pending.ChannelID)
}

func TestPlan_NothingPending(t *testing.T) {
	l := newTestList(ListOptions{})
	f := &fakeAssociation{proposals: []proposal{{id: 1}}}
	outcome, err := (&Planner{Logger: quietLogger}).Plan(l, f)
	require.NoError(t, err)
	assert.True(t, outcome.NothingToPlan())
	assert.Empty(t, f.proposals, "previous proposals are cleared")
}

func TestPlan_CompressedPolicies(t *testing.T) {
	tests := []struct {
		name      string
		planner   Planner
		syntax    string
		proposed  []string
		notSent   bool
		wantError bool
	}{
		{
			name:     "lossless with codec",
			planner:  Planner{Decompression: DecompressLosslessOnly, Codecs: losslessCodecs()},
			syntax:   types.JPEGLosslessSV1,
			proposed: append([]string{types.JPEGLosslessSV1}, types.UncompressedTransferSyntaxes()...),
		},
		{
			name:    "lossless without codec",
			planner: Planner{Decompression: DecompressLosslessOnly, Codecs: NewCodecRegistry()},
			syntax:  types.JPEGLosslessSV1,
			notSent: true,
		},
		{
			name:    "decompression never",
			planner: Planner{Decompression: DecompressNever, Codecs: losslessCodecs()},
			syntax:  types.JPEGLosslessSV1,
			notSent: true,
		},
		{
			name:    "lossy under lossless only",
			planner: Planner{Decompression: DecompressLosslessOnly, Codecs: losslessCodecs()},
			syntax:  types.JPEGBaseline8Bit,
			notSent: true,
		},
		{
			name:     "illegal proposal allowed",
			planner:  Planner{Decompression: DecompressNever, AllowIllegalProposals: true},
			syntax:   types.JPEGBaseline8Bit,
			proposed: []string{types.JPEGBaseline8Bit},
		},
		{
			name:      "halt on unsupported",
			planner:   Planner{Decompression: DecompressNever, HaltOnUnsuccessfulStore: true},
			syntax:    types.JPEGBaseline8Bit,
			wantError: true,
		},
		{
			name:      "deflated always fails",
			planner:   Planner{Decompression: DecompressLossyAndLossless, AllowIllegalProposals: true},
			syntax:    types.DeflatedExplicitVRLittleEndian,
			wantError: true,
		},
		{
			name:     "unknown syntax proposed as is",
			planner:  Planner{},
			syntax:   "1.2.3.4.5.6",
			proposed: []string{"1.2.3.4.5.6"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestList(ListOptions{})
			entry := memoryEntry(l, types.CTImageStorage, "1.2.3.1", tt.syntax)
			other := memoryEntry(l, types.MRImageStorage, "1.2.3.2", types.ExplicitVRLittleEndian)

			p := tt.planner
			p.Logger = quietLogger
			f := &fakeAssociation{}
			_, err := p.Plan(l, f)

			if tt.wantError {
				require.Error(t, err)
				var encErr *dicomerrors.UnsupportedEncodingError
				assert.ErrorAs(t, err, &encErr)
				assert.ErrorIs(t, err, dicomerrors.ErrUnsupportedTransfer)
				assert.False(t, entry.Sent)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, other.ChannelID, "later entries are still planned")

			if tt.notSent {
				assert.True(t, entry.Sent)
				assert.Equal(t, uint16(types.StatusNoPresentationContext), entry.Status)
				assert.Zero(t, entry.ChannelID)
				require.Len(t, f.proposals, 1)
				return
			}
			require.Len(t, f.proposals, 2)
			assert.Equal(t, tt.proposed, f.proposals[0].syntaxes)
			assert.Equal(t, byte(1), entry.ChannelID)
		})
	}
}

func TestParseDecompressionMode(t *testing.T) {
	for _, s := range []string{"never", "lossless", "lossy"} {
		mode, err := ParseDecompressionMode(s)
		require.NoError(t, err)
		assert.Equal(t, s, mode.String())
	}
	mode, err := ParseDecompressionMode("")
	require.NoError(t, err)
	assert.Equal(t, DecompressLosslessOnly, mode)

	_, err = ParseDecompressionMode("sometimes")
	assert.Error(t, err)
}

func TestCodecRegistry(t *testing.T) {
	codecs := losslessCodecs()
	assert.True(t, codecs.CanTranscode(types.ImplicitVRLittleEndian, types.ExplicitVRBigEndian))
	assert.True(t, codecs.CanTranscode(types.JPEGLosslessSV1, types.ExplicitVRLittleEndian))
	assert.False(t, codecs.CanTranscode(types.JPEGLosslessSV1, types.ImplicitVRLittleEndian))
	assert.True(t, canDecompress(codecs, types.JPEGLosslessSV1))
	assert.False(t, canDecompress(codecs, types.JPEGBaseline8Bit))

	_, err := codecs.Transcode([]byte{1}, types.JPEGBaseline8Bit, types.ExplicitVRLittleEndian)
	assert.ErrorIs(t, err, dicomerrors.ErrUnsupportedTransfer)

	out, err := codecs.Transcode([]byte{1, 2}, types.JPEGLosslessSV1, types.JPEGLosslessSV1)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, out)
}
