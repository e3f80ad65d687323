package storescu

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caio-sobreiro/dicomsend/types"
)

// sentList builds a list whose entries carry the given statuses. A negative
// status leaves the entry unsent.
func sentList(statuses ...int) *TransferList {
	l := newTestList(ListOptions{})
	for i, status := range statuses {
		e := memoryEntry(l, types.CTImageStorage, fmt.Sprintf("1.2.3.%d", i+1), types.ExplicitVRLittleEndian)
		if status < 0 {
			continue
		}
		e.Sent = true
		e.Status = uint16(status)
		e.Session = 1
		e.ChannelID = 1
		e.NetworkTransferSyntax = types.ExplicitVRLittleEndian
		e.Size = 1536
	}
	return l
}

func TestSummarize(t *testing.T) {
	l := sentList(
		types.StatusSuccess,
		types.StatusStoreWarningCoercionOfDataElements,
		types.StatusStoreErrorCannotUnderstand,
		types.StatusStoreRefusedOutOfResources,
		types.StatusNoPresentationContext,
		0x0F00,
		-1,
	)

	s := Summarize(l)
	assert.Equal(t, Summary{
		Total:   7,
		Sent:    6,
		NotSent: 1,
		Success: 1,
		Warning: 1,
		Failed:  1,
		Refused: 1,
		Pending: 1,
		Unknown: 1,
	}, s)
	assert.False(t, s.Successful())
	assert.Contains(t, s.String(), "7 objects: 6 sent")

	assert.True(t, Summarize(sentList(types.StatusSuccess, types.StatusStoreWarningElementsDiscarded)).Successful())
	assert.False(t, Summarize(sentList(types.StatusSuccess, -1)).Successful())
}

func TestReport_Text(t *testing.T) {
	l := sentList(types.StatusSuccess, -1)
	r := NewReport(l, "STORESCP@pacs:104", nil)

	require.Len(t, r.Records, 2)
	assert.Equal(t, "CT Image Storage", r.Records[0].SOPClassName)
	assert.Equal(t, "Explicit VR Little Endian", r.Records[0].NetworkTransferSyntaxName)
	assert.Equal(t, "Not sent", r.Records[1].StatusText)
	assert.Empty(t, r.Records[1].NetworkTransferSyntaxUID)

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Storage report for STORESCP@pacs:104"))
	assert.Contains(t, out, "SOP INSTANCE")
	assert.Contains(t, out, "CT Image Storage")
	assert.Contains(t, out, "1.5 kB")
	assert.Contains(t, out, "Not sent")
	assert.Contains(t, out, r.Summary.String())
}

func TestReport_YAML(t *testing.T) {
	registry := types.NewRegistry()
	l := sentList(types.StatusStoreRefusedOutOfResources, types.StatusSuccess)
	r := NewReport(l, "pacs:104", registry)

	var buf bytes.Buffer
	require.NoError(t, r.WriteYAML(&buf))
	assert.Contains(t, buf.String(), "sop_instance_uid: 1.2.3.1")

	got, err := ReadYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, r.Peer, got.Peer)
	assert.True(t, r.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, r.Summary, got.Summary)
	assert.Equal(t, r.Records, got.Records)
	assert.Equal(t, uint16(types.StatusStoreRefusedOutOfResources), got.Records[0].Status)
}
