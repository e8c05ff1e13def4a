package kernel

import (
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/require"
)

func TestDict_MarshalJSONPreservesOrder(t *testing.T) {
	d := NewDict().
		Set("integrator", NewDict().Set("type", "path")).
		Set("measure", NewDict().Set("type", "mdistant")).
		Set("albedo", 0.5)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"integrator": {"type": "path"},
		"measure": {"type": "mdistant"},
		"albedo": 0.5
	}`, string(data))

	// Key order is the insertion order, not alphabetical
	require.Equal(t, `{"integrator":{"type":"path"},"measure":{"type":"mdistant"},"albedo":0.5}`, string(data))
}

func TestRef_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(NewRef("phase_atmosphere"))
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"ref","id":"phase_atmosphere"}`, string(data))
}
