package connection

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/tilewire/pkg/core/connector"
	"github.com/matzehuels/tilewire/pkg/errors"
)

func TestNewRecord(t *testing.T) {
	r := NewRecord("a", connector.Right, "b", connector.Left)
	assert.Len(t, r.ID, 32)
	assert.NotContains(t, r.ID, "-")
	assert.NotEqual(t, r.ID, r.SyncID)
	assert.Equal(t, 1.0, r.Opacity)
	assert.Equal(t, Bezier, r.RoutingMode)
	assert.Equal(t, ArrowTo, r.ConnectionType)
	assert.NoError(t, r.Validate())
}

func TestUpdateSyncID(t *testing.T) {
	r := NewRecord("a", connector.Right, "b", connector.Left)
	old := r.SyncID
	got := r.UpdateSyncID()
	assert.Equal(t, got, r.SyncID)
	assert.NotEqual(t, old, r.SyncID)
}

func TestMatches(t *testing.T) {
	r := NewRecord("a", connector.Right, "b", connector.Left)
	other := NewRecord("a", connector.Right, "b", connector.Left)
	other.Color = "#123456"
	assert.True(t, r.Matches(other), "ids and styling are ignored")

	other.ToOrientation = connector.Top
	assert.False(t, r.Matches(other))
}

func TestRecordValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Record)
		code   errors.Code
	}{
		{"missing id", func(r *Record) { r.ID = "" }, errors.ErrCodeInvalidRecord},
		{"missing from", func(r *Record) { r.FromNodeID = "" }, errors.ErrCodeInvalidRecord},
		{"opacity too high", func(r *Record) { r.Opacity = 1.5 }, errors.ErrCodeInvalidRecord},
		{"bad colour", func(r *Record) { r.Color = "red" }, errors.ErrCodeInvalidRecord},
		{"slash in id", func(r *Record) { r.ToNodeID = "a/b" }, errors.ErrCodeInvalidRecord},
		{"no side", func(r *Record) { r.FromOrientation = connector.None }, errors.ErrCodeInvalidOrientation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecord("a", connector.Right, "b", connector.Left)
			tt.modify(&r)
			err := r.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestRecordDecodingDefaults(t *testing.T) {
	const doc = `{"id":"c1","from":"a","to":"b","from_side":"right","to_side":"left"}`
	var r Record
	require.NoError(t, json.Unmarshal([]byte(doc), &r))
	assert.Equal(t, 1.0, r.Opacity)
	assert.Equal(t, Bezier, r.RoutingMode)
	assert.Equal(t, ArrowTo, r.ConnectionType)
	assert.Equal(t, connector.Right, r.FromOrientation)

	var y Record
	require.NoError(t, yaml.Unmarshal([]byte("id: c1\nfrom: a\nto: b\nfrom_side: top\nto_side: bottom\nrouting: routed\n"), &y))
	assert.Equal(t, 1.0, y.Opacity)
	assert.Equal(t, Routed, y.RoutingMode)
	assert.Equal(t, connector.Bottom, y.ToOrientation)

	var explicit Record
	require.NoError(t, json.Unmarshal([]byte(`{"id":"c1","from":"a","to":"b","opacity":0.25,"type":"none"}`), &explicit))
	assert.Equal(t, 0.25, explicit.Opacity)
	assert.Equal(t, ArrowNone, explicit.ConnectionType)
}

func TestRecordEncoding(t *testing.T) {
	r := NewRecord("a", connector.Right, "b", connector.Left)
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"from_side":"right"`)
	assert.Contains(t, string(b), `"type":"arrow-to"`)
	assert.Contains(t, string(b), `"routing":"bezier"`)
}

func TestParseEnums(t *testing.T) {
	ct, err := ParseConnectionType("Arrow-To-And-From")
	require.NoError(t, err)
	assert.Equal(t, ArrowToAndFrom, ct)
	assert.True(t, ct.HasArrowTo())
	assert.True(t, ct.HasArrowFrom())

	_, err = ParseConnectionType("sideways")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidRecord))

	m, err := ParseRoutingMode("")
	require.NoError(t, err)
	assert.Equal(t, RoutingNone, m)

	_, err = ParseRoutingMode("spline")
	assert.Error(t, err)
}
