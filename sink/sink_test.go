package sink

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/janus-pattern/pattern"
)

func TestMemorySinkRecordsEvents(t *testing.T) {
	m := NewMemorySink()
	part := pattern.NewSpan(pattern.Zero, pattern.Half)
	require.NoError(t, m.OnEvent(pattern.ScalarValue(pattern.StringScalar("bd")), nil, part, 1.0, 1.0))
	require.NoError(t, m.OnEvent(pattern.ScalarValue(pattern.StringScalar("sn")), nil, part, 1.5, 1.0))
	m.OnHush()

	events := m.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "bd", events[0].Value.String())
	assert.Equal(t, 1, m.Hushes())
}

func TestLogSinkWritesTable(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSink(&buf)
	part := pattern.NewSpan(pattern.Zero, pattern.One)
	err := s.OnEvent(pattern.ScalarValue(pattern.StringScalar("bd")), nil, part, 0.5, 1.0)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "bd")
}
