package lockctl

import (
	"testing"

	"github.com/ecol-master/packhouse/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachine_UnlockLock(t *testing.T) {
	tests := []struct {
		name       string
		activeHigh bool
		relayOn    output.Level
	}{
		{name: "active-high relay", activeHigh: true, relayOn: output.High},
		{name: "active-low relay", activeHigh: false, relayOn: output.Low},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := output.NewRecorder(false)
			m := newMachine(rec, &Pins{GreenLED: 2, RedLED: 3, Relay: 5, RelayActiveHigh: tt.activeHigh})

			m.Controller.Unlock()
			assert.Equal(t, []output.Write{
				{Pin: 5, Level: tt.relayOn},
				{Pin: 2, Level: output.Low},
			}, rec.Writes())

			rec.Reset()
			m.Controller.Lock()
			assert.Equal(t, []output.Write{
				{Pin: 5, Level: !tt.relayOn},
				{Pin: 2, Level: output.High},
			}, rec.Writes())

			assert.Zero(t, rec.Count(3), "red LED is not driven")
			assert.NoError(t, m.Close())
		})
	}
}

func TestNewMachine_DummyDriver(t *testing.T) {
	cfg := NewConfig()
	cfg.Driver = "dummy"

	m, err := NewMachine(cfg)
	require.NoError(t, err)
	defer m.Close() //nolint:errcheck

	rec, ok := m.Writer.(*output.Recorder)
	require.True(t, ok)

	m.Controller.Unlock()
	assert.Equal(t, []output.Write{
		{Pin: 22, Level: output.High},
		{Pin: 17, Level: output.Low},
	}, rec.Writes())
	assert.Equal(t, "machine (green led:17, red led:27, relay:22)", m.String())
}

func TestNewMachine_Errors(t *testing.T) {
	cfg := NewConfig()
	cfg.Driver = "carrier-pigeon"
	_, err := NewMachine(cfg)
	assert.ErrorIs(t, err, ErrDriverFailed)

	cfg = NewConfig()
	cfg.Driver = "dummy"
	cfg.Relay = "nowhere"
	_, err = NewMachine(cfg)
	assert.ErrorIs(t, err, ErrInvalidPin)
}
