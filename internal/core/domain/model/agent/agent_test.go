package agent_test

import (
	"testing"

	"bazaarlink/internal/core/domain/model/agent"
	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAgent(t *testing.T) *agent.Agent {
	t.Helper()
	a, err := agent.NewAgent(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	return a
}

func TestNewAgent(t *testing.T) {
	t.Run("starts active with no position", func(t *testing.T) {
		a := testAgent(t)

		assert.True(t, a.IsActive())
		assert.Nil(t, a.Position())
		require.NoError(t, a.Validate())
	})

	t.Run("rejects zero identifiers", func(t *testing.T) {
		_, err := agent.NewAgent(kernel.UUID{}, kernel.NewUUID())
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = agent.NewAgent(kernel.NewUUID(), kernel.UUID{})
		require.Error(t, err)
	})
}

func TestAgent_Validate_ZeroValue(t *testing.T) {
	var a agent.Agent
	require.ErrorIs(t, a.Validate(), agent.ErrAgentIsNotConstructed)

	var nilAgent *agent.Agent
	require.ErrorIs(t, nilAgent.Validate(), agent.ErrAgentIsNotConstructed)
}

func TestAgent_ActivateDeactivate(t *testing.T) {
	a := testAgent(t)

	a.Deactivate()
	assert.False(t, a.IsActive())

	a.Activate()
	assert.True(t, a.IsActive())
}

func TestAgent_UpdatePosition(t *testing.T) {
	t.Run("records latest position", func(t *testing.T) {
		a := testAgent(t)

		p, err := kernel.NewGeoPoint(12.9716, 77.5946)
		require.NoError(t, err)
		require.NoError(t, a.UpdatePosition(p))

		require.NotNil(t, a.Position())
		positionEqual, err := a.Position().IsEqual(p)
		require.NoError(t, err)
		assert.True(t, positionEqual)
	})

	t.Run("rejects unset position", func(t *testing.T) {
		a := testAgent(t)
		require.Error(t, a.UpdatePosition(kernel.GeoPoint{}))
		assert.Nil(t, a.Position())
	})
}

func TestAgent_CanAccept(t *testing.T) {
	tests := []struct {
		name             string
		active           bool
		activeDeliveries int
		expected         bool
	}{
		{"idle active agent", true, 0, true},
		{"one below the cap", true, agent.MaxActiveDeliveries - 1, true},
		{"at the cap", true, agent.MaxActiveDeliveries, false},
		{"above the cap", true, agent.MaxActiveDeliveries + 1, false},
		{"inactive agent is never eligible", false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testAgent(t)
			if !tt.active {
				a.Deactivate()
			}
			assert.Equal(t, tt.expected, a.CanAccept(tt.activeDeliveries))
		})
	}
}

func TestRestoreAgent(t *testing.T) {
	t.Run("restores inactive agent with position", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(12.9, 77.6)
		require.NoError(t, err)

		a, err := agent.RestoreAgent(kernel.NewUUID(), kernel.NewUUID(), false, &p)
		require.NoError(t, err)
		assert.False(t, a.IsActive())
		positionEqual, err := a.Position().IsEqual(p)
		require.NoError(t, err)
		assert.True(t, positionEqual)
	})

	t.Run("rejects invalid position", func(t *testing.T) {
		_, err := agent.RestoreAgent(kernel.NewUUID(), kernel.NewUUID(), true, &kernel.GeoPoint{})
		require.Error(t, err)
	})
}
