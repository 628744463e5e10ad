package kernel_test

import (
	"testing"

	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		wantErr   bool
	}{
		{"valid point", 12.9716, 77.5946, false},
		{"equator and prime meridian", 0, 0, false},
		{"latitude at max bound", 90, 0, false},
		{"latitude at min bound", -90, 0, false},
		{"longitude at max bound", 0, 180, false},
		{"longitude at min bound", 0, -180, false},
		{"latitude too high", 90.0001, 0, true},
		{"latitude too low", -91, 0, true},
		{"longitude too high", 0, 180.5, true},
		{"longitude too low", 0, -181, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := kernel.NewGeoPoint(tt.latitude, tt.longitude)
			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.latitude, p.Latitude())
			assert.Equal(t, tt.longitude, p.Longitude())
			require.NoError(t, p.Validate())
		})
	}

	t.Run("both coordinates invalid reports both", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(100, 200)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})
}

func TestGeoPoint_Validate_ZeroValue(t *testing.T) {
	var p kernel.GeoPoint

	require.Error(t, p.Validate())
	require.ErrorIs(t, p.Validate(), errs.ErrValueIsRequired)
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	t.Run("distance to self is zero", func(t *testing.T) {
		points := [][2]float64{
			{0, 0},
			{12.9716, 77.5946},
			{-33.8688, 151.2093},
			{89.9, -179.9},
		}

		for _, coords := range points {
			p, err := kernel.NewGeoPoint(coords[0], coords[1])
			require.NoError(t, err)

			d, err := p.DistanceKm(p)
			require.NoError(t, err)
			assert.Zero(t, d)
		}
	})

	t.Run("is symmetric", func(t *testing.T) {
		a, err := kernel.NewGeoPoint(12.9716, 77.5946)
		require.NoError(t, err)
		b, err := kernel.NewGeoPoint(13.0827, 80.2707)
		require.NoError(t, err)

		ab, err := a.DistanceKm(b)
		require.NoError(t, err)
		ba, err := b.DistanceKm(a)
		require.NoError(t, err)

		assert.InEpsilon(t, ab, ba, 1e-9)
	})

	t.Run("matches known haversine values", func(t *testing.T) {
		tests := []struct {
			name     string
			from     [2]float64
			to       [2]float64
			expected float64
			delta    float64
		}{
			// One degree of latitude along a meridian: R * pi/180.
			{"one degree latitude", [2]float64{0, 0}, [2]float64{1, 0}, 111.1949, 1e-3},
			// Quarter turn along the equator: R * pi/2.
			{"equator quarter turn", [2]float64{0, 0}, [2]float64{0, 90}, 10007.5434, 1e-3},
			// Bangalore to Chennai, ~290 km.
			{"bangalore to chennai", [2]float64{12.9716, 77.5946}, [2]float64{13.0827, 80.2707}, 290.2, 0.5},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				a, err := kernel.NewGeoPoint(tt.from[0], tt.from[1])
				require.NoError(t, err)
				b, err := kernel.NewGeoPoint(tt.to[0], tt.to[1])
				require.NoError(t, err)

				d, err := a.DistanceKm(b)
				require.NoError(t, err)
				assert.InDelta(t, tt.expected, d, tt.delta)
			})
		}
	})

	t.Run("unconstructed point fails", func(t *testing.T) {
		a, err := kernel.NewGeoPoint(1, 1)
		require.NoError(t, err)

		var zero kernel.GeoPoint
		_, err = a.DistanceKm(zero)
		require.Error(t, err)
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	a, err := kernel.NewGeoPoint(10, 20)
	require.NoError(t, err)
	b, err := kernel.NewGeoPoint(10, 20)
	require.NoError(t, err)
	c, err := kernel.NewGeoPoint(10, 21)
	require.NoError(t, err)

	equal, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, equal)
}

func TestGeoPoint_String(t *testing.T) {
	p, err := kernel.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)

	assert.Equal(t, "GeoPoint(12.971600,77.594600)", p.String())
}
