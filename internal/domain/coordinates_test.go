package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name string
		a, b Coordinates
		want float64
	}{
		{
			name: "small offset",
			a:    Coordinates{Lat: 10.00, Lon: 20.00},
			b:    Coordinates{Lat: 10.10, Lon: 20.10},
			want: 15.61,
		},
		{
			name: "city scale",
			a:    Coordinates{Lat: 55.75, Lon: 37.62},
			b:    Coordinates{Lat: 55.70, Lon: 37.50},
			want: 9.35,
		},
		{
			name: "same point",
			a:    Coordinates{Lat: 55.75, Lon: 37.62},
			b:    Coordinates{Lat: 55.75, Lon: 37.62},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DistanceKm(tt.a, tt.b))
		})
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	a := Coordinates{Lat: 0, Lon: 0}
	b := Coordinates{Lat: 0, Lon: 0.1}

	assert.Equal(t, DistanceKm(a, b), DistanceKm(b, a))
	assert.Equal(t, 11.12, DistanceKm(a, b))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.24, Round2(1.235))
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, -1.24, Round2(-1.235))
}

func TestRequiredProductIDs(t *testing.T) {
	order := &Order{
		Items: []OrderItem{
			{ProductID: 1, Quantity: 2, Price: 100},
			{ProductID: 2, Quantity: 1, Price: 250},
			{ProductID: 1, Quantity: 3, Price: 100},
		},
	}

	required := order.RequiredProductIDs()
	assert.Len(t, required, 2)
	assert.Contains(t, required, 1)
	assert.Contains(t, required, 2)

	empty := &Order{}
	assert.Empty(t, empty.RequiredProductIDs())
}
