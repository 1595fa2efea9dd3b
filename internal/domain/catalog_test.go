package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveService_PlainService(t *testing.T) {
	resolved, err := ResolveService("neumodellage", "")

	require.NoError(t, err)
	assert.Equal(t, "Neumodellage inkl. French Weiß oder Farbe", resolved.Name)
	assert.Equal(t, 90, resolved.DurationMinutes)
	assert.Equal(t, 60.0, resolved.Price)
}

func TestResolveService_Subcategory(t *testing.T) {
	tests := []struct {
		serviceID     string
		subcategoryID string
		wantName      string
		wantDuration  int
		wantPrice     float64
	}{
		{"auffuellen", "auffuellen-babyboomer", "Auffüllen - Babyboomer", 75, 45},
		{"auffuellen", "auffuellen-natur", "Auffüllen - Natur", 60, 40},
		{"abloesen", "abloesen-gel", "Ablösen der Nagelmodellage - Gel", 30, 15},
		{"abloesen", "abloesen-acyl", "Ablösen der Nagelmodellage - Acyl", 45, 20},
		{"manikuere", "manikuere-lack", "Maniküre - mit klarlack/Nagellack", 45, 25},
		{"pedikuere", "pedikuere-french", "Pediküre (Fußbad, Hornhautentfernung, Massage) - mit French", 75, 40},
	}

	for _, tt := range tests {
		t.Run(tt.subcategoryID, func(t *testing.T) {
			resolved, err := ResolveService(tt.serviceID, tt.subcategoryID)

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, resolved.Name)
			assert.Equal(t, tt.wantDuration, resolved.DurationMinutes)
			assert.Equal(t, tt.wantPrice, resolved.Price)
		})
	}
}

func TestResolveService_Errors(t *testing.T) {
	tests := []struct {
		name          string
		serviceID     string
		subcategoryID string
	}{
		{name: "unknown service", serviceID: "nonexistent", subcategoryID: ""},
		{name: "subcategory required", serviceID: "auffuellen", subcategoryID: ""},
		{name: "unknown subcategory", serviceID: "auffuellen", subcategoryID: "wrong"},
		{name: "subcategory on plain service", serviceID: "neumodellage", subcategoryID: "auffuellen-natur"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveService(tt.serviceID, tt.subcategoryID)
			assert.Error(t, err)
		})
	}
}

func TestColorForServiceName(t *testing.T) {
	// Простая услуга без подкатегорий
	color := ColorForServiceName("Neumodellage inkl. French Weiß oder Farbe")
	assert.Equal(t, ServiceColors["neumodellage"], color)

	// Денормализованное имя с подкатегорией
	color = ColorForServiceName("Auffüllen - Natur")
	assert.Equal(t, ServiceColors["auffuellen"], color)

	// Услуга, которой больше нет в каталоге
	color = ColorForServiceName("Altes Angebot")
	assert.Equal(t, DefaultServiceColor, color)
}

func TestEffectiveDuration(t *testing.T) {
	withDuration := &Appointment{DurationMinutes: 75}
	assert.Equal(t, 75, withDuration.EffectiveDuration())

	// Старые записи без длительности считаются 45-минутными
	legacy := &Appointment{}
	assert.Equal(t, DefaultDurationMinutes, legacy.EffectiveDuration())
}
