package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
)

func TestExpandValues(t *testing.T) {
	opts := directory.Options{
		Bransch:   []string{"Fintech", "FoodTech", "Hälsa & Sjukvård", "Industri"},
		Anstallda: []string{"1-9", "10-49", "50-249"},
	}

	tests := []struct {
		name    string
		dim     directory.Dimension
		in      []string
		want    []string
		wantErr bool
	}{
		{name: "literal", dim: directory.DimBransch, in: []string{"Okänd"}, want: []string{"Okänd"}},
		{name: "prefix glob", dim: directory.DimBransch, in: []string{"f*"}, want: []string{"Fintech", "FoodTech"}},
		{name: "dedupe", dim: directory.DimBransch, in: []string{"Fintech", "Fin*"}, want: []string{"Fintech"}},
		{name: "alternation", dim: directory.DimAnstallda, in: []string{"{1-9,10-49}"}, want: []string{"1-9", "10-49"}},
		{name: "tillampning fixed list", dim: directory.DimTillampning, in: []string{"visuell*"}, want: []string{"Visuell AI"}},
		{name: "no match", dim: directory.DimBransch, in: []string{"x*"}, wantErr: true},
		{name: "invalid pattern", dim: directory.DimBransch, in: []string{"[a"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandValues(opts, tt.dim, tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
