package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(errs []ValidationError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "generated manifest",
			doc:  `{"series":[{"id":"001","label":"ID_001","imageBasePath":"./assets/ID_001","images":["a.png","b.png"]}]}`,
			want: []string{},
		},
		{
			name: "pattern series with slices",
			doc:  `{"series":[{"id":"p","label":"P","imagePattern":"img_{index}.png","slices":12}]}`,
			want: []string{},
		},
		{
			name: "single static image",
			doc:  `{"series":[{"id":"s","label":"S","image":"cover.png"}]}`,
			want: []string{},
		},
		{
			name: "invalid json",
			doc:  `{"series":`,
			want: []string{"(root)"},
		},
		{
			name: "series missing",
			doc:  `{"items":[]}`,
			want: []string{"series"},
		},
		{
			name: "series null",
			doc:  `{"series":null}`,
			want: []string{"series"},
		},
		{
			name: "series not an array",
			doc:  `{"series":{}}`,
			want: []string{"series"},
		},
		{
			name: "zero series",
			doc:  `{"series":[]}`,
			want: []string{"series"},
		},
		{
			name: "missing id and label",
			doc:  `{"series":[{"images":["a.png"]}]}`,
			want: []string{"series[0].id", "series[0].label"},
		},
		{
			name: "bad image entries",
			doc:  `{"series":[{"id":"1","label":"1","images":["a.png","",3]}]}`,
			want: []string{"series[0].images[1]", "series[0].images[2]"},
		},
		{
			name: "no image source",
			doc:  `{"series":[{"id":"1","label":"1","images":[]}]}`,
			want: []string{"series[0]"},
		},
		{
			name: "slices mismatch",
			doc:  `{"series":[{"id":"1","label":"1","images":["a.png"],"slices":2}]}`,
			want: []string{"series[0].slices"},
		},
		{
			name: "slices as numeric string mismatch",
			doc:  `{"series":[{"id":"a","label":"a","images":["x.png","y.png"],"slices":"3"}]}`,
			want: []string{"series[0].slices"},
		},
		{
			name: "slices as numeric string match",
			doc:  `{"series":[{"id":"a","label":"a","images":["x.png","y.png"],"slices":" 2 "}]}`,
			want: []string{},
		},
		{
			name: "pattern with string slices",
			doc:  `{"series":[{"id":"p","label":"P","imagePattern":"img_{index}.png","slices":"12"}]}`,
			want: []string{},
		},
		{
			name: "pattern with non-numeric slices",
			doc:  `{"series":[{"id":"p","label":"P","imagePattern":"img_{index}.png","slices":"twelve"}]}`,
			want: []string{"series[0].slices"},
		},
		{
			name: "pattern without slices",
			doc:  `{"series":[{"id":"1","label":"1","imagePattern":"x_{index}.png"}]}`,
			want: []string{"series[0].slices"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fields(Validate([]byte(tt.doc))))
		})
	}
}

func TestValidate_ZeroSeriesMessage(t *testing.T) {
	errs := Validate([]byte(`{"series": []}`))
	require.Len(t, errs, 1)
	assert.Equal(t, "series: manifest includes zero series", errs[0].Error())
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "series[0].id", Message: "id must be a non-empty string"}
	assert.Equal(t, "series[0].id: id must be a non-empty string", err.Error())
}

func TestCheckFiles(t *testing.T) {
	fsys := newTestFS(t,
		"assets/ID_001/a.png",
		"assets/ID_001/dir.png/",
	)
	doc := `{"series":[{"id":"001","imageBasePath":"./assets/ID_001","images":["a.png","b.png","dir.png","https://cdn/x.png"]}]}`

	missing, err := CheckFiles(fsys, []byte(doc))
	require.NoError(t, err)
	require.Len(t, missing, 2)
	assert.Contains(t, missing[0], "assets/ID_001/b.png")
	assert.Contains(t, missing[1], "is a directory")

	_, err = CheckFiles(fsys, []byte("nope"))
	assert.Error(t, err)
}
