package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	yaml := `
version: "1"
packages:
  - ./examples/api
  - ./internal/...
extractors:
  - api.CreateUser
  - example.com/app/api.ReplaceUser
output:
  suffix: "_from_request.go"
  comments: false
`

	f, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.NotNil(t, f)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, []string{"./examples/api", "./internal/..."}, f.Packages)
	require.Len(t, f.Extractors, 2)
	assert.Equal(t, "_from_request.go", f.Output.Suffix)
	assert.False(t, f.Output.CommentsEnabled())

	require.NoError(t, f.Validate())
}

func TestParseDefaults(t *testing.T) {
	f, err := Parse([]byte("extractors: [api.Foo]"))
	require.NoError(t, err)

	assert.Equal(t, SupportedVersion, f.Version)
	assert.Equal(t, []string{"./..."}, f.Packages)
	assert.Equal(t, "_extract.go", f.Output.Suffix)
	assert.True(t, f.Output.CommentsEnabled())

	require.NoError(t, f.Validate())
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("extractors: [unclosed"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"unsupported version", "version: \"2\"\nextractors: [api.Foo]"},
		{"no extractors", "packages: [./...]"},
		{"empty extractor name", "extractors: [\"\"]"},
		{"duplicate extractor", "extractors: [api.Foo, api.Foo]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Parse([]byte(tc.yaml))
			require.NoError(t, err)
			assert.Error(t, f.Validate())
		})
	}
}
