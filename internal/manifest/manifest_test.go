package manifest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCompact(t *testing.T) {
	tests := []struct {
		name string
		urls []string
		want string
	}{
		{
			name: "empty",
			urls: nil,
			want: `{"urls": []}`,
		},
		{
			name: "two objects",
			urls: []string{"./assets/geometry/objects/a.obj", "./assets/geometry/objects/b.obj"},
			want: `{"urls": ["./assets/geometry/objects/a.obj", "./assets/geometry/objects/b.obj"]}`,
		},
		{
			name: "html characters are not escaped",
			urls: []string{"a&b<c>.obj"},
			want: `{"urls": ["a&b<c>.obj"]}`,
		},
		{
			name: "quotes and backslashes",
			urls: []string{`dir\"q".obj`},
			want: `{"urls": ["dir\\\"q\".obj"]}`,
		},
		{
			name: "non-ascii escaped",
			urls: []string{"café.obj", "\U0001F600.obj"},
			want: `{"urls": ["caf\u00e9.obj", "\ud83d\ude00.obj"]}`,
		},
		{
			name: "control characters and DEL escaped",
			urls: []string{"a\x01b\x7fc.obj"},
			want: `{"urls": ["a\u0001b\u007fc.obj"]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(New(tt.urls), FormatCompact)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
			assert.True(t, json.Valid(got))
		})
	}
}

func TestEncodeIndent(t *testing.T) {
	got, err := Encode(New([]string{"a.obj"}), FormatIndent)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"urls\": [\n    \"a.obj\"\n  ]\n}\n", string(got))

	got, err = Encode(&Manifest{}, FormatIndent)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"urls\": []\n}\n", string(got))
}

func TestEncodeRejectsInvalidUTF8(t *testing.T) {
	for _, f := range ValidFormats {
		t.Run(string(f), func(t *testing.T) {
			_, err := Encode(New([]string{"ok.obj", "a\xffb.obj"}), f)
			require.ErrorIs(t, err, ErrInvalidUTF8)
			assert.Contains(t, err.Error(), `"a\xffb.obj"`)
		})
	}
}

func TestEncodeRejectsUnknownFormat(t *testing.T) {
	_, err := Encode(New(nil), Format("yaml"))
	assert.Error(t, err)
}

func TestDecodeRoundTrip(t *testing.T) {
	urls := []string{"./x/a.obj", "./x/café b.obj", `./x/"q".obj`}
	for _, f := range ValidFormats {
		t.Run(string(f), func(t *testing.T) {
			data, err := Encode(New(urls), f)
			require.NoError(t, err)

			m, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, urls, m.URLs)
		})
	}
}

func TestDecodeRejectsInvalidDocuments(t *testing.T) {
	for name, doc := range map[string]string{
		"not json":      `nope`,
		"missing urls":  `{}`,
		"null urls":     `{"urls": null}`,
		"extra field":   `{"urls": [], "version": 1}`,
		"wrong type":    `{"urls": "a"}`,
		"trailing data": `{"urls": []} {}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	m, err := Decode([]byte(`{"urls": []}`))
	require.NoError(t, err)
	assert.NotNil(t, m.URLs)
	assert.Empty(t, m.URLs)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCompact, f)

	f, err = ParseFormat(" INDENT ")
	require.NoError(t, err)
	assert.Equal(t, FormatIndent, f)

	_, err = ParseFormat("pretty")
	assert.Error(t, err)
}
