package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tag sets as the IR builder produces them: category first, then catalog tags.
var (
	musicGenerateTags = []string{"music", "music", "generation", "ai"}
	speechTags        = []string{"speech", "speech", "tts", "ai"}
	creditsTags       = []string{"credits", "credits", "billing"}
	discoverTags      = []string{"public", "music", "public"}
	loginTags         = []string{"authentication", "auth", "jwt"}
)

func TestShouldIncludeOperation(t *testing.T) {
	tests := map[string]struct {
		tags    []string
		include []string
		exclude []string
		want    bool
	}{
		"no filters keeps everything":          {tags: creditsTags, want: true},
		"include by category":                  {tags: musicGenerateTags, include: []string{"^music$"}, want: true},
		"include by free-text tag":             {tags: speechTags, include: []string{"^tts$"}, want: true},
		"include misses":                       {tags: creditsTags, include: []string{"^music$"}, want: false},
		"any include pattern is enough":        {tags: speechTags, include: []string{"^music$", "^speech$"}, want: true},
		"exclude wins over include":            {tags: discoverTags, include: []string{"^music$"}, exclude: []string{"^public$"}, want: false},
		"exclude unrelated tag keeps op":       {tags: musicGenerateTags, include: []string{"^music$"}, exclude: []string{"^billing$"}, want: true},
		"exclude alone drops billing":          {tags: creditsTags, exclude: []string{"^billing$"}, want: false},
		"exclude alone keeps others":           {tags: loginTags, exclude: []string{"^billing$"}, want: true},
		"unanchored pattern matches substring": {tags: loginTags, include: []string{"auth"}, want: true},
		"shared ai tag selects both":           {tags: speechTags, include: []string{"^ai$"}, exclude: []string{"^music$"}, want: true},
		"shared ai tag with exclude on music":  {tags: musicGenerateTags, include: []string{"^ai$"}, exclude: []string{"^music$"}, want: false},
		"no tags with include":                 {tags: nil, include: []string{"music"}, want: false},
		"no tags without include":              {tags: nil, exclude: []string{"music"}, want: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			include, exclude, err := compileTagFilters(tt.include, tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.want, shouldIncludeOperation(tt.tags, include, exclude),
				"tags=%v include=%v exclude=%v", tt.tags, tt.include, tt.exclude)
		})
	}
}

func TestCompileTagFilters_InvalidPattern(t *testing.T) {
	_, _, err := compileTagFilters([]string{"("}, nil)
	assert.ErrorContains(t, err, "includeTags")

	_, _, err = compileTagFilters(nil, []string{"[a-"})
	assert.ErrorContains(t, err, "excludeTags")
}
