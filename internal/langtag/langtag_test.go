package langtag

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"en", "en", false},
		{"en-US", "en-US", false},
		{"en-us", "en-us", false},
		{"pt_BR", "pt-BR", false},
		{"iw", "iw", false},
		{"mo", "mo", false},
		{"zh-Hans", "zh-Hans", false},
		{"", "", true},
		{"not a tag", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestBase(t *testing.T) {
	assert.Equal(t, "pt", MustParse("pt-BR").Base())
	assert.Equal(t, "en", MustParse("en").Base())
}

func TestMatches(t *testing.T) {
	tests := []struct {
		pref, cand string
		want       bool
	}{
		{"en", "en", true},
		{"en", "en-GB", true},
		{"EN", "en-gb", true},
		{"en-GB", "en", false},
		{"en", "eo", false},
		{"zh", "zh-Hant", true},
		{"zh-Hans", "zh-Hant", false},
		{"*", "fr", true},
		{"iw", "he", true},
		{"he", "iw", true},
		{"jw", "jv", true},
	}
	for _, tt := range tests {
		t.Run(tt.pref+"/"+tt.cand, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(Tag{s: tt.pref}, MustParse(tt.cand)))
		})
	}
}

func TestCanonical(t *testing.T) {
	tag := MustParse("iw")
	assert.Equal(t, "iw", tag.String())
	assert.Equal(t, "he", tag.Canonical())
	assert.Equal(t, "en-GB", MustParse("en-gb").Canonical())
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(MustParse("iw"), MustParse("he")))
	assert.True(t, Equal(MustParse("en-gb"), MustParse("en-GB")))
	assert.False(t, Equal(MustParse("en"), MustParse("en-GB")))
	assert.False(t, Equal(Tag{}, Tag{}))
}

func TestMatchesZero(t *testing.T) {
	assert.False(t, Matches(Tag{}, MustParse("en")))
	assert.False(t, Matches(MustParse("en"), Tag{}))
}

func TestJSON(t *testing.T) {
	var v struct {
		Lang Tag `json:"lang"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"lang":"de-at"}`), &v))
	assert.Equal(t, "de-at", v.Lang.String())
	assert.Equal(t, "de-AT", v.Lang.Canonical())

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"lang":"de-at"}`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`{"lang":"!!"}`), &v))
}
