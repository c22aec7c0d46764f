package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_InsertKeepsOrderAndRejectsDuplicates(t *testing.T) {
	u := NewUsers()
	assert.True(t, u.Insert("b", UserRecord{Password: "h1"}))
	assert.True(t, u.Insert("a", UserRecord{Password: "h2"}))
	assert.False(t, u.Insert("b", UserRecord{Password: "other"}))

	assert.Equal(t, []string{"b", "a"}, u.Names())
	rec, ok := u.Get("b")
	require.True(t, ok)
	assert.Equal(t, "h1", rec.Password)
	assert.False(t, u.Has("B"), "usernames are case-sensitive")
}

func TestUsers_ZeroValueUsable(t *testing.T) {
	var u Users
	assert.True(t, u.Insert("x", UserRecord{Password: "h"}))
	assert.Equal(t, 1, u.Len())
}

func TestUsers_Delete(t *testing.T) {
	u := NewUsers()
	u.Insert("a", UserRecord{Password: "1"})
	u.Insert("b", UserRecord{Password: "2"})
	u.Insert("c", UserRecord{Password: "3"})

	u.Delete("b")
	u.Delete("missing")
	assert.Equal(t, []string{"a", "c"}, u.Names())
	assert.False(t, u.Has("b"))
}

func TestUsers_NamesIsCopy(t *testing.T) {
	u := NewUsers()
	u.Insert("a", UserRecord{Password: "1"})
	names := u.Names()
	names[0] = "mutated"
	assert.Equal(t, []string{"a"}, u.Names())
}

func TestUsers_MarshalOrderAndEscaping(t *testing.T) {
	u := NewUsers()
	u.Insert("zoe", UserRecord{Password: "h", Settings: Settings{BgColor: "<red>", FontColor: "#000"}})
	u.Insert("анна", UserRecord{Password: "h"})

	b, err := json.Marshal(u)
	require.NoError(t, err)
	// json.Marshal сам экранирует HTML поверх MarshalJSON, поэтому проверяем прямой вызов
	raw, err := u.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t,
		`{"zoe":{"password":"h","settings":{"bg_color":"<red>","font_color":"#000"}},"анна":{"password":"h","settings":{"bg_color":"","font_color":""}}}`,
		string(raw))
	assert.JSONEq(t, string(raw), string(b))
}

func TestUsers_UnmarshalPreservesOrder(t *testing.T) {
	var u Users
	err := json.Unmarshal([]byte(`{
		"z": {"password": "h1", "settings": {"bg_color": "#1", "font_color": "#2"}},
		"a": {"password": "h2", "settings": {"bg_color": "#3", "font_color": "#4"}}
	}`), &u)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a"}, u.Names())
	rec, _ := u.Get("a")
	assert.Equal(t, Settings{BgColor: "#3", FontColor: "#4"}, rec.Settings)
}

func TestUsers_UnmarshalRejects(t *testing.T) {
	cases := map[string]string{
		"array with items": `[1]`,
		"number":           `5`,
		"duplicate":        `{"a": {"password": "x"}, "a": {"password": "y"}}`,
		"empty name":       `{"": {"password": "x"}}`,
		"missing hash":     `{"a": {"settings": {}}}`,
		"bad settings":     `{"a": {"password": "x", "settings": [1]}}`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			u := NewUsers()
			u.Insert("keep", UserRecord{Password: "h"})
			assert.Error(t, json.Unmarshal([]byte(in), u))
			assert.Equal(t, []string{"keep"}, u.Names(), "failed decode must not touch receiver")
		})
	}
}

func TestUsers_UnmarshalEmptyForms(t *testing.T) {
	for _, in := range []string{`{}`, `[]`, " {} \n"} {
		u := NewUsers()
		require.NoError(t, json.Unmarshal([]byte(in), u), in)
		assert.Equal(t, 0, u.Len())
	}
}

func TestUsers_UnmarshalEmptyArraySettings(t *testing.T) {
	// пустой PHP-массив настроек сериализуется как []
	var u Users
	require.NoError(t, json.Unmarshal([]byte(`{"a": {"password": "h", "settings": []}}`), &u))
	rec, ok := u.Get("a")
	require.True(t, ok)
	assert.Equal(t, Settings{}, rec.Settings)
}
