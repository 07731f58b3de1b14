package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogNumberUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want CatalogNumber
	}{
		{"number", `{"catalogNbr": 2110}`, "2110"},
		{"string", `{"catalogNbr": "4820"}`, "4820"},
		{"null", `{"catalogNbr": null}`, ""},
		{"missing", `{}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Course
			require.NoError(t, json.Unmarshal([]byte(tt.in), &c))
			assert.Equal(t, tt.want, c.CatalogNbr)
		})
	}
}

func TestCatalogNumberRejectsObjects(t *testing.T) {
	var c Course
	assert.Error(t, json.Unmarshal([]byte(`{"catalogNbr": {"n": 1}}`), &c))
}

func TestCatalogNumberMarshal(t *testing.T) {
	data, err := json.Marshal(struct {
		A CatalogNumber `json:"a"`
		B CatalogNumber `json:"b"`
		C CatalogNumber `json:"c"`
		D CatalogNumber `json:"d"`
		E CatalogNumber `json:"e"`
		F CatalogNumber `json:"f"`
	}{A: "2110", B: "21XX", C: "0100", D: "+5", E: "0", F: ""})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 2110, "b": "21XX", "c": "0100", "d": "+5", "e": 0, "f": ""}`, string(data))
}

func TestCatalogNumberStringRoundTrip(t *testing.T) {
	var c Course
	require.NoError(t, json.Unmarshal([]byte(`{"catalogNbr":"0100"}`), &c))
	assert.Equal(t, CatalogNumber("0100"), c.CatalogNbr)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"catalogNbr":"0100"`)
}

func TestCourseHeading(t *testing.T) {
	c := Course{Subject: "CS", CatalogNbr: "2110", Title: "Object-Oriented Programming"}
	assert.Equal(t, "CS 2110: Object-Oriented Programming", c.Heading())
}
