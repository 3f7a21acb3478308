package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Statement string `json:"statement"`
}

func TestParseJSON(t *testing.T) {
	got, err := ParseJSON[payload]("```json\n{\"statement\": \"Likes(a, b).\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "Likes(a, b).", got.Statement)
}

func TestParseJSON_Errors(t *testing.T) {
	_, err := ParseJSON[payload]("no object here")
	assert.Error(t, err)

	_, err = ParseJSON[payload]("} backwards {")
	assert.Error(t, err)

	_, err = ParseJSON[payload](`{"statement": }`)
	assert.Error(t, err)
}
