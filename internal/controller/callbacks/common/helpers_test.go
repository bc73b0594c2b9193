package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgFromCallback(t *testing.T) {
	arg, err := ParseArgFromCallback("view_tutor:abc-123")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", arg)

	_, err = ParseArgFromCallback("no_arg")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseArgFromCallback("empty_arg:")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParseArgsFromCallback(t *testing.T) {
	args, err := ParseArgsFromCallback("review_rate:b42:5", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b42", "5"}, args)

	// Последний аргумент может содержать двоеточие ("ЧЧ:ММ")
	args, err = ParseArgsFromCallback("remove_slot:3:09:00", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "09:00"}, args)

	_, err = ParseArgsFromCallback("remove_slot:3", 2)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseArgsFromCallback("plain", 2)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
