package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunVersionFlagAlone(t *testing.T) {
	assert.Equal(t, 0, run([]string{"-v"}))
	assert.Equal(t, 0, run([]string{"--version"}))
}

func TestRunHelpFlagAlone(t *testing.T) {
	assert.Equal(t, 0, run([]string{"-h"}))
}

func TestRunMissingPromptFails(t *testing.T) {
	assert.Equal(t, 2, run([]string{}))
	assert.Equal(t, 2, run([]string{"-m", "some-model"}))
}

func TestRunUnknownFlagFails(t *testing.T) {
	assert.Equal(t, 2, run([]string{"--no-such-flag"}))
}
