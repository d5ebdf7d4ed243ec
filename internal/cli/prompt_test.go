package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompterAnswerRepromptsUntilValid(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("z\n\nb\n"), &out)

	idx, err := p.answer(3)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 2, strings.Count(out.String(), "Please enter a letter between A and C."))
}

func TestPrompterAnswerWithoutChoices(t *testing.T) {
	p := newPrompter(strings.NewReader(""), &bytes.Buffer{})
	idx, err := p.answer(0)
	require.NoError(t, err)
	assert.Equal(t, -1, idx)
}

func TestPrompterYesNo(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("maybe\nYes\nn"), &out)

	ok, err := p.yesNo("? ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "Please answer yes or no.")

	ok, err = p.yesNo("? ")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = p.yesNo("? ")
	assert.Error(t, err)
}

func TestPrompterAnswerCapsAtZ(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("[\nz\n"), &out)

	idx, err := p.answer(300)
	require.NoError(t, err)
	assert.Equal(t, 25, idx)
	assert.Contains(t, out.String(), "Your answer (A-Z): ")
	assert.Contains(t, out.String(), "Please enter a letter between A and Z.")
}

func TestChoiceLetter(t *testing.T) {
	assert.Equal(t, "A", choiceLetter(0))
	assert.Equal(t, "Z", choiceLetter(25))
	assert.Equal(t, "27", choiceLetter(26))
}
