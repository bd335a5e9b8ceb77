package moderation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCensor_Masks_Banned_Word(t *testing.T) {
	req := require.New(t)
	moderator, err := NewModerator(nil, '*')
	req.NoError(err)

	censored, masked := moderator.Censor("you absolute idiot")

	req.True(masked)
	req.Equal("you absolute *****", censored)
}

func TestCensor_Is_Case_Insensitive(t *testing.T) {
	req := require.New(t)
	moderator, err := NewModerator(nil, '*')
	req.NoError(err)

	censored, masked := moderator.Censor("What a LOSER")

	req.True(masked)
	req.Equal("What a *****", censored)
}

func TestCensor_Leaves_Clean_Text_Untouched(t *testing.T) {
	req := require.New(t)
	moderator, err := NewModerator(nil, '*')
	req.NoError(err)

	censored, masked := moderator.Censor("a well reasoned rebuttal")

	req.False(masked)
	req.Equal("a well reasoned rebuttal", censored)
}

func TestCensor_Extra_Words_Are_Honoured(t *testing.T) {
	req := require.New(t)
	moderator, err := NewModerator([]string{"sophist"}, '#')
	req.NoError(err)

	censored, masked := moderator.Censor("typical sophist trick")

	req.True(masked)
	req.Equal("typical ####### trick", censored)
}

func TestCensor_Masks_Multi_Word_Phrases(t *testing.T) {
	req := require.New(t)
	moderator, err := NewModerator(nil, '*')
	req.NoError(err)

	censored, masked := moderator.Censor("just shut up already")

	req.True(masked)
	req.Equal("just ******* already", censored)
}
