package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionTokenRoundTrip(t *testing.T) {
	tokens := []ActionToken{
		{Kind: ActionKindPublish},
		{Kind: ActionKindPhoto, Platform: PlatformTelegram, Day: 15},
		{Kind: ActionKindPhoto, Platform: PlatformInstagram, Day: 1},
		{Kind: ActionKindText, Platform: PlatformTelegram, Day: 31},
		{Kind: ActionKindText, Platform: PlatformInstagram, Day: 7},
	}

	for _, token := range tokens {
		decoded, err := DecodeActionToken(token.Encode())
		require.NoError(t, err, "token %+v", token)
		assert.Equal(t, token, decoded)
	}
}

func TestActionTokenWireFormat(t *testing.T) {
	assert.Equal(t, "confirm_publish", ActionToken{Kind: ActionKindPublish}.Encode())
	assert.Equal(t, "photo_tg_15", ActionToken{Kind: ActionKindPhoto, Platform: PlatformTelegram, Day: 15}.Encode())
	assert.Equal(t, "text_inst_7", ActionToken{Kind: ActionKindText, Platform: PlatformInstagram, Day: 7}.Encode())
}

func TestDecodeActionTokenRejectsGarbage(t *testing.T) {
	for _, data := range []string{
		"",
		"photo",
		"photo_tg",
		"photo_vk_15",
		"ban_tg_15",
		"photo_tg_0",
		"photo_tg_32",
		"photo_tg_abc",
	} {
		_, err := DecodeActionToken(data)
		assert.Error(t, err, "data %q", data)
	}
}
