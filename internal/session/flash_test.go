package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-session-keeper/models"
)

func testNotice(title string) models.FlashNotice {
	return models.FlashNotice{
		ID:    "notice-1",
		Title: title,
		Type:  models.FlashTypeSuccess,
	}
}

func TestFlash_SetCommitDecodeGet(t *testing.T) {
	codec := NewFlashCodec(testSignKey)

	flash := codec.Decode("")
	flash.Set(models.FlashChannelMessage, testNotice("Password changed successfully"))

	raw, err := flash.Commit()
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	next := codec.Decode(raw)
	notice := next.Get(models.FlashChannelMessage)
	require.NotNil(t, notice)
	assert.Equal(t, "Password changed successfully", notice.Title)
	assert.Equal(t, models.FlashTypeSuccess, notice.Type)
}

func TestFlash_GetConsumesImmediately(t *testing.T) {
	codec := NewFlashCodec(testSignKey)

	flash := codec.Decode("")
	flash.Set(models.FlashChannelLogout, testNotice("Session expired"))

	require.NotNil(t, flash.Get(models.FlashChannelLogout))

	// a second read within the same request sees nothing, before any
	// cookie round-trip
	assert.Nil(t, flash.Get(models.FlashChannelLogout))
	assert.False(t, flash.Pending())
}

func TestFlash_GetEmptyChannel(t *testing.T) {
	codec := NewFlashCodec(testSignKey)

	flash := codec.Decode("")
	assert.Nil(t, flash.Get(models.FlashChannelMessage))
}

func TestFlash_ChannelsAreIndependent(t *testing.T) {
	codec := NewFlashCodec(testSignKey)

	flash := codec.Decode("")
	flash.Set(models.FlashChannelMessage, testNotice("saved"))
	flash.Set(models.FlashChannelLogout, testNotice("Session expired"))

	require.NotNil(t, flash.Get(models.FlashChannelMessage))

	// reading one channel leaves the other pending through a commit cycle
	raw, err := flash.Commit()
	require.NoError(t, err)

	next := codec.Decode(raw)
	assert.Nil(t, next.Get(models.FlashChannelMessage))

	notice := next.Get(models.FlashChannelLogout)
	require.NotNil(t, notice)
	assert.Equal(t, "Session expired", notice.Title)
}

func TestFlash_SetReplacesPending(t *testing.T) {
	codec := NewFlashCodec(testSignKey)

	flash := codec.Decode("")
	flash.Set(models.FlashChannelMessage, testNotice("first"))
	flash.Set(models.FlashChannelMessage, testNotice("second"))

	notice := flash.Get(models.FlashChannelMessage)
	require.NotNil(t, notice)
	assert.Equal(t, "second", notice.Title)
}

func TestFlash_EmptyCommitClearsCookie(t *testing.T) {
	codec := NewFlashCodec(testSignKey)

	flash := codec.Decode("")
	raw, err := flash.Commit()
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestFlash_DecodeTamperedValue(t *testing.T) {
	codec := NewFlashCodec(testSignKey)

	flash := codec.Decode("")
	flash.Set(models.FlashChannelMessage, testNotice("saved"))
	raw, err := flash.Commit()
	require.NoError(t, err)

	// a flipped signature yields an empty envelope, not an error
	tampered := raw[:len(raw)-2] + "xx"
	next := codec.Decode(tampered)
	assert.Nil(t, next.Get(models.FlashChannelMessage))
	assert.False(t, next.Pending())
}

func TestFlash_DecodeForeignKey(t *testing.T) {
	flash := NewFlashCodec("other-key").Decode("")
	flash.Set(models.FlashChannelMessage, testNotice("saved"))
	raw, err := flash.Commit()
	require.NoError(t, err)

	next := NewFlashCodec(testSignKey).Decode(raw)
	assert.False(t, next.Pending())
}

func TestFlash_DecodeGarbage(t *testing.T) {
	codec := NewFlashCodec(testSignKey)

	for _, raw := range []string{"garbage", "a.b.c"} {
		flash := codec.Decode(raw)
		assert.False(t, flash.Pending(), "input %q", raw)
	}
}
