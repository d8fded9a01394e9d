package unit_tests

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"briefy/internal/services"
)

func TestKeyringService_StoreGetDelete(t *testing.T) {
	service := services.NewKeyringServiceWith(keyring.NewArrayKeyring(nil))

	require.NoError(t, service.StoreApiKey("gemini", []byte("AIza-test")))
	key, err := service.GetApiKey("gemini")
	require.NoError(t, err)
	assert.Equal(t, "AIza-test", key)

	list, err := service.ListApiKeys()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "gemini", list[0]["provider"])

	require.NoError(t, service.DeleteApiKey("gemini"))
	_, err = service.GetApiKey("gemini")
	assert.ErrorIs(t, err, keyring.ErrKeyNotFound)
}

func TestKeyringService_RejectsEmptyInput(t *testing.T) {
	service := services.NewKeyringServiceWith(keyring.NewArrayKeyring(nil))

	assert.Error(t, service.StoreApiKey("", []byte("x")))
	assert.Error(t, service.StoreApiKey("gemini", nil))
	_, err := service.GetApiKey("")
	assert.Error(t, err)
}

func TestKeyringService_ResolvePrefersFallback(t *testing.T) {
	service := services.NewKeyringServiceWith(keyring.NewArrayKeyring([]keyring.Item{{Key: "openai", Data: []byte("sk-stored")}}))

	assert.Equal(t, "sk-env", service.Resolve("openai", "sk-env"))
	assert.Equal(t, "sk-stored", service.Resolve("openai", ""))
	assert.Equal(t, "", service.Resolve("anthropic", ""))
}

func TestKeyringService_FileBackend(t *testing.T) {
	service, err := services.NewKeyringService(t.TempDir(), "test-password")
	require.NoError(t, err)

	require.NoError(t, service.StoreApiKey("anthropic", []byte("sk-ant-x")))
	key, err := service.GetApiKey("anthropic")
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-x", key)
}
