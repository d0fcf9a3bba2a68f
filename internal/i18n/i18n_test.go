package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundle_LoadsAllLocales(t *testing.T) {
	b, err := NewBundle()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"en", "zh-CN", "zh-TW"}, b.Locales())
}

func TestTranslator_ExactLocale(t *testing.T) {
	b, err := NewBundle()
	require.NoError(t, err)

	en := b.Translator("en")
	assert.Equal(t, "Register a pet", en.T("registration.title"))

	cn := b.Translator("zh-CN")
	assert.Equal(t, "注册宠物", cn.T("registration.title"))

	tw := b.Translator("zh-TW")
	assert.Equal(t, "註冊寵物", tw.T("registration.title"))
}

func TestTranslator_Formatting(t *testing.T) {
	b, err := NewBundle()
	require.NoError(t, err)

	en := b.Translator("en")
	assert.Equal(t, "We emailed a sign-in code to a@b.co.", en.T("auth.code_sent", "a@b.co"))
}

func TestTranslator_FallsBackToClosestMatch(t *testing.T) {
	b, err := NewBundle()
	require.NoError(t, err)

	// Unsupported locales resolve to the best match, not an error.
	assert.Equal(t, "en", b.Translator("fr").Locale())
	assert.Equal(t, "en", b.Translator("garbage!!").Locale())

	// Traditional-script Chinese outside Taiwan still gets zh-TW.
	assert.Equal(t, "zh-TW", b.Translator("zh-Hant").Locale())
}

func TestTranslator_MissingKey(t *testing.T) {
	b, err := NewBundle()
	require.NoError(t, err)

	tr := b.Translator("zh-CN")
	assert.Equal(t, "no.such.key", tr.T("no.such.key"), "missing keys surface as the key itself")
}
