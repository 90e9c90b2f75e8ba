package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_KnownLocales(t *testing.T) {
	locales, err := New()
	require.NoError(t, err)

	data := map[string]interface{}{"SupportContact": "@support"}

	en, err := locales.Resolve("en", KeyDowntimeNotice, data)
	require.NoError(t, err)
	assert.Contains(t, en, "temporarily unavailable")
	assert.Contains(t, en, "@support")

	ru, err := locales.Resolve("ru", KeyDowntimeNotice, data)
	require.NoError(t, err)
	assert.Contains(t, ru, "временно недоступен")
	assert.Contains(t, ru, "@support")
}

func TestResolve_FallbackToEnglish(t *testing.T) {
	locales, err := New()
	require.NoError(t, err)

	data := map[string]interface{}{"SupportContact": "@support"}

	for _, lang := range []string{"de", "fr", "", "zz-XX"} {
		msg, err := locales.Resolve(lang, KeyDowntimeNotice, data)
		require.NoError(t, err, "lang %q", lang)
		assert.Contains(t, msg, "temporarily unavailable", "lang %q falls back to English", lang)
	}
}

func TestResolve_UnknownKey(t *testing.T) {
	locales, err := New()
	require.NoError(t, err)

	_, err = locales.Resolve("en", "no_such_key", nil)
	assert.Error(t, err)
}
