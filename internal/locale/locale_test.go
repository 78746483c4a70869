// File path: internal/locale/locale_test.go
package locale

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	l, ok := Parse("zh-CN")
	assert.True(t, ok)
	assert.Equal(t, Chinese, l)

	l, ok = Parse(" en-US ")
	assert.True(t, ok)
	assert.Equal(t, English, l)

	for _, bad := range []string{"", "fr-FR", "zh-cn", "en"} {
		_, ok := Parse(bad)
		assert.False(t, ok, bad)
	}
}

func TestOrFallsBackForUnknownValues(t *testing.T) {
	assert.Equal(t, English, Locale("de-DE").Or(English))
	assert.Equal(t, Chinese, Chinese.Or(English))
}

func TestNegotiate(t *testing.T) {
	assert.Equal(t, Chinese, Negotiate("zh-CN,zh;q=0.9,en;q=0.8", English))
	assert.Equal(t, English, Negotiate("en-GB,en;q=0.9", Chinese))
	assert.Equal(t, Chinese, Negotiate("", Chinese))
	assert.Equal(t, Chinese, Negotiate("fr-FR", Chinese))
}

func TestLabelTablesShareKeys(t *testing.T) {
	for key := range labels[English] {
		_, ok := labels[Chinese][key]
		assert.True(t, ok, "zh-CN missing %q", key)
	}
	assert.Equal(t, len(labels[English]), len(labels[Chinese]))
}

func TestTFallsBack(t *testing.T) {
	assert.Equal(t, "Fix List", English.T("nav_fix_list"))
	assert.Equal(t, "修复清单", Chinese.T("nav_fix_list"))
	assert.Equal(t, "Fix List", Locale("xx").T("nav_fix_list"))
	assert.Equal(t, "no_such_key", English.T("no_such_key"))
}

func TestContextRoundTrip(t *testing.T) {
	assert.Equal(t, Default, FromContext(context.Background()))
	ctx := NewContext(context.Background(), Chinese)
	assert.Equal(t, Chinese, FromContext(ctx))
}
