package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	LocaleZhCN    = "zh-CN"
	LocaleEnUS    = "en-US"
	DefaultLocale = LocaleZhCN

	localeQueryKey  = "lang"
	localeHeaderKey = "X-Locale"
)

// 顺序与 supportedTags 一致，第一个为默认语言
var supportedLocales = []string{LocaleZhCN, LocaleEnUS}

var matcher = language.NewMatcher([]language.Tag{
	language.MustParse(LocaleZhCN),
	language.MustParse(LocaleEnUS),
})

// ResolveLocale 解析请求语言：lang 参数 > X-Locale > Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if raw := strings.TrimSpace(c.Query(localeQueryKey)); raw != "" {
		return NormalizeLocale(raw)
	}
	if raw := strings.TrimSpace(c.GetHeader(localeHeaderKey)); raw != "" {
		return NormalizeLocale(raw)
	}
	tags, _, err := language.ParseAcceptLanguage(c.GetHeader("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	return match(tags...)
}

// NormalizeLocale 将任意语言标记归一到已支持的语言
func NormalizeLocale(raw string) string {
	tag, err := language.Parse(strings.TrimSpace(raw))
	if err != nil {
		return DefaultLocale
	}
	return match(tag)
}

func match(tags ...language.Tag) string {
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No || index < 0 || index >= len(supportedLocales) {
		return DefaultLocale
	}
	return supportedLocales[index]
}

// T 翻译 key，缺失时回退到默认语言，再缺失则返回 key 本身
func T(locale, key string) string {
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译后格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
