package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"taskboard/pkg/translator"
)

const (
	langKey   = "lang"
	localeKey = "locale"
)

// LanguageMiddleware resolves Accept-Language once per request. Error
// messages are translated into it and task titles collated by it.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tag := translator.Tag(c.GetHeader("Accept-Language"))
		c.Set(localeKey, tag)
		c.Set(langKey, tag.String())
		c.Next()
	}
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get(langKey); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.LanguageEn
}

func GetLocale(c *gin.Context) language.Tag {
	if locale, exists := c.Get(localeKey); exists {
		if tag, ok := locale.(language.Tag); ok {
			return tag
		}
	}
	return language.English
}
