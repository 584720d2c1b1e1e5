package translator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

var matcher = language.NewMatcher([]language.Tag{language.English, language.Indonesian})

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string // List of supported languages
}

const (
	LanguageEn = "en"
	LanguageId = "id"
)

// InitTranslator loads the TOML message files of the supported languages.
// English is always supported and is the fallback.
func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	tags := supportedTags(cfg.SupportedLanguages)
	matcher = language.NewMatcher(tags)

	lstFiles, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	for _, f := range lstFiles {
		if f.IsDir() || filepath.Ext(f.Name()) != ".toml" {
			continue
		}
		if !isSupported(strings.TrimSuffix(f.Name(), ".toml"), tags) {
			zap.L().Debug("skipping translation of unsupported language", zap.String("file", f.Name()))
			continue
		}

		path := fmt.Sprintf("%s/%s", cfg.TranslationFolder, f.Name())
		if _, err := Translator.LoadMessageFile(path); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
}

// Tag resolves an Accept-Language value against the supported languages,
// falling back to English.
func Tag(lang string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	tag, _, _ := matcher.Match(tags...)
	base, _ := tag.Base()
	return language.Make(base.String())
}

func supportedTags(languages []string) []language.Tag {
	tags := []language.Tag{language.English}
	for _, lang := range languages {
		tag, err := language.Parse(lang)
		if err != nil {
			zap.L().Warn("ignoring unknown language", zap.String("lang", lang), zap.Error(err))
			continue
		}
		if tag != language.English {
			tags = append(tags, tag)
		}
	}
	return tags
}

func isSupported(name string, tags []language.Tag) bool {
	tag, err := language.Parse(name)
	if err != nil {
		return false
	}
	for _, supported := range tags {
		if supported == tag {
			return true
		}
	}
	return false
}
