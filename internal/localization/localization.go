// Package localization provides functionality for internationalization (i18n)
// of outbound notification strings. It loads translation strings from JSON files
// and falls back to a built-in set of defaults.
package localization

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// defaults are the built-in notification strings used when no translation
// files are provided.
var defaults = map[string]map[string]string{
	"en": {
		"match_found":      "It's a match! You and %s liked each other. Say hello!",
		"match_found_room": "It's a match! Say hello!",
		"new_message":      "New message from %s",
	},
	"uk": {
		"match_found":      "Це метч! Ви та %s вподобали одне одного. Привітайтеся!",
		"match_found_room": "Це метч! Привітайтеся!",
		"new_message":      "Нове повідомлення від %s",
	},
}

// Localizer manages the translations for the application.
// It holds a map of languages, each with its own map of translation keys and values.
type Localizer struct {
	translations map[string]map[string]string
	mu           sync.RWMutex
}

// NewLocalizer creates a Localizer preloaded with the built-in defaults.
func NewLocalizer() *Localizer {
	l := &Localizer{
		translations: make(map[string]map[string]string),
	}
	for lang, strs := range defaults {
		copied := make(map[string]string, len(strs))
		for k, v := range strs {
			copied[k] = v
		}
		l.translations[lang] = copied
	}
	return l
}

// LoadDir merges translations from a directory of JSON files into the Localizer.
// The directory should contain files named with the language code (e.g., "en.json").
// Loaded keys override the built-in defaults.
func (l *Localizer) LoadDir(path string) error {
	files, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("failed to read localization directory: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}

		lang := strings.TrimSuffix(file.Name(), ".json")
		filePath := filepath.Join(path, file.Name())

		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read localization file %s: %w", file.Name(), err)
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return fmt.Errorf("failed to parse localization file %s: %w", file.Name(), err)
		}

		if l.translations[lang] == nil {
			l.translations[lang] = make(map[string]string)
		}
		for k, v := range translations {
			l.translations[lang][k] = v
		}
	}

	return nil
}

// GetString returns the localized string for a given key and language.
// If the language or the key is not found, it returns the key itself as a fallback.
func (l *Localizer) GetString(lang, key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if langTranslations, ok := l.translations[lang]; ok {
		if value, ok := langTranslations[key]; ok {
			return value
		}
	}

	// Fallback to a default language if the key is not found in the specified language
	if lang != "en" {
		if enTranslations, ok := l.translations["en"]; ok {
			if value, ok := enTranslations[key]; ok {
				return value
			}
		}
	}

	return key
}
