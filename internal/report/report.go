// Package report renders a snapshot as a labelled, human-readable summary.
// Labels are translated; weekday and month names stay in English.
package report

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-wtime/internal/config"
	"github.com/tartampluch/go-wtime/internal/engine"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Reporter holds the translation bundle shared by all renders.
type Reporter struct {
	bundle *i18n.Bundle
}

// NewReporter loads every embedded active.<lang>.json locale file.
// Files that fail to load are logged and skipped.
func NewReporter() *Reporter {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	r := &Reporter{bundle: bundle}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return r
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	return r
}

// localizer returns a translator for lang, falling back to English when the
// tag cannot be parsed.
func (r *Reporter) localizer(lang string) *i18n.Localizer {
	tag, err := language.Parse(lang)
	if err != nil {
		slog.Warn(config.ErrLanguageTag,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, lang,
			config.LogKeyError, err,
		)
		tag = language.English
	}
	return i18n.NewLocalizer(r.bundle, tag.String(), config.DefaultLanguage)
}

// msg translates key, returning the key itself when no translation exists.
func msg(l *i18n.Localizer, key string) string {
	out, err := l.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return out
}

// Render writes one "label: value" line per field of s.
func (r *Reporter) Render(s engine.Snapshot, lang string) []byte {
	l := r.localizer(lang)

	unix := s.Unix()

	leap := msg(l, config.TKeyNo)
	if s.IsLeapYear() {
		leap = msg(l, config.TKeyYes)
	}

	rows := []struct {
		key   string
		value string
	}{
		{config.TKeyTimestamp, s.Format()},
		{config.TKeyDate, s.Date().String()},
		{config.TKeyTime, fmt.Sprintf("%02d:%02d:%02d", s.Hour(), s.Minute(), s.Second())},
		{config.TKeyWeekday, s.Weekday()},
		{config.TKeyMonth, s.MonthName()},
		{config.TKeyISOWeek, fmt.Sprint(s.ISOWeek())},
		{config.TKeyDayOfYear, fmt.Sprint(s.DayOfYear())},
		{config.TKeyLeapYear, leap},
		{config.TKeyOffset, engine.FormatOffset(int(s.OffsetHours()) * 3600)},
		{config.TKeyUnixSec, fmt.Sprint(unix.Seconds)},
		{config.TKeyUnixMilli, scaled(unix.Seconds, 3, uint64(unix.Nanos)/1_000_000)},
		{config.TKeyUnixNano, scaled(unix.Seconds, 9, uint64(unix.Nanos))},
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(w, "%s:\t%s\n", msg(l, row.key), row.value)
	}
	_ = w.Flush()
	return buf.Bytes()
}

// scaled renders seconds*10^digits + sub in decimal without a 64-bit
// intermediate, so counts past 2554 still print exactly.
func scaled(seconds uint64, digits int, sub uint64) string {
	if seconds == 0 {
		return fmt.Sprint(sub)
	}
	return fmt.Sprintf("%d%0*d", seconds, digits, sub)
}
