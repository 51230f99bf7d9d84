// internal/feedback/feedback.go
//
// Localized text for the guessing loop.
//
// Responsibilities:
//   - Load locale definitions from embedded YAML (assets/locales) and an
//     optional override file.
//   - Build an x/text message catalog with English as the fallback.
//   - Match a requested language (BCP 47 or POSIX LANG) to a supported one.
//
// Locale file shape:
//
//	language: pt
//	prompt:   "Adivinhe o número:"
//	echo:     "Seu chute foi: %d"
//	lower:    "Menor que isso!"
//	higher:   "Maior que isso!"
//	success:  "Você acertou!"
//
// An override file replaces the embedded locale with the same language, or
// adds a new one. Text is printed as written: '%' is literal everywhere
// except the echo's single %d, which receives the guess as plain digits.

package feedback

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/guessgame/assets"
	"github.com/robalobadob/guessgame/internal/game"
)

// Catalog keys.
const (
	keyPrompt  = "guess.prompt"
	keyEcho    = "guess.echo"
	keyLower   = "guess.lower"
	keyHigher  = "guess.higher"
	keySuccess = "guess.success"
)

// ErrInvalidLocale is returned for locale definitions that cannot be used.
var ErrInvalidLocale = errors.New("invalid locale")

// Locale is one language's set of messages.
type Locale struct {
	Language string `yaml:"language"`
	Prompt   string `yaml:"prompt"`
	Echo     string `yaml:"echo"`
	Lower    string `yaml:"lower"`
	Higher   string `yaml:"higher"`
	Success  string `yaml:"success"`
}

// validate checks required fields and returns the parsed language tag.
func (l Locale) validate() (language.Tag, error) {
	tag, err := language.Parse(l.Language)
	if err != nil {
		return language.Und, fmt.Errorf("%w: language %q: %v", ErrInvalidLocale, l.Language, err)
	}
	for name, v := range map[string]string{
		"prompt": l.Prompt, "echo": l.Echo, "lower": l.Lower, "higher": l.Higher, "success": l.Success,
	} {
		if strings.TrimSpace(v) == "" {
			return language.Und, fmt.Errorf("%w: %s: missing %s", ErrInvalidLocale, tag, name)
		}
	}
	if strings.Count(l.Echo, "%d") != 1 {
		return language.Und, fmt.Errorf("%w: %s: echo must contain exactly one %%d", ErrInvalidLocale, tag)
	}
	return tag, nil
}

// Catalog holds every loaded locale.
type Catalog struct {
	builder *catalog.Builder
	langs   []language.Tag // langs[0] is English, the default
	matcher language.Matcher
}

// Load builds a catalog from the embedded locales plus, when overridePath
// is non-empty, the locale defined in that file.
func Load(overridePath string) (*Catalog, error) {
	files, err := assets.Locales()
	if err != nil {
		return nil, fmt.Errorf("read embedded locales: %w", err)
	}

	var tags []language.Tag
	byTag := map[language.Tag]Locale{}
	add := func(name string, data []byte) error {
		loc, err := decodeLocale(data)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		tag, err := loc.validate()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if _, seen := byTag[tag]; !seen {
			tags = append(tags, tag)
		}
		byTag[tag] = loc
		return nil
	}

	for _, f := range files {
		if err := add(f.Name, f.Data); err != nil {
			return nil, err
		}
	}
	if overridePath != "" {
		data, err := os.ReadFile(overridePath)
		if err != nil {
			return nil, fmt.Errorf("read messages file: %w", err)
		}
		if err := add(overridePath, data); err != nil {
			return nil, err
		}
	}
	if _, ok := byTag[language.English]; !ok {
		return nil, fmt.Errorf("%w: no English locale", ErrInvalidLocale)
	}

	// English first so the matcher falls back to it.
	langs := []language.Tag{language.English}
	for _, t := range tags {
		if t != language.English {
			langs = append(langs, t)
		}
	}

	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, t := range langs {
		loc := byTag[t]
		for key, msg := range map[string]string{
			keyPrompt:  literal(loc.Prompt),
			keyEcho:    echoFormat(loc.Echo),
			keyLower:   literal(loc.Lower),
			keyHigher:  literal(loc.Higher),
			keySuccess: literal(loc.Success),
		} {
			if err := b.SetString(t, key, msg); err != nil {
				return nil, fmt.Errorf("catalog %s/%s: %w", t, key, err)
			}
		}
	}

	return &Catalog{builder: b, langs: langs, matcher: language.NewMatcher(langs)}, nil
}

// literal escapes s so the printer renders every '%' as written.
func literal(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}

// echoFormat turns the single %d placeholder into %s and escapes the rest.
// The guess is passed pre-formatted so it is never digit-grouped.
func echoFormat(s string) string {
	before, after, _ := strings.Cut(s, "%d")
	return literal(before) + "%s" + literal(after)
}

func decodeLocale(data []byte) (Locale, error) {
	var loc Locale
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&loc); err != nil {
		return Locale{}, fmt.Errorf("%w: %v", ErrInvalidLocale, err)
	}
	return loc, nil
}

// Languages lists the supported languages, English first.
func (c *Catalog) Languages() []language.Tag {
	return append([]language.Tag(nil), c.langs...)
}

// For returns the messages for the closest supported language.
// lang may be a BCP 47 tag ("pt-BR") or a POSIX locale ("pt_BR.UTF-8").
// Unknown or empty values resolve to English.
func (c *Catalog) For(lang string) *Messages {
	tag := c.langs[0]
	if t, err := language.Parse(posixToBCP47(lang)); err == nil {
		if _, idx, conf := c.matcher.Match(t); conf != language.No {
			tag = c.langs[idx]
		}
	}
	return &Messages{tag: tag, p: message.NewPrinter(tag, message.Catalog(c.builder))}
}

// posixToBCP47 turns "pt_BR.UTF-8@euro" into "pt-BR".
func posixToBCP47(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	return strings.ReplaceAll(s, "_", "-")
}

// Messages renders loop text in one language. It implements game.Messages.
type Messages struct {
	tag language.Tag
	p   *message.Printer
}

var _ game.Messages = (*Messages)(nil)

// Language reports the language the messages are rendered in.
func (m *Messages) Language() language.Tag { return m.tag }

func (m *Messages) Prompt() string { return m.p.Sprintf(keyPrompt) }

// Echo repeats the guess as plain digits, without locale grouping.
func (m *Messages) Echo(guess uint16) string {
	return m.p.Sprintf(keyEcho, strconv.FormatUint(uint64(guess), 10))
}

// Feedback maps an outcome to the hint the player needs: a guess below the
// target asks for a higher one, and vice versa.
func (m *Messages) Feedback(o game.Outcome) string {
	switch o {
	case game.BelowTarget:
		return m.p.Sprintf(keyHigher)
	case game.AboveTarget:
		return m.p.Sprintf(keyLower)
	case game.Matched:
		return m.p.Sprintf(keySuccess)
	}
	return ""
}
