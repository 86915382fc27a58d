package reply

import (
	"fmt"
	"strings"
)

// Links are the three link targets. They are used verbatim.
type Links struct {
	App     string
	Channel string
	Chat    string
}

// Options configures a Composer. Empty text fields fall back to the built-in
// texts of Locale.
type Options struct {
	Locale        string
	Template      string
	FallbackName  string
	AppButton     string
	ChannelButton string
	ChatButton    string
	StartCommand  string
	Links         Links
}

// Composer builds welcome payloads. It holds only constants after
// construction, so Compose is safe for concurrent use.
type Composer struct {
	template     string
	fallbackName string
	startCommand string
	rows         [][]Action
}

// NewComposer resolves opts against the built-in locale texts. The template
// must contain NamePlaceholder exactly once.
func NewComposer(opts Options) (*Composer, error) {
	texts, err := ResolveTexts(opts)
	if err != nil {
		return nil, err
	}

	if n := strings.Count(texts.Template, NamePlaceholder); n != 1 {
		return nil, fmt.Errorf("welcome template must contain %s exactly once, found %d", NamePlaceholder, n)
	}
	if strings.TrimSpace(texts.FallbackName) == "" {
		return nil, fmt.Errorf("fallback name must not be empty")
	}

	return &Composer{
		template:     texts.Template,
		fallbackName: texts.FallbackName,
		startCommand: texts.StartCommand,
		rows: [][]Action{
			{{Label: texts.AppButton, URL: opts.Links.App}},
			{{Label: texts.ChannelButton, URL: opts.Links.Channel}},
			{{Label: texts.ChatButton, URL: opts.Links.Chat}},
		},
	}, nil
}

// ResolveTexts merges the overrides in opts over the built-in texts of
// opts.Locale.
func ResolveTexts(opts Options) (Texts, error) {
	locale := opts.Locale
	if locale == "" {
		locale = DefaultLocale
	}
	texts, ok := Locales[locale]
	if !ok {
		return Texts{}, fmt.Errorf("unknown locale %q", locale)
	}

	texts.Template = firstNonEmpty(opts.Template, texts.Template)
	texts.FallbackName = firstNonEmpty(opts.FallbackName, texts.FallbackName)
	texts.AppButton = firstNonEmpty(opts.AppButton, texts.AppButton)
	texts.ChannelButton = firstNonEmpty(opts.ChannelButton, texts.ChannelButton)
	texts.ChatButton = firstNonEmpty(opts.ChatButton, texts.ChatButton)
	texts.StartCommand = firstNonEmpty(opts.StartCommand, texts.StartCommand)

	return texts, nil
}

// Compose returns the welcome payload for a sender. An empty or blank name is
// replaced by the fallback name.
func (c *Composer) Compose(name string) Payload {
	if strings.TrimSpace(name) == "" {
		name = c.fallbackName
	}

	return NewPayload(strings.Replace(c.template, NamePlaceholder, name, 1), c.rows)
}

// StartCommand returns the description of /start shown in the command menu.
func (c *Composer) StartCommand() string {
	return c.startCommand
}

// FallbackName returns the name used for senders without one.
func (c *Composer) FallbackName() string {
	return c.fallbackName
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
