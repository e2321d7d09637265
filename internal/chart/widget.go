package chart

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
)

type Options struct {
	Symbol   string
	Theme    string
	Interval string
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.Symbol) == "" {
		o.Symbol = DefaultSymbol
	}
	if strings.TrimSpace(o.Theme) == "" {
		o.Theme = DefaultTheme
	}
	if strings.TrimSpace(o.Interval) == "" {
		o.Interval = DefaultInterval
	}
	return o
}

func NewConfig(opts Options) WidgetConfig {
	opts = opts.withDefaults()
	return WidgetConfig{
		Autosize:          true,
		Symbol:            opts.Symbol,
		Interval:          opts.Interval,
		Timezone:          "Etc/UTC",
		Theme:             opts.Theme,
		Style:             "2",
		Locale:            "en",
		AllowSymbolChange: true,
		Calendar:          false,
		SupportHost:       SupportHost,
	}
}

// Placeholder is the widget installed at page init, before the section is opened.
func Placeholder(opts Options) Widget {
	return Widget{
		ScriptURL: ScriptURL,
		Container: ContainerID,
		Config:    NewConfig(opts),
	}
}

// Load returns a fresh loaded widget. Loading twice replaces, never stacks.
func (w Widget) Load() Widget {
	w.Loaded = true
	return w
}

// Embed renders the container with its script tag, or an empty container when not loaded.
func (w Widget) Embed() (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, `<div id="%s">`, html.EscapeString(w.Container))
	if w.Loaded {
		body, err := json.Marshal(w.Config)
		if err != nil {
			return "", fmt.Errorf("failed to encode widget config: %w", err)
		}
		fmt.Fprintf(&b, `<script type="text/javascript" src="%s" async>%s</script>`,
			html.EscapeString(w.ScriptURL), body)
	}
	b.WriteString(`</div>`)
	return b.String(), nil
}
