package chart

const (
	ScriptURL   = "https://s3.tradingview.com/external-embedding/embed-widget-advanced-chart.js"
	ContainerID = "tradingview-widget-container"
	SupportHost = "https://www.tradingview.com"

	DefaultSymbol   = "COINBASE:BTCUSD"
	DefaultTheme    = "light"
	DefaultInterval = "D"
)

// WidgetConfig is the JSON body of the TradingView embed script.
type WidgetConfig struct {
	Autosize          bool   `json:"autosize"`
	Symbol            string `json:"symbol"`
	Interval          string `json:"interval"`
	Timezone          string `json:"timezone"`
	Theme             string `json:"theme"`
	Style             string `json:"style"`
	Locale            string `json:"locale"`
	AllowSymbolChange bool   `json:"allow_symbol_change"`
	Calendar          bool   `json:"calendar"`
	SupportHost       string `json:"support_host"`
}

// Widget is what the chart section holds. Until Loaded is set the container is empty.
type Widget struct {
	ScriptURL string       `json:"script_url"`
	Container string       `json:"container"`
	Config    WidgetConfig `json:"config"`
	Loaded    bool         `json:"loaded"`
}
