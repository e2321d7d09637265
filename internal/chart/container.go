package chart

type ChartContainer struct {
	Handler *Handler
	Options Options
}

func NewChartContainer(opts Options) *ChartContainer {
	opts = opts.withDefaults()
	return &ChartContainer{
		Handler: NewHandler(opts),
		Options: opts,
	}
}
