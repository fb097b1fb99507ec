package indicator

import "github.com/rxtech-lab/argo-dashboard/internal/types"

// Indicator is the configuration surface shared by every series indicator.
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Config sets the indicator parameters, validating them first
	Config(params ...any) error
}

// periodParam reads a positive period from params[index].
func periodParam(params []any, index int, name string) (int, error) {
	period, ok := params[index].(int)
	if !ok {
		return 0, invalidType(name, "int")
	}

	if period <= 0 {
		return 0, invalidPeriod(name, period)
	}

	return period, nil
}
