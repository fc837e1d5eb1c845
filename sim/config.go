package sim

// SimConfig groups the simulation parameters. Loaded from the scenario
// file's parameters block and validated there; zero-value fields fall
// back to the defaults below.
type SimConfig struct {
	// Horizon is the simulation end time in seconds. Dynamic request
	// checks stop perpetuating past it.
	Horizon float64 `yaml:"horizon" validate:"gt=0"`
	// Seed for the single process-wide random generator. The generator's
	// state is part of any save/replay of simulation state.
	Seed int64 `yaml:"seed"`
	// TimeWindow is the desired pickup-to-delivery window span, in
	// seconds, granted to synthesized customers and handed to the solver.
	TimeWindow float64 `yaml:"time_window" validate:"gt=0"`
	// MaxRideFactor bounds a customer's ride time as a multiple of the
	// direct travel time; handed to the solver.
	MaxRideFactor float64 `yaml:"max_ride_factor" validate:"gte=1"`
	// DynamicRequestThreshold is the probability bound a dynamic request
	// check's draw is compared against.
	DynamicRequestThreshold float64 `yaml:"dynamic_request_threshold" validate:"gte=0,lte=1"`
	// DynamicCheckInterval spaces successive dynamic request checks.
	DynamicCheckInterval float64 `yaml:"dynamic_check_interval" validate:"gte=0"`
	// ExpectedDemandPerStop is the ad-hoc rider demand synthesized at
	// each fixed-route stop arrival.
	ExpectedDemandPerStop int `yaml:"expected_demand_per_stop" validate:"gte=0"`
}

// DefaultConfig returns the configuration used when the scenario file
// omits a parameters block.
func DefaultConfig() *SimConfig {
	return &SimConfig{
		Horizon:                 3600,
		Seed:                    42,
		TimeWindow:              1800,
		MaxRideFactor:           2.0,
		DynamicRequestThreshold: 0.25,
		DynamicCheckInterval:    10,
		ExpectedDemandPerStop:   0,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c *SimConfig) withDefaults() *SimConfig {
	d := DefaultConfig()
	if c.Horizon == 0 {
		c.Horizon = d.Horizon
	}
	if c.TimeWindow == 0 {
		c.TimeWindow = d.TimeWindow
	}
	if c.MaxRideFactor == 0 {
		c.MaxRideFactor = d.MaxRideFactor
	}
	if c.DynamicCheckInterval == 0 {
		c.DynamicCheckInterval = d.DynamicCheckInterval
	}
	return c
}
