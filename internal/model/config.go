package model

// Config controls training. The zero value of Gamma selects
// 1 / (nFeatures * Var(X)) on the standardized training matrix.
type Config struct {
	C                float64 `yaml:"c" json:"c"`
	Gamma            float64 `yaml:"gamma" json:"gamma"`
	Tolerance        float64 `yaml:"tolerance" json:"tolerance"`
	MaxIterations    int     `yaml:"max_iterations" json:"max_iterations"`
	ProbabilityFolds int     `yaml:"probability_folds" json:"probability_folds"`
	TestFraction     float64 `yaml:"test_fraction" json:"test_fraction"`
	Seed             uint64  `yaml:"seed" json:"seed"`
	MaxTrainRows     int     `yaml:"max_train_rows" json:"max_train_rows"` // 0 = no cap
	CacheRows        int     `yaml:"cache_rows" json:"cache_rows"`
}

// DefaultConfig returns the standard training configuration.
func DefaultConfig() Config {
	return Config{
		C:                1,
		Tolerance:        1e-3,
		ProbabilityFolds: 5,
		TestFraction:     0.25,
		Seed:             42,
		CacheRows:        1024,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.C <= 0 {
		c.C = d.C
	}
	if c.Tolerance <= 0 {
		c.Tolerance = d.Tolerance
	}
	if c.ProbabilityFolds < 2 {
		c.ProbabilityFolds = d.ProbabilityFolds
	}
	if c.TestFraction <= 0 || c.TestFraction >= 1 {
		c.TestFraction = d.TestFraction
	}
	if c.CacheRows <= 0 {
		c.CacheRows = d.CacheRows
	}
	return c
}
