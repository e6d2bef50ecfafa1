package model

import "fmt"

// ModelType distinguishes classification from regression models. Several
// plots (calibration, ROC, decision boundary) only make sense for
// classifiers and no-op otherwise.
type ModelType int

const (
	Classification ModelType = iota
	Regression
)

func (mt ModelType) String() string {
	switch mt {
	case Classification:
		return "classification"
	case Regression:
		return "regression"
	default:
		return fmt.Sprintf("modeltype(%d)", int(mt))
	}
}

// Config holds every recognized model option as an explicit field.
type Config struct {
	// Output path components
	BaseDir string `json:"base_dir"`
	Project string `json:"project"`

	ModelType ModelType `json:"model_type"`

	// Plot gates consulted by Generate
	CalibrationPlot bool `json:"calibration_plot"`
	ConfusionMatrix bool `json:"confusion_matrix"`
	Importances     bool `json:"importances"`
	LearningCurve   bool `json:"learning_curve"`
	ROCCurve        bool `json:"roc_curve"`

	// Cross-validation parameters
	CVFolds   int     `json:"cv_folds"`
	NJobs     int     `json:"n_jobs"`     // carried for API fidelity; fold iteration is sequential
	Scorer    string  `json:"scorer"`     // accuracy, f1, roc_auc, r2, neg_mean_squared_error
	Seed      int64   `json:"seed"`
	Shuffle   bool    `json:"shuffle"`
	Split     float64 `json:"split"`      // held-out fraction for shuffle splits
	Verbosity int     `json:"verbosity"`
}

// DefaultConfig returns a config with every plot gated on and typical
// cross-validation settings. BaseDir and Project must still be supplied.
func DefaultConfig() Config {
	return Config{
		ModelType:       Classification,
		CalibrationPlot: true,
		ConfusionMatrix: true,
		Importances:     true,
		LearningCurve:   true,
		ROCCurve:        true,
		CVFolds:         3,
		NJobs:           1,
		Scorer:          "accuracy",
		Shuffle:         true,
		Split:           0.2,
	}
}

// Validate checks the fields every plot routine depends on.
func (c *Config) Validate() error {
	if c.BaseDir == "" {
		return fmt.Errorf("config: base_dir is required")
	}
	if c.Project == "" {
		return fmt.Errorf("config: project is required")
	}
	if c.CVFolds < 1 {
		return fmt.Errorf("config: cv_folds must be at least 1, got %d", c.CVFolds)
	}
	if c.Split <= 0 || c.Split >= 1 {
		return fmt.Errorf("config: split must be in (0, 1), got %g", c.Split)
	}
	return nil
}
