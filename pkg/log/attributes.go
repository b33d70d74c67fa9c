// Package log defines standard attribute keys for regression operations.
//
// Keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples") so log lines can be filtered by category.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model.
	// Examples: "LinearRegression", "StandardScaler"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "score", "evaluate"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "linear", "preprocessing", "diagplot"
	ComponentKey = "ml.component"
)

// Data Shape
const (
	// SamplesKey is the number of rows n.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of predictor columns d, excluding the intercept.
	FeaturesKey = "data.features"
)

// Fit Diagnostics
const (
	// RankKey is the numerical rank of the Gram matrix.
	RankKey = "model.rank"

	// ResidualDoFKey is n-d-1.
	ResidualDoFKey = "model.residual_dof"

	// ConfidenceLevelKey is the configured confidence level.
	ConfidenceLevelKey = "model.confidence_level"

	// R2ScoreKey records R² for regression.
	R2ScoreKey = "metrics.r2_score"

	// QuantityKey names a derived quantity such as "SSR".
	QuantityKey = "metrics.quantity"

	// ValueKey is the value of QuantityKey.
	ValueKey = "metrics.value"
)

// Error Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"
)

// Standard attribute values.
const (
	OperationFit      = "fit"
	OperationPredict  = "predict"
	OperationScore    = "score"
	OperationEvaluate = "evaluate"

	ErrorDegenerateModel = "DEGENERATE_MODEL"
	ErrorRankDeficient   = "RANK_DEFICIENT"
	ErrorNegativeSSR     = "NEGATIVE_SSR"
)
