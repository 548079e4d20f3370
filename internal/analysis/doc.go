// Package analysis provides the descriptive-statistics and time-series
// primitives the aggregators and enrichers build on: summaries with
// population variance and quartile fences, OLS trend fitting with R²,
// autocorrelation-based seasonality probing, moving averages, linear
// forecasting and z-score change-point detection.
package analysis
