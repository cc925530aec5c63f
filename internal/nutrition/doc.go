// Package nutrition is the calculation engine: calorie and macro targets,
// log aggregation, streaks, insights and meal recommendations.
//
// Every function is a pure reduction over snapshots passed in by the caller.
// Nothing here performs I/O, logs, or keeps state between calls.
package nutrition
