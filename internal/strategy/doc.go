// Package strategy implements the concrete alignment strategies: stationary,
// ray-refined, nudge-refined, native-anchor, and multi-parent. Each strategy
// drives the shared state machine from its own tracking input and publishes
// the canonical state, accuracy, and pose triple defined in pkg/types.
package strategy
