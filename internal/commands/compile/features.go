package compilecmd

// FeatureGates exposes the runtime toggle compiler command handlers honour.
// Callers supply a closure reading the Commands feature flag so handlers stay
// decoupled from configuration.
type FeatureGates struct {
	CommandsEnabled func() bool
}

func (g FeatureGates) commandsEnabled() bool {
	if g.CommandsEnabled == nil {
		return true
	}
	return g.CommandsEnabled()
}
