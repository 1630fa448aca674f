package services

import (
	"log/slog"
	"miniraw/contract"
	"miniraw/infrastructure/storage"
	"sync/atomic"
)

var _ contract.IControlState = (*ControlState)(nil)

// ControlState is the single source of truth for the discard toggle.
// Every connection handler reads it before each write decision, so a toggle
// is visible to in-flight jobs from their next chunk on. Last write wins.
type ControlState struct {
	discard   atomic.Bool
	listening atomic.Bool
	settings  storage.ISettingsRepository
	log       *slog.Logger
}

// NewControlState restores the discard flag persisted by a previous run.
// A nil settings repository keeps the state in memory only.
func NewControlState(log *slog.Logger, settings storage.ISettingsRepository) *ControlState {
	c := &ControlState{settings: settings, log: log}
	if settings == nil {
		return c
	}
	enabled, found, err := settings.LoadDiscard()
	if err != nil {
		log.Warn("Unable to restore discard setting, defaulting to off", "error", err)
		return c
	}
	if found {
		c.discard.Store(enabled)
	}
	return c
}

// SetDiscard is called by the operator. Persistence failures are logged only,
// the in-memory flag is always updated.
func (c *ControlState) SetDiscard(enabled bool) {
	previous := c.discard.Swap(enabled)
	c.log.Info("Discard received files", "enabled", enabled)
	if previous == enabled || c.settings == nil {
		return
	}
	if err := c.settings.StoreDiscard(enabled); err != nil {
		c.log.Error("Failed to persist discard setting", "enabled", enabled, "error", err)
	}
}

func (c *ControlState) IsDiscardEnabled() bool {
	return c.discard.Load()
}

func (c *ControlState) SetListening(listening bool) {
	c.listening.Store(listening)
}

func (c *ControlState) IsListening() bool {
	return c.listening.Load()
}
